package heat

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentMalformed is returned when a document cannot be decoded
	ErrDocumentMalformed = errors.New("template document is malformed")

	// ErrUnknownFormat is returned when a document carries no recognized template version key
	ErrUnknownFormat = errors.New("template format not recognized")

	// ErrUnknownResource is returned when a get_resource names an undeclared resource
	ErrUnknownResource = errors.New("reference to undeclared resource")

	// ErrUnknownParameter is returned when a get_param names an undeclared parameter
	ErrUnknownParameter = errors.New("reference to undeclared parameter")

	// ErrUnknownReference is returned when a legacy Ref matches neither a parameter nor a resource
	ErrUnknownReference = errors.New("unresolvable reference")

	// ErrSelfReference is returned when a resource references itself
	ErrSelfReference = errors.New("resource references itself")

	// ErrMissingParameter is returned when a required parameter is not supplied
	ErrMissingParameter = errors.New("required parameter not supplied")

	// ErrUnexpectedParameter is returned when a supplied parameter is not declared
	ErrUnexpectedParameter = errors.New("supplied parameter is not declared")

	// ErrPropertyInvalid is returned when a resource property has an unusable shape or type
	ErrPropertyInvalid = errors.New("resource property is invalid")
)

func newError(err error, subErr error) error {
	return fmt.Errorf("%w: %v", err, subErr)
}

func newRefError(err error, owner, name string) error {
	return fmt.Errorf("%w: %q in resource %q", err, name, owner)
}

func newParamError(err error, name string) error {
	return fmt.Errorf("%w: %q", err, name)
}
