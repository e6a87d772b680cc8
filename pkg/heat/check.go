package heat

import (
	"errors"
	"sort"
)

// Check verifies the structural consistency of a decoded document:
// every resource reference must name a resource declared in the same
// document, every parameter reference must name a declared parameter,
// and no resource may reference itself. All findings are collected and
// returned joined; nil means the document is consistent.
func Check(t *Template) error {
	var errs []error

	for _, ref := range t.References() {
		switch ref.Kind {
		case RefParameter:
			if _, ok := t.Parameters[ref.Name]; !ok {
				errs = append(errs, newRefError(ErrUnknownParameter, ref.Owner, ref.Name))
			}
		case RefResource:
			if ref.Name == ref.Owner {
				errs = append(errs, newRefError(ErrSelfReference, ref.Owner, ref.Name))
				continue
			}

			if _, ok := t.Resources[ref.Name]; ok {
				continue
			}

			// a legacy Ref that matches neither namespace is
			// unresolvable rather than a missing resource
			if t.Format == FormatCFN {
				errs = append(errs, newRefError(ErrUnknownReference, ref.Owner, ref.Name))
			} else {
				errs = append(errs, newRefError(ErrUnknownResource, ref.Owner, ref.Name))
			}
		}
	}

	return errors.Join(errs...)
}

// CheckParameters verifies a parameter set against the declaration
// block: every required parameter (one without a default) must be
// supplied, and nothing undeclared may be supplied.
func CheckParameters(t *Template, supplied map[string]string) error {
	var errs []error

	for _, name := range t.RequiredParameters() {
		if _, ok := supplied[name]; !ok {
			errs = append(errs, newParamError(ErrMissingParameter, name))
		}
	}

	names := make([]string, 0, len(supplied))
	for name := range supplied {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if _, ok := t.Parameters[name]; !ok {
			errs = append(errs, newParamError(ErrUnexpectedParameter, name))
		}
	}

	return errors.Join(errs...)
}
