package cmd

import "errors"

var (
	// ErrHAProxyBaseConfigRequired is returned when the base HAProxy config is missing
	ErrHAProxyBaseConfigRequired = errors.New("base haproxy config is required and cannot be empty")
	// ErrParamFormatInvalid is returned when a --param value is not name=value
	ErrParamFormatInvalid = errors.New("param must be in name=value form")
	// ErrTemplateArgRequired is returned when no template name or file is given
	ErrTemplateArgRequired = errors.New("a template name or file is required")
)
