package heat

import (
	"errors"
	"fmt"
	"strconv"
)

// Value is a resource property value that is either a literal from the
// document or a reference to a declared parameter. Projections never
// evaluate intrinsics; a parameter-valued field carries the parameter
// name until resolved against a supplied parameter set.
type Value struct {
	Literal interface{}
	Param   string
}

// IsParam reports whether the value is a parameter reference.
func (v Value) IsParam() bool {
	return v.Param != ""
}

// Resolve returns the literal, the supplied value for the referenced
// parameter, or the parameter's declared default, in that order.
func (v Value) Resolve(t *Template, supplied map[string]string) (interface{}, error) {
	if !v.IsParam() {
		return v.Literal, nil
	}

	if s, ok := supplied[v.Param]; ok {
		return s, nil
	}

	p, ok := t.Parameters[v.Param]
	if !ok {
		return nil, newParamError(ErrUnknownParameter, v.Param)
	}

	if !p.HasDefault {
		return nil, newParamError(ErrMissingParameter, v.Param)
	}

	return p.Default, nil
}

// ResolveString resolves the value and renders it as a string.
func (v Value) ResolveString(t *Template, supplied map[string]string) (string, error) {
	resolved, err := v.Resolve(t, supplied)
	if err != nil {
		return "", err
	}

	switch r := resolved.(type) {
	case string:
		return r, nil
	case float64:
		return strconv.FormatFloat(r, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(r), nil
	default:
		return "", newError(ErrPropertyInvalid, fmt.Errorf("cannot render %T as string", resolved))
	}
}

// ResolveInt resolves the value and renders it as an integer. Supplied
// parameter values arrive as strings and are converted.
func (v Value) ResolveInt(t *Template, supplied map[string]string) (int64, error) {
	resolved, err := v.Resolve(t, supplied)
	if err != nil {
		return 0, err
	}

	switch r := resolved.(type) {
	case float64:
		return int64(r), nil
	case int64:
		return r, nil
	case string:
		n, err := strconv.ParseInt(r, 10, 64)
		if err != nil {
			return 0, newError(ErrPropertyInvalid, err)
		}

		return n, nil
	default:
		return 0, newError(ErrPropertyInvalid, errors.New("value is not numeric"))
	}
}

// propValue lifts a raw decoded property into a Value. Legacy Ref
// property values resolve to a parameter only when the name is
// declared; resource-valued Refs are handled by refName instead.
func (t *Template) propValue(raw interface{}) Value {
	if m, ok := raw.(map[string]interface{}); ok {
		if name, ok := intrinsicArg(m, "get_param"); ok {
			return Value{Param: name}
		}

		if name, ok := intrinsicArg(m, "Ref"); ok {
			if _, declared := t.Parameters[name]; declared {
				return Value{Param: name}
			}
		}
	}

	return Value{Literal: raw}
}

// refName extracts the resource name from a {"get_resource": ...} or
// resource-valued {"Ref": ...} property.
func (t *Template) refName(raw interface{}) (string, bool) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return "", false
	}

	if name, ok := intrinsicArg(m, "get_resource"); ok {
		return name, true
	}

	if name, ok := intrinsicArg(m, "Ref"); ok {
		if _, declared := t.Parameters[name]; !declared {
			return name, true
		}
	}

	return "", false
}
