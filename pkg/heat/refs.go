package heat

import "sort"

// RefKind distinguishes the two reference targets a property value can name.
type RefKind int

const (
	// RefResource is a reference to another resource in the same document
	RefResource RefKind = iota
	// RefParameter is a reference to a declared parameter
	RefParameter
)

// Reference is a single intrinsic reference found inside a resource's
// property tree.
type Reference struct {
	Kind  RefKind
	Name  string
	Owner string
}

// References collects every get_resource, get_param, and legacy Ref in
// the document. A legacy Ref resolves to a parameter when the name is
// declared under Parameters, otherwise it is taken as a resource
// reference; this matches the engine's resolution order. Results are in
// a deterministic order.
func (t *Template) References() []Reference {
	var refs []Reference

	for _, owner := range t.resourceNames() {
		res := t.Resources[owner]
		refs = append(refs, t.walkRefs(owner, res.Properties)...)
	}

	return refs
}

func (t *Template) walkRefs(owner string, v interface{}) []Reference {
	var refs []Reference

	switch val := v.(type) {
	case map[string]interface{}:
		if name, ok := intrinsicArg(val, "get_resource"); ok {
			return []Reference{{Kind: RefResource, Name: name, Owner: owner}}
		}

		if name, ok := intrinsicArg(val, "get_param"); ok {
			return []Reference{{Kind: RefParameter, Name: name, Owner: owner}}
		}

		if name, ok := intrinsicArg(val, "Ref"); ok {
			kind := RefResource
			if _, declared := t.Parameters[name]; declared {
				kind = RefParameter
			}

			return []Reference{{Kind: kind, Name: name, Owner: owner}}
		}

		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			refs = append(refs, t.walkRefs(owner, val[k])...)
		}
	case []interface{}:
		for _, item := range val {
			refs = append(refs, t.walkRefs(owner, item)...)
		}
	}

	return refs
}

// intrinsicArg returns the argument of a single-key intrinsic map such
// as {"get_param": "lb_port"}. A list argument names the parameter in
// its first element (nested-access form).
func intrinsicArg(m map[string]interface{}, key string) (string, bool) {
	if len(m) != 1 {
		return "", false
	}

	arg, ok := m[key]
	if !ok {
		return "", false
	}

	switch a := arg.(type) {
	case string:
		return a, true
	case []interface{}:
		if len(a) > 0 {
			if s, ok := a[0].(string); ok {
				return s, true
			}
		}
	}

	return "", false
}
