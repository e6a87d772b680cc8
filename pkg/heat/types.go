// Package heat provides a read-only model of the Heat orchestration
// template documents shipped by this repository. It decodes both the
// modern HOT schema and the legacy CFN-style schema, exposes the
// declared parameters and resources, and implements the structural
// consistency checks that apply to the documents: intra-document
// references must resolve, and required parameters must be supplied at
// instantiation. It deliberately does not interpret templates beyond
// that; provisioning semantics belong to the orchestration engine.
package heat

import "sort"

// Format identifies the template schema a document was written in.
type Format int

const (
	// FormatUnknown is the zero value, reported before a document is decoded
	FormatUnknown Format = iota
	// FormatHOT is the heat_template_version schema with get_param/get_resource intrinsics
	FormatHOT
	// FormatCFN is the legacy AWSTemplateFormatVersion schema with the Ref intrinsic
	FormatCFN
)

func (f Format) String() string {
	switch f {
	case FormatHOT:
		return "hot"
	case FormatCFN:
		return "cfn"
	default:
		return "unknown"
	}
}

// Parameter is a single declared template parameter.
type Parameter struct {
	Name        string
	Type        string
	Description string
	Default     interface{}
	HasDefault  bool
}

// Required reports whether the parameter must be supplied at instantiation.
func (p Parameter) Required() bool {
	return !p.HasDefault
}

// Resource is a single declared resource: its engine type and raw
// property tree as decoded from the document.
type Resource struct {
	Name       string
	Type       string
	Properties map[string]interface{}
}

// Template is a decoded template document.
type Template struct {
	Format      Format
	Version     string
	Description string
	Parameters  map[string]Parameter
	Resources   map[string]Resource
}

// RequiredParameters returns the names of all parameters without
// defaults, sorted.
func (t *Template) RequiredParameters() []string {
	var names []string

	for name, p := range t.Parameters {
		if p.Required() {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// ResourcesOfType returns the declared resources of the given engine
// type, sorted by name.
func (t *Template) ResourcesOfType(resourceType string) []Resource {
	var out []Resource

	for _, name := range t.resourceNames() {
		if r := t.Resources[name]; r.Type == resourceType {
			out = append(out, r)
		}
	}

	return out
}

// resourceNames returns all resource names, sorted for deterministic walks.
func (t *Template) resourceNames() []string {
	names := make([]string, 0, len(t.Resources))
	for name := range t.Resources {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
