package heat

import (
	"encoding/json"

	"github.com/ghodss/yaml"
)

// hotEnvelope is the wire shape of a heat_template_version document.
type hotEnvelope struct {
	Version     string                  `json:"heat_template_version"`
	Description string                  `json:"description"`
	Parameters  map[string]hotParameter `json:"parameters"`
	Resources   map[string]hotResource  `json:"resources"`
}

type hotParameter struct {
	Type        string          `json:"type"`
	Default     json.RawMessage `json:"default"`
	Description string          `json:"description"`
}

type hotResource struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
}

// cfnEnvelope is the wire shape of a legacy AWSTemplateFormatVersion document.
type cfnEnvelope struct {
	Version     string                  `json:"AWSTemplateFormatVersion"`
	Description string                  `json:"Description"`
	Parameters  map[string]cfnParameter `json:"Parameters"`
	Resources   map[string]cfnResource  `json:"Resources"`
}

type cfnParameter struct {
	Type        string          `json:"Type"`
	Default     json.RawMessage `json:"Default"`
	Description string          `json:"Description"`
}

type cfnResource struct {
	Type       string                 `json:"Type"`
	Properties map[string]interface{} `json:"Properties"`
}

// Parse decodes a template document in either schema. YAML input is
// accepted and converted to JSON first, since HOT documents are
// routinely authored as YAML.
func Parse(doc []byte) (*Template, error) {
	jsonDoc, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return nil, newError(ErrDocumentMalformed, err)
	}

	var probe struct {
		HOT json.RawMessage `json:"heat_template_version"`
		CFN json.RawMessage `json:"AWSTemplateFormatVersion"`
	}

	if err := json.Unmarshal(jsonDoc, &probe); err != nil {
		return nil, newError(ErrDocumentMalformed, err)
	}

	switch {
	case len(probe.HOT) > 0:
		return parseHOT(jsonDoc)
	case len(probe.CFN) > 0:
		return parseCFN(jsonDoc)
	default:
		return nil, ErrUnknownFormat
	}
}

func parseHOT(jsonDoc []byte) (*Template, error) {
	var env hotEnvelope
	if err := json.Unmarshal(jsonDoc, &env); err != nil {
		return nil, newError(ErrDocumentMalformed, err)
	}

	tmpl := &Template{
		Format:      FormatHOT,
		Version:     env.Version,
		Description: env.Description,
		Parameters:  map[string]Parameter{},
		Resources:   map[string]Resource{},
	}

	for name, p := range env.Parameters {
		param, err := newParameter(name, p.Type, p.Description, p.Default)
		if err != nil {
			return nil, err
		}

		tmpl.Parameters[name] = param
	}

	for name, r := range env.Resources {
		tmpl.Resources[name] = Resource{
			Name:       name,
			Type:       r.Type,
			Properties: r.Properties,
		}
	}

	return tmpl, nil
}

func parseCFN(jsonDoc []byte) (*Template, error) {
	var env cfnEnvelope
	if err := json.Unmarshal(jsonDoc, &env); err != nil {
		return nil, newError(ErrDocumentMalformed, err)
	}

	tmpl := &Template{
		Format:      FormatCFN,
		Version:     env.Version,
		Description: env.Description,
		Parameters:  map[string]Parameter{},
		Resources:   map[string]Resource{},
	}

	for name, p := range env.Parameters {
		param, err := newParameter(name, p.Type, p.Description, p.Default)
		if err != nil {
			return nil, err
		}

		tmpl.Parameters[name] = param
	}

	for name, r := range env.Resources {
		tmpl.Resources[name] = Resource{
			Name:       name,
			Type:       r.Type,
			Properties: r.Properties,
		}
	}

	return tmpl, nil
}

func newParameter(name, paramType, description string, rawDefault json.RawMessage) (Parameter, error) {
	param := Parameter{
		Name:        name,
		Type:        paramType,
		Description: description,
	}

	if len(rawDefault) > 0 {
		if err := json.Unmarshal(rawDefault, &param.Default); err != nil {
			return Parameter{}, newError(ErrDocumentMalformed, err)
		}

		param.HasDefault = true
	}

	return param, nil
}
