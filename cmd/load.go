package cmd

import (
	"errors"
	"os"

	"github.com/heatworks/loadbalancer-heat-templates/pkg/heat"
	"github.com/heatworks/loadbalancer-heat-templates/templates"
)

// loadTemplate resolves an argument as a shipped template name first,
// then as a JSON or YAML file path.
func loadTemplate(arg string) (*heat.Template, error) {
	tmpl, err := templates.Load(arg)
	if err == nil {
		return tmpl, nil
	}

	if !errors.Is(err, templates.ErrUnknownTemplate) {
		return nil, err
	}

	raw, err := os.ReadFile(arg)
	if err != nil {
		return nil, err
	}

	return heat.Parse(raw)
}
