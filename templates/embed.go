// Package templates ships the Heat template documents for the haproxy
// load-balancer service chain node: a modern multi-listener LBaaS v2
// document and a legacy single-listener LBaaS v1 document. The
// documents are the deliverable artifacts of this repository; they are
// embedded so consumers can load them without touching the filesystem.
package templates

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/heatworks/loadbalancer-heat-templates/pkg/heat"
)

// NameLBaaSV2 and NameLBaaSV1 address the shipped documents by name.
const (
	NameLBaaSV2 = "haproxy-lbaasv2"
	NameLBaaSV1 = "haproxy-lbaasv1"
)

// ErrUnknownTemplate is returned when a requested template name is not shipped
var ErrUnknownTemplate = errors.New("unknown template name")

//go:embed haproxy_lbaasv2.json
var lbaasV2 []byte

//go:embed haproxy_lbaasv1.json
var lbaasV1 []byte

// Raw returns the raw document bytes for a shipped template.
func Raw(name string) ([]byte, error) {
	switch name {
	case NameLBaaSV2:
		return lbaasV2, nil
	case NameLBaaSV1:
		return lbaasV1, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
}

// Load parses a shipped template by name.
func Load(name string) (*heat.Template, error) {
	raw, err := Raw(name)
	if err != nil {
		return nil, err
	}

	return heat.Parse(raw)
}

// Names lists the shipped templates in a stable order.
func Names() []string {
	return []string{NameLBaaSV2, NameLBaaSV1}
}
