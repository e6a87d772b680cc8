// Package haproxy renders the haproxy configuration a template's
// load-balancer model implies: one frontend per listener bound to the
// VIP, one backend per pool, one server per member. The output is a
// preview of what the haproxy-backed provider materializes from the
// declared resources; nothing is applied anywhere.
package haproxy

import (
	"fmt"

	parser "github.com/haproxytech/config-parser/v4"
	"github.com/haproxytech/config-parser/v4/types"

	"github.com/heatworks/loadbalancer-heat-templates/pkg/heat"
)

// Merge renders the template's load-balancer model on top of a base
// haproxy config. Parameter-valued fields resolve against the supplied
// parameter set, falling back to declared defaults.
func Merge(cfg parser.Parser, tmpl *heat.Template, params map[string]string) (parser.Parser, error) {
	model, err := tmpl.LBModel()
	if err != nil {
		return nil, err
	}

	for _, listener := range model.Listeners {
		lb, ok := loadBalancerOf(model, listener)
		if !ok {
			return nil, fmt.Errorf("%w: listener %q", errNoLoadBalancer, listener.Name)
		}

		vipAddr, err := lb.VIPAddress.ResolveString(tmpl, params)
		if err != nil {
			return nil, err
		}

		port, err := listener.Port.ResolveInt(tmpl, params)
		if err != nil {
			return nil, err
		}

		if err := cfg.SectionsCreate(parser.Frontends, listener.Name); err != nil {
			return nil, newLabelError(listener.Name, errFrontendSectionLabelFailure, err)
		}

		if err := cfg.Insert(parser.Frontends, listener.Name, "bind", types.Bind{
			Path: fmt.Sprintf("%s@%s:%d", "ipv4", vipAddr, port)}); err != nil {
			return nil, newAttrError(errFrontendBindFailure, err)
		}

		for _, pool := range model.PoolsOf(listener.Name) {
			if err := cfg.Set(parser.Frontends, listener.Name, "use_backend", types.UseBackend{Name: pool.Name}); err != nil {
				return nil, newAttrError(errUseBackendFailure, err)
			}

			if err := mergeBackend(cfg, tmpl, model, pool, params); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

func mergeBackend(cfg parser.Parser, tmpl *heat.Template, model *heat.LBModel, pool heat.Pool, params map[string]string) error {
	if err := cfg.SectionsCreate(parser.Backends, pool.Name); err != nil {
		return newLabelError(pool.Name, errBackendSectionLabelFailure, err)
	}

	if algorithm := balanceAlgorithm(pool.Algorithm); algorithm != "" {
		if err := cfg.Set(parser.Backends, pool.Name, "balance", types.Balance{Algorithm: algorithm}); err != nil {
			return newAttrError(errBackendBalanceFailure, err)
		}
	}

	_, monitored := model.MonitorOf(pool.Name)

	for _, member := range model.MembersOf(pool.Name) {
		addr, err := member.Address.ResolveString(tmpl, params)
		if err != nil {
			return err
		}

		port, err := member.Port.ResolveInt(tmpl, params)
		if err != nil {
			return err
		}

		srvAddr := fmt.Sprintf("%s:%d", addr, port)

		if member.Weight > 0 {
			srvAddr += fmt.Sprintf(" weight %d", member.Weight)
		}

		if monitored {
			srvAddr += fmt.Sprintf(" check port %d", port)
		}

		srvr := types.Server{
			Name:    member.Name,
			Address: srvAddr,
		}

		if err := cfg.Set(parser.Backends, pool.Name, "server", srvr); err != nil {
			return newLabelError(pool.Name, errBackendServerFailure, err)
		}
	}

	return nil
}

func loadBalancerOf(model *heat.LBModel, listener heat.Listener) (heat.LoadBalancer, bool) {
	for _, lb := range model.LoadBalancers {
		if lb.Name == listener.LoadBalancer {
			return lb, true
		}
	}

	return heat.LoadBalancer{}, false
}

// balanceAlgorithm maps the declared lb algorithm onto the haproxy
// balance keyword. Unrecognized algorithms render no balance attr and
// fall through to haproxy's default.
func balanceAlgorithm(algorithm string) string {
	switch algorithm {
	case "ROUND_ROBIN":
		return "roundrobin"
	case "LEAST_CONNECTIONS":
		return "leastconn"
	case "SOURCE_IP":
		return "source"
	default:
		return ""
	}
}
