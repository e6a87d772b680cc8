package heat

import "fmt"

// Engine resource types recognized by the load-balancer projection.
const (
	TypeLoadBalancerV2  = "OS::Neutron::LBaaS::LoadBalancer"
	TypeListenerV2      = "OS::Neutron::LBaaS::Listener"
	TypePoolV2          = "OS::Neutron::LBaaS::Pool"
	TypeHealthMonitorV2 = "OS::Neutron::LBaaS::HealthMonitor"
	TypePoolMemberV2    = "OS::Neutron::LBaaS::PoolMember"

	TypeLoadBalancerV1  = "OS::Neutron::LoadBalancer"
	TypePoolV1          = "OS::Neutron::Pool"
	TypeHealthMonitorV1 = "OS::Neutron::HealthMonitor"
	TypePoolMemberV1    = "OS::Neutron::PoolMember"
)

// LoadBalancer is the projected virtual-IP endpoint of a template.
type LoadBalancer struct {
	Name        string
	VIPAddress  Value
	Subnet      Value
	Provider    string
	Description Value
}

// Listener is a protocol/port combination accepting client connections.
type Listener struct {
	Name         string
	Protocol     string
	Port         Value
	LoadBalancer string
}

// Pool is a set of backends eligible to receive traffic for a listener.
type Pool struct {
	Name        string
	Algorithm   string
	Protocol    string
	Listener    string
	Persistence string
}

// HealthMonitor is a periodic probe attached to a pool.
type HealthMonitor struct {
	Name          string
	Type          string
	Delay         int64
	Timeout       int64
	MaxRetries    int64
	URLPath       string
	ExpectedCodes string
	Pool          string
}

// PoolMember is a single backend address within a pool.
type PoolMember struct {
	Name    string
	Address Value
	Port    Value
	Weight  int64
	Pool    string
}

// LBModel is the load-balancer view of a template: the declared
// resources normalized across both schemas. In the legacy schema the
// VIP is nested under the pool and the listener is implied by the
// loadbalancer association resource; the projection flattens both
// layouts into the same shape.
type LBModel struct {
	LoadBalancers []LoadBalancer
	Listeners     []Listener
	Pools         []Pool
	Monitors      []HealthMonitor
	Members       []PoolMember
}

// LBModel projects the load-balancer view out of the template.
func (t *Template) LBModel() (*LBModel, error) {
	switch t.Format {
	case FormatHOT:
		return t.lbModelHOT()
	case FormatCFN:
		return t.lbModelCFN()
	default:
		return nil, ErrUnknownFormat
	}
}

func (t *Template) lbModelHOT() (*LBModel, error) {
	model := &LBModel{}

	for _, res := range t.ResourcesOfType(TypeLoadBalancerV2) {
		model.LoadBalancers = append(model.LoadBalancers, LoadBalancer{
			Name:        res.Name,
			VIPAddress:  t.propValue(res.Properties["vip_address"]),
			Subnet:      t.propValue(res.Properties["vip_subnet"]),
			Provider:    propString(res.Properties, "provider"),
			Description: t.propValue(res.Properties["description"]),
		})
	}

	for _, res := range t.ResourcesOfType(TypeListenerV2) {
		parent, _ := t.refName(res.Properties["loadbalancer"])
		model.Listeners = append(model.Listeners, Listener{
			Name:         res.Name,
			Protocol:     propString(res.Properties, "protocol"),
			Port:         t.propValue(res.Properties["protocol_port"]),
			LoadBalancer: parent,
		})
	}

	for _, res := range t.ResourcesOfType(TypePoolV2) {
		parent, _ := t.refName(res.Properties["listener"])
		model.Pools = append(model.Pools, Pool{
			Name:        res.Name,
			Algorithm:   propString(res.Properties, "lb_algorithm"),
			Protocol:    propString(res.Properties, "protocol"),
			Listener:    parent,
			Persistence: nestedString(res.Properties, "session_persistence", "type"),
		})
	}

	for _, res := range t.ResourcesOfType(TypeHealthMonitorV2) {
		parent, _ := t.refName(res.Properties["pool"])
		model.Monitors = append(model.Monitors, HealthMonitor{
			Name:          res.Name,
			Type:          propString(res.Properties, "type"),
			Delay:         propInt(res.Properties, "delay"),
			Timeout:       propInt(res.Properties, "timeout"),
			MaxRetries:    propInt(res.Properties, "max_retries"),
			URLPath:       propString(res.Properties, "url_path"),
			ExpectedCodes: propString(res.Properties, "expected_codes"),
			Pool:          parent,
		})
	}

	for _, res := range t.ResourcesOfType(TypePoolMemberV2) {
		parent, _ := t.refName(res.Properties["pool"])
		model.Members = append(model.Members, PoolMember{
			Name:    res.Name,
			Address: t.propValue(res.Properties["address"]),
			Port:    t.propValue(res.Properties["protocol_port"]),
			Weight:  propInt(res.Properties, "weight"),
			Pool:    parent,
		})
	}

	return model, nil
}

func (t *Template) lbModelCFN() (*LBModel, error) {
	model := &LBModel{}

	// pool name -> implied listener (the loadbalancer association resource)
	poolListener := map[string]string{}

	for _, res := range t.ResourcesOfType(TypeLoadBalancerV1) {
		poolName, ok := t.refName(res.Properties["pool_id"])
		if !ok {
			return nil, newError(ErrPropertyInvalid, fmt.Errorf("loadbalancer %q has no pool_id reference", res.Name))
		}

		pool, ok := t.Resources[poolName]
		if !ok {
			return nil, newRefError(ErrUnknownReference, res.Name, poolName)
		}

		vip, ok := pool.Properties["vip"].(map[string]interface{})
		if !ok {
			return nil, newError(ErrPropertyInvalid, fmt.Errorf("pool %q has no vip block", poolName))
		}

		poolListener[poolName] = res.Name

		model.LoadBalancers = append(model.LoadBalancers, LoadBalancer{
			Name:        res.Name,
			VIPAddress:  t.propValue(vip["address"]),
			Subnet:      t.propValue(pool.Properties["subnet_id"]),
			Description: t.propValue(vip["description"]),
		})

		model.Listeners = append(model.Listeners, Listener{
			Name:         res.Name,
			Protocol:     propString(pool.Properties, "protocol"),
			Port:         t.propValue(vip["protocol_port"]),
			LoadBalancer: res.Name,
		})
	}

	// monitor name -> owning pool, associated through the pool's monitors list
	monitorPool := map[string]string{}

	for _, res := range t.ResourcesOfType(TypePoolV1) {
		if monitors, ok := res.Properties["monitors"].([]interface{}); ok {
			for _, m := range monitors {
				if name, ok := t.refName(m); ok {
					monitorPool[name] = res.Name
				}
			}
		}

		model.Pools = append(model.Pools, Pool{
			Name:        res.Name,
			Algorithm:   propString(res.Properties, "lb_method"),
			Protocol:    propString(res.Properties, "protocol"),
			Listener:    poolListener[res.Name],
			Persistence: nestedString(res.Properties, "vip", "session_persistence", "type"),
		})
	}

	for _, res := range t.ResourcesOfType(TypeHealthMonitorV1) {
		model.Monitors = append(model.Monitors, HealthMonitor{
			Name:          res.Name,
			Type:          propString(res.Properties, "type"),
			Delay:         propInt(res.Properties, "delay"),
			Timeout:       propInt(res.Properties, "timeout"),
			MaxRetries:    propInt(res.Properties, "max_retries"),
			URLPath:       propString(res.Properties, "url_path"),
			ExpectedCodes: propString(res.Properties, "expected_codes"),
			Pool:          monitorPool[res.Name],
		})
	}

	for _, res := range t.ResourcesOfType(TypePoolMemberV1) {
		parent, _ := t.refName(res.Properties["pool_id"])
		model.Members = append(model.Members, PoolMember{
			Name:    res.Name,
			Address: t.propValue(res.Properties["address"]),
			Port:    t.propValue(res.Properties["protocol_port"]),
			Weight:  propInt(res.Properties, "weight"),
			Pool:    parent,
		})
	}

	return model, nil
}

// MembersOf returns the members of the named pool.
func (m *LBModel) MembersOf(pool string) []PoolMember {
	var out []PoolMember

	for _, member := range m.Members {
		if member.Pool == pool {
			out = append(out, member)
		}
	}

	return out
}

// MonitorOf returns the monitor attached to the named pool, if any.
func (m *LBModel) MonitorOf(pool string) (HealthMonitor, bool) {
	for _, mon := range m.Monitors {
		if mon.Pool == pool {
			return mon, true
		}
	}

	return HealthMonitor{}, false
}

// PoolsOf returns the pools attached to the named listener.
func (m *LBModel) PoolsOf(listener string) []Pool {
	var out []Pool

	for _, pool := range m.Pools {
		if pool.Listener == listener {
			out = append(out, pool)
		}
	}

	return out
}

func propString(props map[string]interface{}, key string) string {
	s, _ := props[key].(string)
	return s
}

func propInt(props map[string]interface{}, key string) int64 {
	if f, ok := props[key].(float64); ok {
		return int64(f)
	}

	return 0
}

func nestedString(props map[string]interface{}, keys ...string) string {
	var current interface{} = props

	for _, key := range keys {
		m, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}

		current = m[key]
	}

	s, _ := current.(string)

	return s
}
