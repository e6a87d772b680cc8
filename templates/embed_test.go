package templates

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heatworks/loadbalancer-heat-templates/pkg/heat"
)

func TestShippedDocumentsAreValidJSON(t *testing.T) {
	for _, name := range Names() {
		name := name

		t.Run(name, func(t *testing.T) {
			raw, err := Raw(name)
			require.NoError(t, err)

			var doc map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &doc))
		})
	}
}

func TestShippedDocumentsAreConsistent(t *testing.T) {
	for _, name := range Names() {
		name := name

		t.Run(name, func(t *testing.T) {
			tmpl, err := Load(name)
			require.NoError(t, err)

			assert.NoError(t, heat.Check(tmpl))
		})
	}
}

func TestLoadUnknownName(t *testing.T) {
	_, err := Load("no-such-template")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestLBaaSV2Template(t *testing.T) {
	tmpl, err := Load(NameLBaaSV2)
	require.NoError(t, err)

	assert.Equal(t, heat.FormatHOT, tmpl.Format)
	assert.Equal(t, "2015-10-15", tmpl.Version)

	t.Run("parameters", func(t *testing.T) {
		require.Len(t, tmpl.Parameters, 7)
		assert.Equal(t, []string{"Subnet", "service_chain_metadata", "vip_ip"}, tmpl.RequiredParameters())

		for name, def := range map[string]float64{
			"lb_port":   80,
			"lb_port2":  8080,
			"app_port":  80,
			"app_port2": 8080,
		} {
			p := tmpl.Parameters[name]
			assert.Equal(t, "number", p.Type, name)
			assert.Equal(t, def, p.Default, name)
		}
	})

	t.Run("instantiation", func(t *testing.T) {
		supplied := map[string]string{
			"Subnet":                 "subnet-1",
			"vip_ip":                 "192.168.20.254",
			"service_chain_metadata": "sc-instance-1",
		}
		assert.NoError(t, heat.CheckParameters(tmpl, supplied))

		err := heat.CheckParameters(tmpl, map[string]string{"Subnet": "subnet-1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, heat.ErrMissingParameter)
	})

	t.Run("model", func(t *testing.T) {
		model, err := tmpl.LBModel()
		require.NoError(t, err)

		require.Len(t, model.LoadBalancers, 1)
		lb := model.LoadBalancers[0]
		assert.Equal(t, "loadbalancerv2", lb.Provider)
		assert.Equal(t, "vip_ip", lb.VIPAddress.Param)
		assert.Equal(t, "Subnet", lb.Subnet.Param)
		assert.Equal(t, "service_chain_metadata", lb.Description.Param)

		require.Len(t, model.Listeners, 2)
		assert.Equal(t, "lb_port", model.Listeners[0].Port.Param)
		assert.Equal(t, "lb_port2", model.Listeners[1].Port.Param)

		for _, listener := range model.Listeners {
			assert.Equal(t, "HTTP", listener.Protocol)
			assert.Equal(t, "loadbalancer", listener.LoadBalancer)
		}

		require.Len(t, model.Pools, 2)

		for _, pool := range model.Pools {
			assert.Equal(t, "ROUND_ROBIN", pool.Algorithm)
		}

		assert.Equal(t, "listener", model.Pools[0].Listener)
		assert.Equal(t, "listener2", model.Pools[1].Listener)

		require.Len(t, model.Monitors, 2)

		for _, monitor := range model.Monitors {
			assert.Equal(t, "PING", monitor.Type)
			assert.Equal(t, int64(3), monitor.Delay)
			assert.Equal(t, int64(3), monitor.Timeout)
			assert.Equal(t, int64(3), monitor.MaxRetries)
		}

		assert.Equal(t, "pool", model.Monitors[0].Pool)
		assert.Equal(t, "pool2", model.Monitors[1].Pool)

		// members are attached out-of-band by the service chain driver
		assert.Empty(t, model.Members)
	})
}

func TestLBaaSV1Template(t *testing.T) {
	tmpl, err := Load(NameLBaaSV1)
	require.NoError(t, err)

	assert.Equal(t, heat.FormatCFN, tmpl.Format)
	assert.Equal(t, "2010-09-09", tmpl.Version)

	t.Run("parameters", func(t *testing.T) {
		require.Len(t, tmpl.Parameters, 5)
		assert.Equal(t,
			[]string{"PoolMemberIP1", "PoolMemberIP2", "PoolMemberIP3", "Subnet", "vip_ip"},
			tmpl.RequiredParameters(),
		)
	})

	t.Run("model", func(t *testing.T) {
		model, err := tmpl.LBModel()
		require.NoError(t, err)

		require.Len(t, model.LoadBalancers, 1)
		lb := model.LoadBalancers[0]
		assert.Equal(t, "HaproxyLb", lb.Name)
		assert.Equal(t, "vip_ip", lb.VIPAddress.Param)
		assert.Equal(t, "Subnet", lb.Subnet.Param)

		require.Len(t, model.Listeners, 1)
		port, err := model.Listeners[0].Port.ResolveInt(tmpl, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(80), port)

		require.Len(t, model.Pools, 1)
		pool := model.Pools[0]
		assert.Equal(t, "HaproxyPool", pool.Name)
		assert.Equal(t, "ROUND_ROBIN", pool.Algorithm)
		assert.Equal(t, "SOURCE_IP", pool.Persistence)

		monitor, ok := model.MonitorOf("HaproxyPool")
		require.True(t, ok)
		assert.Equal(t, "HTTP", monitor.Type)
		assert.Equal(t, int64(20), monitor.Delay)
		assert.Equal(t, "/", monitor.URLPath)
		assert.Equal(t, "200", monitor.ExpectedCodes)

		members := model.MembersOf("HaproxyPool")
		require.Len(t, members, 3)

		for i, member := range members {
			assert.Equal(t, int64(1), member.Weight)
			assert.Equal(t, fmt.Sprintf("PoolMemberIP%d", i+1), member.Address.Param)
		}
	})
}
