package heat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCFNFullDoc = `{
    "AWSTemplateFormatVersion": "2010-09-09",
    "Parameters": {
        "Subnet": {"Description": "Pool Subnet CIDR", "Type": "String"},
        "PoolMemberIP1": {"Description": "Pool Member IP Address", "Type": "String"},
        "vip_ip": {"Description": "VIP IP Address", "Type": "String"}
    },
    "Resources": {
        "HttpHM": {
            "Type": "OS::Neutron::HealthMonitor",
            "Properties": {
                "delay": 20,
                "expected_codes": "200",
                "max_retries": 3,
                "timeout": 10,
                "type": "HTTP",
                "url_path": "/"
            }
        },
        "HaproxyPool": {
            "Type": "OS::Neutron::Pool",
            "Properties": {
                "lb_method": "ROUND_ROBIN",
                "monitors": [{"Ref": "HttpHM"}],
                "protocol": "HTTP",
                "subnet_id": {"Ref": "Subnet"},
                "vip": {
                    "address": {"Ref": "vip_ip"},
                    "protocol_port": 80,
                    "session_persistence": {"type": "SOURCE_IP"}
                }
            }
        },
        "HaproxyLb": {
            "Type": "OS::Neutron::LoadBalancer",
            "Properties": {
                "pool_id": {"Ref": "HaproxyPool"},
                "protocol_port": 80
            }
        },
        "Member1": {
            "Type": "OS::Neutron::PoolMember",
            "Properties": {
                "address": {"Ref": "PoolMemberIP1"},
                "pool_id": {"Ref": "HaproxyPool"},
                "protocol_port": 80,
                "weight": 1
            }
        }
    }
}`

func TestLBModelHOT(t *testing.T) {
	tmpl, err := Parse([]byte(testHOTDoc))
	require.NoError(t, err)

	model, err := tmpl.LBModel()
	require.NoError(t, err)

	require.Len(t, model.LoadBalancers, 1)
	lb := model.LoadBalancers[0]
	assert.Equal(t, "loadbalancer", lb.Name)
	assert.Equal(t, "loadbalancerv2", lb.Provider)
	assert.True(t, lb.VIPAddress.IsParam())
	assert.Equal(t, "vip_ip", lb.VIPAddress.Param)

	require.Len(t, model.Listeners, 1)
	listener := model.Listeners[0]
	assert.Equal(t, "listener", listener.Name)
	assert.Equal(t, "HTTP", listener.Protocol)
	assert.Equal(t, "loadbalancer", listener.LoadBalancer)
	assert.Equal(t, "lb_port", listener.Port.Param)

	assert.Empty(t, model.Pools)
	assert.Empty(t, model.Members)
}

func TestLBModelCFN(t *testing.T) {
	tmpl, err := Parse([]byte(testCFNFullDoc))
	require.NoError(t, err)

	model, err := tmpl.LBModel()
	require.NoError(t, err)

	require.Len(t, model.LoadBalancers, 1)
	lb := model.LoadBalancers[0]
	assert.Equal(t, "HaproxyLb", lb.Name)
	assert.Equal(t, "vip_ip", lb.VIPAddress.Param)
	assert.Equal(t, "Subnet", lb.Subnet.Param)

	// the vip block implies the listener
	require.Len(t, model.Listeners, 1)
	listener := model.Listeners[0]
	assert.Equal(t, "HaproxyLb", listener.Name)
	assert.Equal(t, "HTTP", listener.Protocol)
	assert.False(t, listener.Port.IsParam())

	port, err := listener.Port.ResolveInt(tmpl, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(80), port)

	require.Len(t, model.Pools, 1)
	pool := model.Pools[0]
	assert.Equal(t, "HaproxyPool", pool.Name)
	assert.Equal(t, "ROUND_ROBIN", pool.Algorithm)
	assert.Equal(t, "HaproxyLb", pool.Listener)
	assert.Equal(t, "SOURCE_IP", pool.Persistence)

	require.Len(t, model.Monitors, 1)
	monitor := model.Monitors[0]
	assert.Equal(t, "HttpHM", monitor.Name)
	assert.Equal(t, "HTTP", monitor.Type)
	assert.Equal(t, int64(20), monitor.Delay)
	assert.Equal(t, int64(10), monitor.Timeout)
	assert.Equal(t, int64(3), monitor.MaxRetries)
	assert.Equal(t, "/", monitor.URLPath)
	assert.Equal(t, "200", monitor.ExpectedCodes)
	assert.Equal(t, "HaproxyPool", monitor.Pool)

	require.Len(t, model.Members, 1)
	member := model.Members[0]
	assert.Equal(t, "Member1", member.Name)
	assert.Equal(t, "PoolMemberIP1", member.Address.Param)
	assert.Equal(t, int64(1), member.Weight)
	assert.Equal(t, "HaproxyPool", member.Pool)
}

func TestLBModelAssociations(t *testing.T) {
	tmpl, err := Parse([]byte(testCFNFullDoc))
	require.NoError(t, err)

	model, err := tmpl.LBModel()
	require.NoError(t, err)

	members := model.MembersOf("HaproxyPool")
	require.Len(t, members, 1)
	assert.Equal(t, "Member1", members[0].Name)

	monitor, ok := model.MonitorOf("HaproxyPool")
	require.True(t, ok)
	assert.Equal(t, "HttpHM", monitor.Name)

	_, ok = model.MonitorOf("NoSuchPool")
	assert.False(t, ok)

	pools := model.PoolsOf("HaproxyLb")
	require.Len(t, pools, 1)
	assert.Equal(t, "HaproxyPool", pools[0].Name)
}

func TestLBModelCFNInvalid(t *testing.T) {
	t.Run("loadbalancer without pool reference", func(t *testing.T) {
		tmpl, err := Parse([]byte(`{
    "AWSTemplateFormatVersion": "2010-09-09",
    "Resources": {
        "HaproxyLb": {
            "Type": "OS::Neutron::LoadBalancer",
            "Properties": {"protocol_port": 80}
        }
    }
}`))
		require.NoError(t, err)

		_, err = tmpl.LBModel()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPropertyInvalid)
	})

	t.Run("pool without vip block", func(t *testing.T) {
		tmpl, err := Parse([]byte(`{
    "AWSTemplateFormatVersion": "2010-09-09",
    "Resources": {
        "HaproxyPool": {
            "Type": "OS::Neutron::Pool",
            "Properties": {"protocol": "HTTP"}
        },
        "HaproxyLb": {
            "Type": "OS::Neutron::LoadBalancer",
            "Properties": {"pool_id": {"Ref": "HaproxyPool"}}
        }
    }
}`))
		require.NoError(t, err)

		_, err = tmpl.LBModel()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPropertyInvalid)
	})
}
