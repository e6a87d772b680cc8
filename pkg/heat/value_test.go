package heat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueResolve(t *testing.T) {
	tmpl, err := Parse([]byte(testHOTDoc))
	require.NoError(t, err)

	t.Run("literal passes through", func(t *testing.T) {
		v := Value{Literal: "HTTP"}

		s, err := v.ResolveString(tmpl, nil)
		require.NoError(t, err)
		assert.Equal(t, "HTTP", s)
	})

	t.Run("supplied value wins over default", func(t *testing.T) {
		v := Value{Param: "lb_port"}

		n, err := v.ResolveInt(tmpl, map[string]string{"lb_port": "8080"})
		require.NoError(t, err)
		assert.Equal(t, int64(8080), n)
	})

	t.Run("declared default applies", func(t *testing.T) {
		v := Value{Param: "lb_port"}

		n, err := v.ResolveInt(tmpl, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(80), n)
	})

	t.Run("required parameter missing", func(t *testing.T) {
		v := Value{Param: "vip_ip"}

		_, err := v.ResolveString(tmpl, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingParameter)
	})

	t.Run("undeclared parameter", func(t *testing.T) {
		v := Value{Param: "bogus"}

		_, err := v.Resolve(tmpl, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownParameter)
	})

	t.Run("non numeric value", func(t *testing.T) {
		v := Value{Param: "vip_ip"}

		_, err := v.ResolveInt(tmpl, map[string]string{"vip_ip": "192.168.20.254"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPropertyInvalid)
	})
}
