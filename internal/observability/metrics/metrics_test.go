package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.UserCreated("ok")
	m.UserCreated("ok")
	m.ProfileSynced("create")
	m.Login("invalid")
	m.ObserveRequest("GET", "/admin/accounts/users", "200", 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UsersCreatedTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProfilesSyncedTotal.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/admin/accounts/users", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.UserCreated("ok")
		m.ProfileSynced("save")
		m.Login("ok")
		m.ObserveRequest("GET", "/", "200", 0)
	})
}
