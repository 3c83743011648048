package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the account service collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
	UsersCreatedTotal          *prometheus.CounterVec
	ProfilesSyncedTotal        *prometheus.CounterVec
	LoginsTotal                *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		UsersCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_users_created_total",
				Help: "Total number of user creation attempts.",
			},
			[]string{"result"},
		),
		ProfilesSyncedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_profiles_synced_total",
				Help: "Total number of profile synchronizer runs.",
			},
			[]string{"stage"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_logins_total",
				Help: "Total number of authentication attempts.",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.UsersCreatedTotal,
		m.ProfilesSyncedTotal,
		m.LoginsTotal,
	)
	return m
}

func (m *Metrics) UserCreated(result string) {
	if m == nil {
		return
	}
	m.UsersCreatedTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ProfileSynced(stage string) {
	if m == nil {
		return
	}
	m.ProfilesSyncedTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDurationSeconds.WithLabelValues(method, path).Observe(seconds)
}
