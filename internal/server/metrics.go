package server

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the server's parse counters.
type Metrics struct {
	ParsesTotal   *prometheus.CounterVec
	ParseDuration prometheus.Histogram
}

// NewMetrics builds the server metrics and registers them with reg when it
// is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ParsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "elfmap_parses_total",
			Help: "Total number of parse attempts, by outcome.",
		}, []string{"outcome"}),
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "elfmap_parse_duration_seconds",
			Help:    "Time spent parsing a binary into region trees.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.ParsesTotal,
			m.ParseDuration,
		)
	}

	return m
}

func (m *Metrics) observeParse(outcome string, seconds float64) {
	m.ParsesTotal.WithLabelValues(outcome).Inc()
	m.ParseDuration.Observe(seconds)
}
