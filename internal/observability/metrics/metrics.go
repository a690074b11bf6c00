package metrics

import "github.com/prometheus/client_golang/prometheus"

// FunnelMetrics exposes counters/histograms for conversation turns.
type FunnelMetrics struct {
	turnsTotal       *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	upstreamFailures prometheus.Counter
	turnLatency      prometheus.Histogram
}

func NewFunnelMetrics(reg prometheus.Registerer) *FunnelMetrics {
	m := &FunnelMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salesfunnel",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total processed conversation turns",
		}, []string{"locale", "status"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salesfunnel",
			Subsystem: "conversation",
			Name:      "stage_transitions_total",
			Help:      "Total stage transitions, including holds",
		}, []string{"from", "to"}),
		upstreamFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salesfunnel",
			Subsystem: "conversation",
			Name:      "upstream_failures_total",
			Help:      "Total text-generation collaborator failures",
		}),
		turnLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salesfunnel",
			Subsystem: "conversation",
			Name:      "turn_latency_seconds",
			Help:      "Latency of full turn processing",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.transitionsTotal, m.upstreamFailures, m.turnLatency)
	return m
}

func (m *FunnelMetrics) ObserveTurn(locale, status string, seconds float64) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(locale, status).Inc()
	m.turnLatency.Observe(seconds)
}

func (m *FunnelMetrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *FunnelMetrics) ObserveUpstreamFailure() {
	if m == nil {
		return
	}
	m.upstreamFailures.Inc()
}
