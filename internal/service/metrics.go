package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK       = "ok"
	outcomeFallback = "fallback"
	outcomeError    = "error"
)

type GatewayMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.SummaryVec
}

// NewGatewayMetrics registers the gateway collectors on reg. A nil reg builds
// unregistered collectors.
func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	factory := promauto.With(reg)
	return &GatewayMetrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interviewer_llm_requests_total",
				Help: "Language model gateway calls by provider, operation and outcome",
			},
			[]string{"provider", "operation", "outcome"},
		),
		duration: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "interviewer_llm_request_duration_seconds",
				Help: "Language model call latency in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.99: 0.001,
				},
			},
			[]string{"provider", "operation"},
		),
	}
}

func (m *GatewayMetrics) observe(provider, operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(provider, operation, outcome).Inc()
	if outcome != outcomeFallback {
		m.duration.WithLabelValues(provider, operation).Observe(seconds)
	}
}
