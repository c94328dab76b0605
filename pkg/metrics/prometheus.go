package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	invocations    *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	chatLatency    prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		invocations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketchat_capability_invocations_total",
				Help: "Total number of capability invocations by the agent",
			},
			[]string{"capability"},
		),
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketchat_fallback_activations_total",
				Help: "Total number of fallback provider activations",
			},
			[]string{"capability"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketchat_provider_errors_total",
				Help: "Total number of provider errors by kind",
			},
			[]string{"provider", "kind"},
		),
		chatLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "marketchat_chat_duration_seconds",
				Help:    "Duration of whole chat turns in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordInvocation records one capability invocation.
func (r *Recorder) RecordInvocation(capability string) {
	r.invocations.WithLabelValues(capability).Inc()
}

// RecordFallback records one primary-to-fallback switch.
func (r *Recorder) RecordFallback(capability string) {
	r.fallbacks.WithLabelValues(capability).Inc()
}

// RecordProviderError records a provider failure by kind.
func (r *Recorder) RecordProviderError(provider, kind string) {
	r.providerErrors.WithLabelValues(provider, kind).Inc()
}

// RecordChatLatency records a whole-turn duration.
func (r *Recorder) RecordChatLatency(seconds float64) {
	r.chatLatency.Observe(seconds)
}
