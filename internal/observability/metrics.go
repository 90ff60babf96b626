// Package observability provides Prometheus metrics for the service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "echoscore"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	PipelineDuration   prometheus.Histogram
	AudioBytesReceived prometheus.Counter
	ExactMatches       prometheus.Counter
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of upload requests by outcome",
		}, []string{"outcome"}),
		PipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "End-to-end duration of the recording pipeline in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		AudioBytesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_received_total",
			Help:      "Total audio bytes received",
		}),
		ExactMatches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exact_matches_total",
			Help:      "Total number of transcripts exactly matching the target word",
		}),
	}
}

// RecordRequest records one completed upload request. outcome is "success"
// or the failing pipeline stage.
func (m *Metrics) RecordRequest(outcome string, durationSeconds float64, audioBytes int, exactMatch bool) {
	m.RequestsTotal.WithLabelValues(outcome).Inc()
	m.PipelineDuration.Observe(durationSeconds)
	m.AudioBytesReceived.Add(float64(audioBytes))
	if exactMatch {
		m.ExactMatches.Inc()
	}
}
