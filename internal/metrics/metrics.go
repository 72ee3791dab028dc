// Package metrics provides Prometheus instruments for the chat pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Completion outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeFault   = "fault"
	OutcomeFailure = "failure"
)

// Metrics holds the pipeline's Prometheus instruments.
type Metrics struct {
	CompletionsTotal   *prometheus.CounterVec
	CompletionDuration prometheus.Histogram
	BubblesAppended    prometheus.Counter
	SummariesTotal     *prometheus.CounterVec
	SendsRejected      prometheus.Counter
}

// New creates the instruments and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CompletionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phone_completions_total",
				Help: "Total number of chat completion calls by outcome",
			},
			[]string{"outcome"},
		),
		CompletionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "phone_completion_duration_seconds",
				Help:    "Duration of chat completion calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		BubblesAppended: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "phone_bubbles_appended_total",
				Help: "Total number of assistant bubbles appended to history",
			},
		),
		SummariesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phone_summaries_total",
				Help: "Total number of memory summarizations by outcome",
			},
			[]string{"outcome"},
		),
		SendsRejected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "phone_sends_rejected_total",
				Help: "Sends and regenerates rejected because the conversation was busy",
			},
		),
	}
}
