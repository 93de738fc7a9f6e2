// Package metrics exposes prometheus counters for the chat service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service counters with their registry
type Metrics struct {
	registry *prometheus.Registry

	ChatTurns           prometheus.Counter
	FAQFallbacks        prometheus.Counter
	FeedbackSubmissions prometheus.Counter
}

// New creates a registry with process collectors and the service counters
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		ChatTurns: factory.NewCounter(prometheus.CounterOpts{
			Name: "copilot_chat_turns_total",
			Help: "Completed chat turns.",
		}),
		FAQFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "copilot_faq_fallbacks_total",
			Help: "Chat turns answered with a fallback instead of an FAQ match.",
		}),
		FeedbackSubmissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "copilot_feedback_submissions_total",
			Help: "Feedback records accepted.",
		}),
	}
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
