package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects the counters the bot exposes on the /metrics endpoint.
type Metrics struct {
	// MessageCounter tracks messages by direction.
	// Labels: direction (inbound|outbound)
	MessageCounter *prometheus.CounterVec

	// DispatchCounter tracks dispatch results.
	// Labels: outcome (no_match|silent|replied)
	DispatchCounter *prometheus.CounterVec

	// HandlerErrors counts handler failures caught at the loop boundary.
	HandlerErrors prometheus.Counter

	// SendErrors counts failed outbound deliveries.
	SendErrors prometheus.Counter
}

// NewMetrics creates and registers the bot's metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MessageCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botslacks_messages_total",
				Help: "Messages processed by direction.",
			},
			[]string{"direction"},
		),
		DispatchCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botslacks_dispatch_total",
				Help: "Command dispatch results by outcome.",
			},
			[]string{"outcome"},
		),
		HandlerErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "botslacks_handler_errors_total",
				Help: "Command handler failures.",
			},
		),
		SendErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "botslacks_send_errors_total",
				Help: "Failed outbound sends.",
			},
		),
	}
}
