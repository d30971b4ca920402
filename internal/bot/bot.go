// Package bot runs the message processing loop: inbound event, dispatch,
// reply.
package bot

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/botslacks/botslacks/internal/channels"
	"github.com/botslacks/botslacks/internal/commands"
	"github.com/botslacks/botslacks/internal/observability"
	"github.com/botslacks/botslacks/pkg/models"
)

// Bot owns the root command registry and drives dispatch over one session
// adapter. Messages are processed strictly sequentially: one message is fully
// dispatched and its reply sent before the next is read, so replies leave in
// arrival order.
type Bot struct {
	registry *commands.Registry
	adapter  channels.Adapter
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a bot around a session adapter. The command registry starts
// empty; wire commands with Register before calling Run.
func New(adapter channels.Adapter, logger *slog.Logger, metrics *observability.Metrics) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}
	return &Bot{
		registry: commands.NewRegistry(logger),
		adapter:  adapter,
		logger:   logger.With("component", "bot"),
		metrics:  metrics,
	}
}

// Register wires a command into the root registry. Startup only: the
// registry is read-only once Run starts.
func (b *Bot) Register(cmd *commands.Command) {
	b.registry.MustRegister(cmd)
}

// Registry exposes the root registry so the help command can describe it.
func (b *Bot) Registry() *commands.Registry {
	return b.registry
}

// Run consumes inbound messages until the context is canceled or the adapter
// closes its stream.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("event loop started", "commands", b.registry.Keys())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-b.adapter.Messages():
			if !ok {
				b.logger.Info("message stream closed")
				return nil
			}
			b.handle(ctx, msg)
		}
	}
}

// handle processes one inbound message. A failing or panicking handler is
// logged and counted, never fatal: one bad command must not take down the
// session loop.
func (b *Bot) handle(ctx context.Context, msg *models.InboundMessage) {
	logger := b.logger.With(
		"request_id", uuid.NewString(),
		"channel", msg.Channel,
		"sender_id", msg.SenderID)
	b.metrics.MessageCounter.WithLabelValues("inbound").Inc()

	defer func() {
		if r := recover(); r != nil {
			b.metrics.HandlerErrors.Inc()
			logger.Error("handler panicked", "panic", r)
		}
	}()

	res, err := commands.Dispatch(ctx, b.registry, msg.Text)
	if err != nil {
		b.metrics.HandlerErrors.Inc()
		logger.Error("handler failed", "error", err)
		return
	}

	b.metrics.DispatchCounter.WithLabelValues(res.Outcome.String()).Inc()
	if res.Outcome != commands.OutcomeReplied {
		return
	}

	out := &models.OutboundMessage{
		Channel: msg.Channel,
		Text:    msg.AddressPrefix() + res.Text,
	}
	if err := b.adapter.Send(ctx, out); err != nil {
		b.metrics.SendErrors.Inc()
		logger.Error("send failed", "error", err)
		return
	}

	b.metrics.MessageCounter.WithLabelValues("outbound").Inc()
	logger.Info("replied", "sequence_id", out.SequenceID, "bytes", len(out.Text))
}
