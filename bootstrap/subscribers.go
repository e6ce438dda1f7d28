package bootstrap

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/metrics"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/events"
)

// registerAuditSubscriber writes every domain event to the log.
func registerAuditSubscriber(bus *events.Bus, logger zerolog.Logger) {
	audit := logger.With().Str("component", "audit").Logger()
	bus.Subscribe("*", func(ctx context.Context, e events.Event) error {
		audit.Info().
			Str("event", e.Name).
			Str("schema", e.Schema).
			Str("collection", e.Collection).
			Interface("data", e.Data).
			Msg("domain event")
		return nil
	})
}

// registerMetricsSubscribers translates domain events into counters.
func registerMetricsSubscribers(bus *events.Bus, m *metrics.Collector) {
	created := func(ctx context.Context, e events.Event) error {
		m.DocumentsInserted.WithLabelValues(e.Collection).Inc()
		return nil
	}
	bus.Subscribe(events.ProductCreated, created)
	bus.Subscribe(events.OrderCreated, created)

	bus.Subscribe(events.ValidationFailed, func(ctx context.Context, e events.Event) error {
		reason, _ := e.Data["reason"].(string)
		m.ValidationFailures.WithLabelValues(e.Schema, reason).Inc()
		return nil
	})

	bus.Subscribe(events.SeedCompleted, func(ctx context.Context, e events.Event) error {
		outcome, _ := e.Data["outcome"].(string)
		m.SeedRuns.WithLabelValues(outcome).Inc()
		return nil
	})
}
