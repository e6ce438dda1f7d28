package bootstrap

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/metrics"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/events"
)

func gatherCounter(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetricsSubscribers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	bus := events.NewBus(zerolog.Nop())
	registerMetricsSubscribers(bus, m)
	ctx := context.Background()

	bus.Publish(ctx, events.Event{
		Name: events.ProductCreated, Schema: "CatalogItem", Collection: "product",
		Data: map[string]any{"_id": "doc-1"},
	})
	bus.Publish(ctx, events.Event{
		Name: events.OrderCreated, Schema: "Order", Collection: "order",
		Data: map[string]any{"_id": "doc-2"},
	})
	bus.Publish(ctx, events.Event{
		Name: events.ValidationFailed, Schema: "CatalogItem",
		Data: map[string]any{"field": "price", "reason": "out-of-range"},
	})
	bus.Publish(ctx, events.Event{
		Name: events.SeedCompleted,
		Data: map[string]any{"outcome": "seeded", "count": 4},
	})

	if got := gatherCounter(t, reg, "cartx_documents_inserted_total"); got != 2 {
		t.Errorf("documents inserted = %v, want 2", got)
	}
	if got := gatherCounter(t, reg, "cartx_validation_failures_total"); got != 1 {
		t.Errorf("validation failures = %v, want 1", got)
	}
	if got := gatherCounter(t, reg, "cartx_seed_runs_total"); got != 1 {
		t.Errorf("seed runs = %v, want 1", got)
	}
}

func TestAuditSubscriber(t *testing.T) {
	old := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(old) })

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	bus := events.NewBus(zerolog.Nop())
	registerAuditSubscriber(bus, logger)

	bus.Publish(context.Background(), events.Event{
		Name:       events.ProductCreated,
		Schema:     "CatalogItem",
		Collection: "product",
		Data:       map[string]any{"_id": "doc-1"},
	})

	out := buf.String()
	if !strings.Contains(out, "product.created") {
		t.Errorf("audit log missing event name: %s", out)
	}
	if !strings.Contains(out, "doc-1") {
		t.Errorf("audit log missing event data: %s", out)
	}
	if !strings.Contains(out, `"component":"audit"`) {
		t.Errorf("audit log missing component field: %s", out)
	}
}
