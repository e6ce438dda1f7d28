// Package events provides a simple event bus for publish/subscribe patterns.
// Services emit domain events (product.created, seed.completed,
// validation.failed); bootstrap wires the audit-log and metrics subscribers.
package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Event names published by the application services.
const (
	ProductCreated   = "product.created"
	OrderCreated     = "order.created"
	SeedCompleted    = "seed.completed"
	ValidationFailed = "validation.failed"
)

// Event represents a published event.
type Event struct {
	// Name is the event name (e.g., "product.created", "seed.completed").
	Name string

	// Schema is the schema involved, when the event concerns one.
	Schema string

	// Collection is the store collection involved, when any.
	Collection string

	// Data contains the event payload.
	Data map[string]any
}

// Handler is a function that processes an event.
type Handler func(ctx context.Context, event Event) error

// Bus is a simple publish/subscribe event bus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   zerolog.Logger
}

// NewBus creates a new event bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event.
// Supports wildcard subscriptions:
//   - "product.created" - exact match
//   - "product.*" - all product events
//   - "*" - all events
func (b *Bus) Subscribe(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Publish emits an event to all matching handlers.
// Handlers are called synchronously in registration order. A handler error is
// logged and never propagated; events must not fail the request that emitted
// them.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.logger.Debug().
		Str("event", event.Name).
		Str("schema", event.Schema).
		Msg("event emitted")

	var matched []Handler

	// Exact match
	if handlers, ok := b.handlers[event.Name]; ok {
		matched = append(matched, handlers...)
	}

	// Prefix wildcard (e.g., "product.*")
	if parts := splitEvent(event.Name); len(parts) >= 1 {
		wildcard := parts[0] + ".*"
		if handlers, ok := b.handlers[wildcard]; ok {
			matched = append(matched, handlers...)
		}
	}

	// Global wildcard
	if handlers, ok := b.handlers["*"]; ok {
		matched = append(matched, handlers...)
	}

	for _, handler := range matched {
		if err := handler(ctx, event); err != nil {
			b.logger.Error().
				Err(err).
				Str("event", event.Name).
				Msg("event handler error")
		}
	}
}

// splitEvent splits an event name by "."
func splitEvent(name string) []string {
	var parts []string
	start := 0
	for i, c := range name {
		if c == '.' {
			parts = append(parts, name[start:i])
			start = i + 1
		}
	}
	if start < len(name) {
		parts = append(parts, name[start:])
	}
	return parts
}
