package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/events"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/validation"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

const (
	orderSchema     = "Order"
	orderCollection = "order"
)

// DefaultOrderLimit caps order listings when the caller does not ask for a
// specific limit.
const DefaultOrderLimit = 50

// OrderService manages the order collection.
type OrderService struct {
	store     ports.DocumentStore
	validator *validation.Validator
	bus       *events.Bus
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	store ports.DocumentStore,
	validator *validation.Validator,
	bus *events.Bus,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		store:     store,
		validator: validator,
		bus:       bus,
		logger:    logger.With().Str("service", "orders").Logger(),
	}
}

// Create validates the payload against the Order schema and inserts the
// coerced document into the order collection. It returns the store-assigned
// identifier.
func (s *OrderService) Create(ctx context.Context, payload map[string]any) (string, error) {
	doc, err := s.validator.Validate(orderSchema, payload)
	if err != nil {
		publishValidationFailure(ctx, s.bus, orderSchema, err)
		return "", err
	}

	id, err := s.store.Insert(ctx, orderCollection, doc)
	if err != nil {
		s.logger.Error().Err(err).Msg("order insert failed")
		return "", err
	}

	s.bus.Publish(ctx, events.Event{
		Name:       events.OrderCreated,
		Schema:     orderSchema,
		Collection: orderCollection,
		Data:       map[string]any{"_id": id},
	})

	s.logger.Info().Str("id", id).Msg("order created")
	return id, nil
}

// List returns orders up to limit. A non-positive limit falls back to
// DefaultOrderLimit.
func (s *OrderService) List(ctx context.Context, limit int64) ([]ports.Document, error) {
	if limit <= 0 {
		limit = DefaultOrderLimit
	}
	return s.store.List(ctx, orderCollection, nil, limit)
}
