// Package app contains the use-case services behind the HTTP handlers:
// catalog (products), orders, and diagnostics.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/events"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/core/validation"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

const (
	catalogSchema     = "CatalogItem"
	productCollection = "product"
)

// Seed statuses reported by CatalogService.Seed.
const (
	SeedStatusSeeded        = "seeded"
	SeedStatusAlreadySeeded = "already-seeded"
)

// CatalogService manages the product collection: validated creation,
// category-filtered listing, and idempotent sample seeding.
type CatalogService struct {
	store     ports.DocumentStore
	validator *validation.Validator
	bus       *events.Bus
	logger    zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	store ports.DocumentStore,
	validator *validation.Validator,
	bus *events.Bus,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		store:     store,
		validator: validator,
		bus:       bus,
		logger:    logger.With().Str("service", "catalog").Logger(),
	}
}

// Create validates the payload against the CatalogItem schema and inserts the
// coerced document into the product collection. It returns the store-assigned
// identifier.
func (s *CatalogService) Create(ctx context.Context, payload map[string]any) (string, error) {
	doc, err := s.validator.Validate(catalogSchema, payload)
	if err != nil {
		publishValidationFailure(ctx, s.bus, catalogSchema, err)
		return "", err
	}

	id, err := s.store.Insert(ctx, productCollection, doc)
	if err != nil {
		s.logger.Error().Err(err).Msg("product insert failed")
		return "", err
	}

	s.bus.Publish(ctx, events.Event{
		Name:       events.ProductCreated,
		Schema:     catalogSchema,
		Collection: productCollection,
		Data:       map[string]any{"_id": id},
	})

	s.logger.Info().Str("id", id).Msg("product created")
	return id, nil
}

// List returns products, optionally narrowed to an exact category match.
// An empty category returns every product.
func (s *CatalogService) List(ctx context.Context, category string) ([]ports.Document, error) {
	var filter map[string]any
	if category != "" {
		filter = map[string]any{"category": category}
	}
	return s.store.List(ctx, productCollection, filter, 0)
}

// SeedResult reports what a seeding pass did. Count and IDs are only set when
// documents were actually written.
type SeedResult struct {
	Status string   `json:"status"`
	Count  int      `json:"count,omitempty"`
	IDs    []string `json:"ids,omitempty"`
}

// Seed inserts the sample products unless the product collection already
// holds at least one document. It is safe to call repeatedly.
func (s *CatalogService) Seed(ctx context.Context) (SeedResult, error) {
	existing, err := s.store.List(ctx, productCollection, nil, 1)
	if err != nil {
		return SeedResult{}, err
	}
	if len(existing) > 0 {
		s.logger.Info().Msg("seed skipped, products already present")
		s.publishSeedCompleted(ctx, SeedStatusAlreadySeeded, 0)
		return SeedResult{Status: SeedStatusAlreadySeeded}, nil
	}

	rows := sampleProducts()
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		id, err := s.Create(ctx, row)
		if err != nil {
			return SeedResult{}, err
		}
		ids = append(ids, id)
	}

	s.publishSeedCompleted(ctx, SeedStatusSeeded, len(ids))
	s.logger.Info().Int("count", len(ids)).Msg("sample products seeded")
	return SeedResult{Status: SeedStatusSeeded, Count: len(ids), IDs: ids}, nil
}

func (s *CatalogService) publishSeedCompleted(ctx context.Context, outcome string, count int) {
	s.bus.Publish(ctx, events.Event{
		Name:       events.SeedCompleted,
		Schema:     catalogSchema,
		Collection: productCollection,
		Data:       map[string]any{"outcome": outcome, "count": count},
	})
}

// sampleProducts returns the raw seed payloads. They run through the same
// validation path as client-submitted products.
func sampleProducts() []map[string]any {
	return []map[string]any{
		{
			"title":       "Orion Headphones",
			"description": "High-fidelity wireless headphones with noise cancellation.",
			"price":       129.99,
			"category":    "Audio",
			"image":       "https://images.unsplash.com/photo-1518443895470-87f48ac871ec?q=80&w=1600&auto=format&fit=crop",
			"in_stock":    true,
		},
		{
			"title":       "Nova Smartwatch",
			"description": "AMOLED display, 7-day battery, fitness tracking.",
			"price":       199.00,
			"category":    "Wearables",
			"image":       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?q=80&w=1600&auto=format&fit=crop",
			"in_stock":    true,
		},
		{
			"title":       "Flux Portable Speaker",
			"description": "Compact speaker with powerful bass and orange accent ring.",
			"price":       89.50,
			"category":    "Audio",
			"image":       "https://images.unsplash.com/photo-1519677100203-a0e668c92439?q=80&w=1600&auto=format&fit=crop",
			"in_stock":    true,
		},
		{
			"title":       "Pulse Mechanical Keyboard",
			"description": "Hot-swappable switches, RGB, USB-C.",
			"price":       149.00,
			"category":    "Peripherals",
			"image":       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?q=80&w=1600&auto=format&fit=crop",
			"in_stock":    true,
		},
	}
}

// publishValidationFailure emits a validation.failed event when err is a
// validation error. Other error kinds are not events.
func publishValidationFailure(ctx context.Context, bus *events.Bus, schemaName string, err error) {
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	bus.Publish(ctx, events.Event{
		Name:   events.ValidationFailed,
		Schema: schemaName,
		Data:   map[string]any{"field": verr.Field, "reason": verr.Reason},
	})
}
