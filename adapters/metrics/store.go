package metrics

import (
	"context"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

// InstrumentedStore wraps a document store and counts every operation with
// an outcome label. The wrapped store keeps its own Name so logs and
// diagnostics report the real backend.
type InstrumentedStore struct {
	next ports.DocumentStore
	m    *Collector
}

var _ ports.DocumentStore = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps next with operation counters.
func NewInstrumentedStore(next ports.DocumentStore, m *Collector) *InstrumentedStore {
	return &InstrumentedStore{next: next, m: m}
}

func (s *InstrumentedStore) Insert(ctx context.Context, collection string, doc ports.Document) (string, error) {
	id, err := s.next.Insert(ctx, collection, doc)
	s.m.StoreOperations.WithLabelValues("insert", collection, outcome(err)).Inc()
	return id, err
}

func (s *InstrumentedStore) List(ctx context.Context, collection string, filter map[string]any, limit int64) ([]ports.Document, error) {
	docs, err := s.next.List(ctx, collection, filter, limit)
	s.m.StoreOperations.WithLabelValues("list", collection, outcome(err)).Inc()
	return docs, err
}

func (s *InstrumentedStore) Collections(ctx context.Context) ([]string, error) {
	names, err := s.next.Collections(ctx)
	s.m.StoreOperations.WithLabelValues("collections", "", outcome(err)).Inc()
	return names, err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	err := s.next.Ping(ctx)
	s.m.StoreOperations.WithLabelValues("ping", "", outcome(err)).Inc()
	return err
}

func (s *InstrumentedStore) Name() string {
	return s.next.Name()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
