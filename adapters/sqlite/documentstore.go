package sqlite

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

// DocumentStore implements ports.DocumentStore on the documents table.
// Bodies are stored as JSON text; a collection is the set of rows sharing a
// collection name. Listing preserves insertion order via rowid.
type DocumentStore struct {
	db    *DB
	ids   ports.IDGenerator
	clock ports.Clock
}

// NewDocumentStore creates a SQLite-backed document store.
func NewDocumentStore(db *DB, ids ports.IDGenerator, clock ports.Clock) *DocumentStore {
	return &DocumentStore{db: db, ids: ids, clock: clock}
}

// Insert stores a document under collection and returns its generated ID.
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc ports.Document) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", &ports.StorageError{Op: "insert", Collection: collection, Err: err}
	}

	id := s.ids.New()
	_, err = s.db.DB.ExecContext(ctx,
		`INSERT INTO documents (id, collection, body, created_at) VALUES (?, ?, ?, ?)`,
		id, collection, string(body), s.clock.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", &ports.StorageError{Op: "insert", Collection: collection, Err: err}
	}
	return id, nil
}

// List returns documents matching filter in insertion order, up to limit when
// limit > 0. Filtering happens after JSON decoding, so the limit is pushed
// into SQL only for unfiltered queries.
func (s *DocumentStore) List(ctx context.Context, collection string, filter map[string]any, limit int64) ([]ports.Document, error) {
	query := `SELECT id, body FROM documents WHERE collection = ? ORDER BY rowid`
	args := []any{collection}
	if limit > 0 && len(filter) == 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &ports.StorageError{Op: "list", Collection: collection, Err: err}
	}
	defer rows.Close()

	docs := make([]ports.Document, 0)
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, &ports.StorageError{Op: "list", Collection: collection, Err: err}
		}

		doc := make(ports.Document)
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, &ports.StorageError{Op: "list", Collection: collection, Err: err}
		}
		if !matchesFilter(doc, filter) {
			continue
		}

		doc["_id"] = id
		docs = append(docs, doc)
		if limit > 0 && int64(len(docs)) >= limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &ports.StorageError{Op: "list", Collection: collection, Err: err}
	}
	return docs, nil
}

// Collections lists distinct collection names.
func (s *DocumentStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.DB.QueryContext(ctx,
		`SELECT DISTINCT collection FROM documents ORDER BY collection`,
	)
	if err != nil {
		return nil, &ports.StorageError{Op: "collections", Err: err}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &ports.StorageError{Op: "collections", Err: err}
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Ping verifies the database file is reachable.
func (s *DocumentStore) Ping(ctx context.Context) error {
	if err := s.db.DB.PingContext(ctx); err != nil {
		return &ports.StorageError{Op: "ping", Err: err}
	}
	return nil
}

// Name identifies the store backend.
func (s *DocumentStore) Name() string {
	return "sqlite"
}

// matchesFilter reports whether every filter field equals the document's
// value. JSON decoding yields float64 for all numbers, so numeric filter
// values of other Go types are normalized before comparison.
func matchesFilter(doc ports.Document, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Ensure interface compliance.
var _ ports.DocumentStore = (*DocumentStore)(nil)
