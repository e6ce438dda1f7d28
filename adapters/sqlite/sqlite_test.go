package sqlite_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/clock"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/idgen"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/adapters/sqlite"
	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

func setupTestDB(t *testing.T) (*sqlite.DB, func()) {
	t.Helper()

	// Create temp file for test database
	f, err := os.CreateTemp("", "cartx-test-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := sqlite.Open(path)
	if err != nil {
		os.Remove(path)
		t.Fatalf("open database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		os.Remove(path)
		t.Fatalf("migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(path)
	}

	return db, cleanup
}

func newTestStore(db *sqlite.DB) *sqlite.DocumentStore {
	fake := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return sqlite.NewDocumentStore(db, idgen.NewSequential("doc-"), fake)
}

func TestDocumentStore_InsertAndList(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := newTestStore(db)
	ctx := context.Background()

	id, err := store.Insert(ctx, "product", ports.Document{
		"title":    "Orion Headphones",
		"price":    129.99,
		"category": "Audio",
		"in_stock": true,
	})
	if err != nil {
		t.Fatalf("insert document: %v", err)
	}
	if id == "" {
		t.Fatal("insert returned empty id")
	}

	docs, err := store.List(ctx, "product", nil, 0)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len = %d, want 1", len(docs))
	}

	got := docs[0]
	if got["_id"] != id {
		t.Errorf("_id = %v, want %s", got["_id"], id)
	}
	if got["title"] != "Orion Headphones" {
		t.Errorf("title = %v, want Orion Headphones", got["title"])
	}
	if got["price"] != 129.99 {
		t.Errorf("price = %v, want 129.99", got["price"])
	}
	if got["in_stock"] != true {
		t.Errorf("in_stock = %v, want true", got["in_stock"])
	}
}

func TestDocumentStore_ListFilter(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := newTestStore(db)
	ctx := context.Background()

	for _, d := range []ports.Document{
		{"title": "a", "category": "Audio"},
		{"title": "b", "category": "Wearables"},
		{"title": "c", "category": "Audio"},
	} {
		if _, err := store.Insert(ctx, "product", d); err != nil {
			t.Fatalf("insert document: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter map[string]any
		limit  int64
		want   int
	}{
		{"no filter", nil, 0, 3},
		{"category match", map[string]any{"category": "Audio"}, 0, 2},
		{"category miss", map[string]any{"category": "Networking"}, 0, 0},
		{"filtered with limit", map[string]any{"category": "Audio"}, 1, 1},
		{"unfiltered with limit", nil, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := store.List(ctx, "product", tt.filter, tt.limit)
			if err != nil {
				t.Fatalf("list documents: %v", err)
			}
			if len(docs) != tt.want {
				t.Errorf("len = %d, want %d", len(docs), tt.want)
			}
		})
	}
}

func TestDocumentStore_InsertionOrder(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := newTestStore(db)
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := store.Insert(ctx, "order", ports.Document{"title": title}); err != nil {
			t.Fatalf("insert document: %v", err)
		}
	}

	docs, err := store.List(ctx, "order", nil, 0)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	for i, title := range titles {
		if docs[i]["title"] != title {
			t.Errorf("docs[%d].title = %v, want %s", i, docs[i]["title"], title)
		}
	}
}

func TestDocumentStore_NumericFilter(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := newTestStore(db)
	ctx := context.Background()

	// JSON decoding turns all numbers into float64; an int filter value
	// must still match.
	if _, err := store.Insert(ctx, "product", ports.Document{"qty": 5}); err != nil {
		t.Fatalf("insert document: %v", err)
	}

	docs, err := store.List(ctx, "product", map[string]any{"qty": 5}, 0)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("len = %d, want 1", len(docs))
	}
}

func TestDocumentStore_CollectionsIsolated(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := newTestStore(db)
	ctx := context.Background()

	store.Insert(ctx, "product", ports.Document{"title": "p"})
	store.Insert(ctx, "order", ports.Document{"total": 1.0})

	products, err := store.List(ctx, "product", nil, 0)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("products len = %d, want 1", len(products))
	}

	names, err := store.Collections(ctx)
	if err != nil {
		t.Fatalf("collections: %v", err)
	}
	if len(names) != 2 || names[0] != "order" || names[1] != "product" {
		t.Errorf("Collections() = %v, want [order product]", names)
	}
}

func TestDocumentStore_Ping(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := newTestStore(db)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
	if store.Name() != "sqlite" {
		t.Errorf("Name() = %q, want sqlite", store.Name())
	}
}

func TestMigration_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	// Run migrations again - should be idempotent
	if err := db.Migrate(); err != nil {
		t.Fatalf("second migration: %v", err)
	}
}
