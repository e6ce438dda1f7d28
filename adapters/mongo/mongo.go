// Package mongo implements ports.DocumentStore on MongoDB. Documents are
// stored as-is; MongoDB assigns ObjectIDs, which are exposed to callers as
// hex strings.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nikita1503agarwal/backend-repo-tekn7rlf-t29ckk/ports"
)

// Config holds connection settings for a MongoDB deployment.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// DocumentStore is a MongoDB-backed document store.
type DocumentStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a client and verifies the deployment is reachable.
func Connect(ctx context.Context, cfg Config) (*DocumentStore, error) {
	if cfg.URI == "" {
		return nil, ports.ErrNotConfigured
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &DocumentStore{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Insert stores a document and returns the assigned ObjectID as a hex string.
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc ports.Document) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", &ports.StorageError{Op: "insert", Collection: collection, Err: err}
	}
	return insertedID(res.InsertedID), nil
}

// List returns documents matching filter, up to limit when limit > 0. The
// stored ObjectID is rewritten to its hex form under "_id".
func (s *DocumentStore) List(ctx context.Context, collection string, filter map[string]any, limit int64) ([]ports.Document, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.db.Collection(collection).Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, &ports.StorageError{Op: "list", Collection: collection, Err: err}
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, &ports.StorageError{Op: "list", Collection: collection, Err: err}
	}

	docs := make([]ports.Document, 0, len(raw))
	for _, r := range raw {
		docs = append(docs, normalizeDocument(r))
	}
	return docs, nil
}

// Collections lists collection names in the configured database.
func (s *DocumentStore) Collections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, &ports.StorageError{Op: "collections", Err: err}
	}
	return names, nil
}

// Ping verifies the deployment is still reachable.
func (s *DocumentStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return &ports.StorageError{Op: "ping", Err: err}
	}
	return nil
}

// Name identifies the store backend.
func (s *DocumentStore) Name() string {
	return "mongo"
}

// Close releases the underlying client.
func (s *DocumentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// buildFilter converts the caller's filter into a bson query. A nil filter
// matches everything.
func buildFilter(filter map[string]any) bson.M {
	q := bson.M{}
	for k, v := range filter {
		q[k] = v
	}
	return q
}

// normalizeDocument converts a decoded bson document into the portable form,
// replacing the ObjectID under "_id" with its hex string.
func normalizeDocument(raw bson.M) ports.Document {
	doc := make(ports.Document, len(raw))
	for k, v := range raw {
		doc[k] = v
	}
	if id, ok := doc["_id"]; ok {
		doc["_id"] = idString(id)
	}
	return doc
}

// insertedID renders the driver's inserted ID as a string.
func insertedID(id any) string {
	return idString(id)
}

func idString(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Ensure interface compliance.
var _ ports.DocumentStore = (*DocumentStore)(nil)
