// Package store abstracts the document store the pipeline writes to and
// carries the batch writer and reference resolver built on top of it.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by FindByField when no document matches.
var ErrNotFound = errors.New("document not found")

// Document pairs an entity with its target collection and deterministic id.
type Document struct {
	Collection string
	ID         string
	Data       any
}

// DocumentStore is the collaborator consumed by the pipeline: full-scan
// counts, equality lookups, upserts by id, bounded multi-writes and
// collection clears.
type DocumentStore interface {
	// Count returns the number of documents in a collection.
	Count(ctx context.Context, collection string) (int64, error)
	// FindByField returns the first document whose field equals value.
	// Dotted paths address nested fields.
	FindByField(ctx context.Context, collection, field, value string) (map[string]any, error)
	// Set upserts a single document by id.
	Set(ctx context.Context, doc Document) error
	// BulkSet commits a group of upserts as one multi-write unit.
	BulkSet(ctx context.Context, docs []Document) error
	// DeleteAll removes every document in a collection and reports how many.
	DeleteAll(ctx context.Context, collection string) (int64, error)
	// GroupCount returns document counts grouped by the given field's value.
	GroupCount(ctx context.Context, collection, field string) (map[string]int64, error)
}

// docID extracts the store id from a fetched document.
func docID(doc map[string]any) string {
	if id, ok := doc["_id"].(string); ok {
		return id
	}
	return ""
}
