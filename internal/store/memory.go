package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Memory is an in-process DocumentStore used by tests and dry runs.
type Memory struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]map[string]any)}
}

func (m *Memory) Count(_ context.Context, collection string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.collections[collection])), nil
}

func (m *Memory) FindByField(_ context.Context, collection, field, value string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.collections[collection] {
		if fieldValue(doc, field) == value {
			return doc, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Set(_ context.Context, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.put(doc)
}

func (m *Memory) BulkSet(_ context.Context, docs []Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range docs {
		if err := m.put(doc); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) DeleteAll(_ context.Context, collection string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.collections[collection]))
	delete(m.collections, collection)
	return n, nil
}

func (m *Memory) GroupCount(_ context.Context, collection, field string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int64)
	for _, doc := range m.collections[collection] {
		counts[fieldValue(doc, field)]++
	}
	return counts, nil
}

func (m *Memory) put(doc Document) error {
	flat, err := toMap(doc.Data)
	if err != nil {
		return fmt.Errorf("memory set %s/%s: %w", doc.Collection, doc.ID, err)
	}
	flat["_id"] = doc.ID

	if m.collections[doc.Collection] == nil {
		m.collections[doc.Collection] = make(map[string]map[string]any)
	}
	m.collections[doc.Collection][doc.ID] = flat
	return nil
}

// toMap flattens an entity into a generic document the same way a driver
// would, so field lookups behave like the real store.
func toMap(data any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

// fieldValue resolves a possibly dotted field path to its string value.
func fieldValue(doc map[string]any, field string) string {
	current := any(doc)
	for _, part := range strings.Split(field, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = node[part]
	}
	if s, ok := current.(string); ok {
		return s
	}
	return ""
}
