package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"catalog-reseeder/internal/models"
	"catalog-reseeder/internal/util"
)

// ErrVendorNotFound signals a vendor name with no matching document. There
// is no implicit fallback: a product without a vendor is invalid, so the
// caller decides whether to skip the whole source file.
var ErrVendorNotFound = errors.New("vendor not found")

// Resolver translates human-readable category and vendor names into store
// document ids. Results are memoized per run; lookups for a repeated name
// hit the store at most once. Safe for concurrent use.
type Resolver struct {
	store           DocumentStore
	defaultCategory string
	logger          *zap.Logger

	mu         sync.Mutex
	categories map[string]string
	vendors    map[string]vendorEntry
}

type vendorEntry struct {
	id    string
	found bool
}

// NewResolver creates a resolver with the given fallback category id.
func NewResolver(store DocumentStore, defaultCategory string) *Resolver {
	r := &Resolver{
		store:           store,
		defaultCategory: defaultCategory,
		logger:          util.GetLogger(),
	}
	r.Flush()
	return r
}

// CategoryID resolves a category name: exact slug match first, then exact
// name match, then the default category with a logged warning. Never fails
// on a miss; only store errors propagate.
func (r *Resolver) CategoryID(ctx context.Context, name string) (string, error) {
	r.mu.Lock()
	if id, ok := r.categories[name]; ok {
		r.mu.Unlock()
		util.ResolverCacheHitsTotal.Inc()
		return id, nil
	}
	r.mu.Unlock()

	id, err := r.lookupCategory(ctx, name)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.categories[name] = id
	r.mu.Unlock()
	return id, nil
}

func (r *Resolver) lookupCategory(ctx context.Context, name string) (string, error) {
	doc, err := r.store.FindByField(ctx, models.CollectionCategories, "slug", name)
	if errors.Is(err, ErrNotFound) {
		doc, err = r.store.FindByField(ctx, models.CollectionCategories, "name.en", name)
	}
	if errors.Is(err, ErrNotFound) {
		r.logger.Warn("Category not found, using default",
			zap.String("category", name),
			zap.String("default", r.defaultCategory))
		return r.defaultCategory, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve category %q: %w", name, err)
	}
	return docID(doc), nil
}

// VendorID resolves a vendor by exact name match. A miss returns
// ErrVendorNotFound; negative results are cached like positive ones.
func (r *Resolver) VendorID(ctx context.Context, name string) (string, error) {
	r.mu.Lock()
	if entry, ok := r.vendors[name]; ok {
		r.mu.Unlock()
		util.ResolverCacheHitsTotal.Inc()
		if !entry.found {
			return "", fmt.Errorf("%w: %s", ErrVendorNotFound, name)
		}
		return entry.id, nil
	}
	r.mu.Unlock()

	doc, err := r.store.FindByField(ctx, models.CollectionVendors, "name", name)
	if errors.Is(err, ErrNotFound) {
		r.mu.Lock()
		r.vendors[name] = vendorEntry{}
		r.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrVendorNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("resolve vendor %q: %w", name, err)
	}

	id := docID(doc)
	r.mu.Lock()
	r.vendors[name] = vendorEntry{id: id, found: true}
	r.mu.Unlock()
	return id, nil
}

// Flush evicts the memoization cache. The pipeline invokes it at run
// boundaries; cached ids must not survive a clear-then-reseed cycle.
func (r *Resolver) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = make(map[string]string)
	r.vendors = make(map[string]vendorEntry)
}
