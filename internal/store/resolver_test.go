package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-reseeder/internal/models"
)

// countingStore wraps Memory and counts FindByField round-trips.
type countingStore struct {
	*Memory
	lookups int
}

func (c *countingStore) FindByField(ctx context.Context, collection, field, value string) (map[string]any, error) {
	c.lookups++
	return c.Memory.FindByField(ctx, collection, field, value)
}

func seededStore(t *testing.T) *countingStore {
	t.Helper()
	cs := &countingStore{Memory: NewMemory()}
	ctx := context.Background()

	require.NoError(t, cs.Set(ctx, Document{
		Collection: models.CollectionCategories,
		ID:         "endodontics",
		Data: models.Category{
			ID:   "endodontics",
			Slug: "endodontics",
			Name: map[string]string{"en": "Endodontics"},
		},
	}))
	require.NoError(t, cs.Set(ctx, Document{
		Collection: models.CollectionVendors,
		ID:         "vendor-dentalpro",
		Data:       models.Vendor{ID: "vendor-dentalpro", Name: "DentalPro Supplies"},
	}))
	return cs
}

func TestResolverCategoryBySlug(t *testing.T) {
	r := NewResolver(seededStore(t), "consumables")

	id, err := r.CategoryID(context.Background(), "endodontics")
	require.NoError(t, err)
	assert.Equal(t, "endodontics", id)
}

func TestResolverCategoryByName(t *testing.T) {
	r := NewResolver(seededStore(t), "consumables")

	id, err := r.CategoryID(context.Background(), "Endodontics")
	require.NoError(t, err)
	assert.Equal(t, "endodontics", id)
}

func TestResolverCategoryDefaultFallback(t *testing.T) {
	r := NewResolver(seededStore(t), "consumables")

	id, err := r.CategoryID(context.Background(), "no-such-category")
	require.NoError(t, err)
	assert.Equal(t, "consumables", id)
}

func TestResolverVendorNotFoundIsSentinel(t *testing.T) {
	r := NewResolver(seededStore(t), "consumables")

	_, err := r.VendorID(context.Background(), "Unknown Vendor")
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestResolverMemoizesLookups(t *testing.T) {
	cs := seededStore(t)
	r := NewResolver(cs, "consumables")
	ctx := context.Background()

	_, err := r.CategoryID(ctx, "endodontics")
	require.NoError(t, err)
	after := cs.lookups

	for i := 0; i < 10; i++ {
		id, err := r.CategoryID(ctx, "endodontics")
		require.NoError(t, err)
		assert.Equal(t, "endodontics", id)
	}
	assert.Equal(t, after, cs.lookups, "repeated lookups must be served from cache")

	_, err = r.VendorID(ctx, "DentalPro Supplies")
	require.NoError(t, err)
	after = cs.lookups
	_, err = r.VendorID(ctx, "DentalPro Supplies")
	require.NoError(t, err)
	assert.Equal(t, after, cs.lookups)
}

func TestResolverMemoizesNegativeVendorResults(t *testing.T) {
	cs := seededStore(t)
	r := NewResolver(cs, "consumables")
	ctx := context.Background()

	_, err := r.VendorID(ctx, "Ghost Vendor")
	assert.ErrorIs(t, err, ErrVendorNotFound)
	after := cs.lookups

	_, err = r.VendorID(ctx, "Ghost Vendor")
	assert.ErrorIs(t, err, ErrVendorNotFound)
	assert.Equal(t, after, cs.lookups)
}

func TestResolverFlushEvictsCache(t *testing.T) {
	cs := seededStore(t)
	r := NewResolver(cs, "consumables")
	ctx := context.Background()

	_, err := r.CategoryID(ctx, "endodontics")
	require.NoError(t, err)
	before := cs.lookups

	r.Flush()

	_, err = r.CategoryID(ctx, "endodontics")
	require.NoError(t, err)
	assert.Greater(t, cs.lookups, before, "flush must force a fresh store lookup")
}
