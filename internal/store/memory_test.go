package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, Document{
		Collection: "products",
		ID:         "p-1",
		Data: map[string]any{
			"name":       "Mirror",
			"categoryId": "diagnostic",
			"meta":       map[string]any{"origin": "import"},
		},
	}))

	doc, err := m.FindByField(ctx, "products", "name", "Mirror")
	require.NoError(t, err)
	assert.Equal(t, "p-1", doc["_id"])

	// dotted paths address nested fields
	doc, err = m.FindByField(ctx, "products", "meta.origin", "import")
	require.NoError(t, err)
	assert.Equal(t, "p-1", doc["_id"])

	_, err = m.FindByField(ctx, "products", "name", "Absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryGroupCountAndDeleteAll(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, doc := range []Document{
		{Collection: "products", ID: "a", Data: map[string]any{"categoryId": "endodontics"}},
		{Collection: "products", ID: "b", Data: map[string]any{"categoryId": "endodontics"}},
		{Collection: "products", ID: "c", Data: map[string]any{"categoryId": "surgical"}},
	} {
		require.NoError(t, m.Set(ctx, doc))
	}

	counts, err := m.GroupCount(ctx, "products", "categoryId")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["endodontics"])
	assert.Equal(t, int64(1), counts["surgical"])

	deleted, err := m.DeleteAll(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	n, err := m.Count(ctx, "products")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemorySetIsUpsert(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, Document{Collection: "products", ID: "a", Data: map[string]any{"name": "v1"}}))
	require.NoError(t, m.Set(ctx, Document{Collection: "products", ID: "a", Data: map[string]any{"name": "v2"}}))

	n, err := m.Count(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	doc, err := m.FindByField(ctx, "products", "name", "v2")
	require.NoError(t, err)
	assert.Equal(t, "a", doc["_id"])
}
