package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-reseeder/internal/classify"
)

func TestCategoryIDsMatchClassifierTaxonomy(t *testing.T) {
	categories := Categories()
	ids := classify.CategoryIDs()
	require.Len(t, categories, len(ids))

	for i, c := range categories {
		assert.Equal(t, ids[i], c.ID)
		assert.Equal(t, c.ID, c.Slug, "category ids double as slugs")
		assert.True(t, c.IsActive)
		assert.NotEmpty(t, c.Name["en"])
	}
}

func TestVendorsHaveStableIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range Vendors() {
		assert.NotEmpty(t, v.ID)
		assert.NotEmpty(t, v.Name)
		assert.NotEmpty(t, v.Slug)
		assert.False(t, seen[v.ID], "vendor ids must be unique")
		seen[v.ID] = true
	}
}
