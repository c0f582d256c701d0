package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"catalog-reseeder/internal/models"
)

var testOpts = Options{Currency: "USD"}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips punctuation", "Dental Chair Unit!", "dental-chair-unit"},
		{"collapses whitespace", "Root  Canal   Kit", "root-canal-kit"},
		{"collapses hyphen runs", "Gutta--Percha - Points", "gutta-percha-points"},
		{"trims edge hyphens", "-Premium Gloves-", "premium-gloves"},
		{"empty input falls back", "", SlugFallback},
		{"symbols only falls back", "!!!", SlugFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestRecordNumericDefaults(t *testing.T) {
	now := time.Now()

	for name, raw := range map[string]models.RawRecord{
		"absent":      {"name": "Probe"},
		"non-numeric": {"name": "Probe", "price": "n/a", "stock": "soon"},
		"wrong type":  {"name": "Probe", "price": []any{"9"}, "stock": map[string]any{}},
		"negative":    {"name": "Probe", "price": -10.0, "stock": -3.0},
	} {
		t.Run(name, func(t *testing.T) {
			p := Record(raw, "vendor-1", testOpts, now)
			assert.Equal(t, 0.0, p.Price)
			assert.Equal(t, 0, p.Stock)
		})
	}
}

func TestRecordNumericCoercion(t *testing.T) {
	p := Record(models.RawRecord{
		"name":  "Composite Kit",
		"price": "49.90",
		"stock": 12.0,
	}, "vendor-1", testOpts, time.Now())

	assert.Equal(t, 49.90, p.Price)
	assert.Equal(t, 12, p.Stock)
}

func TestRecordIdentityPrecedence(t *testing.T) {
	now := time.Now()

	p := Record(models.RawRecord{"sku": "ABC-1", "vendorSku": "V-9"}, "vendor-1", testOpts, now)
	assert.Equal(t, "ABC-1", p.ID)
	assert.Equal(t, "ABC-1", p.SKU)

	p = Record(models.RawRecord{"vendorSku": "V-9"}, "vendor-1", testOpts, now)
	assert.Equal(t, "V-9", p.ID)
	assert.Equal(t, "V-9", p.SKU)

	p = Record(models.RawRecord{"name": "No identifiers"}, "vendor-1", testOpts, now)
	assert.NotEmpty(t, p.ID)
	assert.Contains(t, p.SKU, "SKU_")
}

func TestRecordGeneratedIDsAreUnique(t *testing.T) {
	now := time.Now()
	a := Record(models.RawRecord{}, "vendor-1", testOpts, now)
	b := Record(models.RawRecord{}, "vendor-1", testOpts, now)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecordSlugPrecedence(t *testing.T) {
	p := Record(models.RawRecord{"name": "Curing Light", "slug": "custom-slug"}, "vendor-1", testOpts, time.Now())
	assert.Equal(t, "custom-slug", p.Slug)

	p = Record(models.RawRecord{"name": "Curing Light"}, "vendor-1", testOpts, time.Now())
	assert.Equal(t, "curing-light", p.Slug)
}

func TestRecordDescriptionFallbackChain(t *testing.T) {
	p := Record(models.RawRecord{"name": "Scaler", "description": "Ultrasonic scaler tip"}, "v", testOpts, time.Now())
	assert.Equal(t, "Ultrasonic scaler tip", p.Description)

	p = Record(models.RawRecord{"name": "Scaler"}, "v", testOpts, time.Now())
	assert.Equal(t, "Scaler", p.Description)

	p = Record(models.RawRecord{}, "v", testOpts, time.Now())
	assert.Equal(t, DescriptionFallback, p.Description)
}

func TestRecordCollectionsNeverNil(t *testing.T) {
	p := Record(models.RawRecord{"name": "Mirror"}, "v", testOpts, time.Now())

	assert.NotNil(t, p.Images)
	assert.NotNil(t, p.Features)
	assert.NotNil(t, p.Tags)
	assert.NotNil(t, p.Specifications)
	assert.Empty(t, p.Images)
	assert.Empty(t, p.Specifications)
}

func TestRecordAnalyticsInitializedToZero(t *testing.T) {
	p := Record(models.RawRecord{
		"name":          "Mirror",
		"averageRating": 4.5,
		"views":         120.0,
	}, "v", testOpts, time.Now())

	assert.Zero(t, p.AverageRating)
	assert.Zero(t, p.TotalReviews)
	assert.Zero(t, p.TotalSold)
	assert.Zero(t, p.Views)
}

func TestRecordTimestampsAndVendor(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := Record(models.RawRecord{"name": "Mirror", "currency": ""}, "vendor-42", testOpts, now)

	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
	assert.Equal(t, "vendor-42", p.VendorID)
	assert.Equal(t, "USD", p.Currency)
	assert.True(t, p.IsActive)
}
