// Package normalize maps raw vendor export records onto the canonical
// product schema. Every output field has an explicit default; malformed
// input degrades to the default instead of failing the record.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"catalog-reseeder/internal/models"

	"github.com/google/uuid"
)

const (
	// SlugFallback is used when a record has no usable name to slugify.
	SlugFallback = "product"
	// DescriptionFallback guarantees a non-empty description.
	DescriptionFallback = "No description available"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugCollapse = regexp.MustCompile(`[\s-]+`)
)

// Options carries the run-scoped defaults applied during normalization.
type Options struct {
	Currency string
}

// Record produces one canonical product from a raw vendor record. The
// vendorId is known per source file and assigned as-is; categoryId is left
// empty for the classifier and resolver to fill. Pure apart from now.
func Record(raw models.RawRecord, vendorID string, opts Options, now time.Time) models.Product {
	name := stringField(raw, "name")

	// Identity precedence: sku, then vendorSku, then a generated id. Each
	// step is an independent rule; the order is behavior.
	sku := stringField(raw, "sku")
	if sku == "" {
		sku = stringField(raw, "vendorSku")
	}
	id := sku
	if id == "" {
		id = generateID(now)
	}
	if sku == "" {
		sku = fmt.Sprintf("SKU_%d", now.UnixMilli())
	}

	slug := stringField(raw, "slug")
	if slug == "" {
		slug = Slugify(name)
	}

	description := stringField(raw, "description")
	if description == "" {
		description = name
	}
	if description == "" {
		description = DescriptionFallback
	}

	currency := stringField(raw, "currency")
	if currency == "" {
		currency = opts.Currency
	}

	return models.Product{
		ID:             id,
		SKU:            sku,
		Slug:           slug,
		Name:           name,
		Description:    description,
		Brand:          stringField(raw, "brand"),
		Price:          numberField(raw, "price"),
		OriginalPrice:  numberField(raw, "originalPrice"),
		Currency:       currency,
		VendorID:       vendorID,
		Stock:          int(numberField(raw, "stock")),
		Images:         stringSlice(raw, "images"),
		Specifications: stringMap(raw, "specifications"),
		Features:       stringSlice(raw, "features"),
		Tags:           stringSlice(raw, "tags"),
		IsActive:       boolField(raw, "isActive", true),
		IsFeatured:     boolField(raw, "isFeatured", false),
		IsOnSale:       boolField(raw, "isOnSale", false),
		AverageRating:  0,
		TotalReviews:   0,
		TotalSold:      0,
		Views:          0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Slugify converts a name into a URL-safe slug: lowercase, characters
// outside [a-z0-9\s-] stripped, runs of whitespace and hyphens collapsed to
// a single hyphen, edge hyphens trimmed. An empty result maps to
// SlugFallback.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return SlugFallback
	}
	return s
}

func generateID(now time.Time) string {
	return fmt.Sprintf("PRD_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}

func stringField(raw models.RawRecord, key string) string {
	switch v := raw[key].(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

// numberField coerces a raw value to a non-negative number. Absent,
// non-numeric or negative input degrades to 0.
func numberField(raw models.RawRecord, key string) float64 {
	var n float64
	switch v := raw[key].(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

func boolField(raw models.RawRecord, key string, fallback bool) bool {
	if v, ok := raw[key].(bool); ok {
		return v
	}
	return fallback
}

func stringSlice(raw models.RawRecord, key string) []string {
	out := []string{}
	items, ok := raw[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringMap(raw models.RawRecord, key string) map[string]string {
	out := map[string]string{}
	entries, ok := raw[key].(map[string]any)
	if !ok {
		return out
	}
	for k, v := range entries {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
