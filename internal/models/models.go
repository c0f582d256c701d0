package models

import "time"

// RawRecord is one untyped product entry from a vendor export file. Field
// presence is never guaranteed; every read goes through the normalizer.
type RawRecord map[string]any

// Product is the canonical catalog entity written to the products collection.
type Product struct {
	ID             string            `bson:"_id" json:"id"`
	SKU            string            `bson:"sku" json:"sku"`
	Slug           string            `bson:"slug" json:"slug"`
	Name           string            `bson:"name" json:"name"`
	Description    string            `bson:"description" json:"description"`
	Brand          string            `bson:"brand" json:"brand"`
	Price          float64           `bson:"price" json:"price"`
	OriginalPrice  float64           `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Currency       string            `bson:"currency" json:"currency"`
	CategoryID     string            `bson:"categoryId" json:"categoryId"`
	VendorID       string            `bson:"vendorId" json:"vendorId"`
	Stock          int               `bson:"stock" json:"stock"`
	Images         []string          `bson:"images" json:"images"`
	Specifications map[string]string `bson:"specifications" json:"specifications"`
	Features       []string          `bson:"features" json:"features"`
	Tags           []string          `bson:"tags" json:"tags"`
	IsActive       bool              `bson:"isActive" json:"isActive"`
	IsFeatured     bool              `bson:"isFeatured" json:"isFeatured"`
	IsOnSale       bool              `bson:"isOnSale" json:"isOnSale"`
	AverageRating  float64           `bson:"averageRating" json:"averageRating"`
	TotalReviews   int               `bson:"totalReviews" json:"totalReviews"`
	TotalSold      int               `bson:"totalSold" json:"totalSold"`
	Views          int               `bson:"views" json:"views"`
	CreatedAt      time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Category is a taxonomy node. The set is fixed and seeded before products.
type Category struct {
	ID          string            `bson:"_id" json:"id"`
	Slug        string            `bson:"slug" json:"slug"`
	Name        map[string]string `bson:"name" json:"name"`
	Description string            `bson:"description" json:"description"`
	Icon        string            `bson:"icon" json:"icon"`
	IsActive    bool              `bson:"isActive" json:"isActive"`
}

// Vendor is a supplier whose export files feed the pipeline. Products
// reference vendors by id after resolution, never by name.
type Vendor struct {
	ID        string            `bson:"_id" json:"id"`
	Name      string            `bson:"name" json:"name"`
	Localized map[string]string `bson:"localizedName" json:"localizedName"`
	Email     string            `bson:"email" json:"email"`
	Phone     string            `bson:"phone" json:"phone"`
	Slug      string            `bson:"slug" json:"slug"`
	IsActive  bool              `bson:"isActive" json:"isActive"`
}

// User is the administrative account optionally created alongside a run.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"passwordHash"`
	Role         string    `bson:"role" json:"role"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Collection names produced by the pipeline.
const (
	CollectionCategories = "categories"
	CollectionVendors    = "vendors"
	CollectionProducts   = "products"
	CollectionUsers      = "users"
)

// Pipeline states
const (
	StateClearing                = "CLEARING"
	StateSeedingReferenceData    = "SEEDING_REFERENCE_DATA"
	StateLoadingSources          = "LOADING_SOURCES"
	StateClassifyingAndResolving = "CLASSIFYING_AND_RESOLVING"
	StateWriting                 = "WRITING"
	StateVerifying               = "VERIFYING"
	StateDone                    = "DONE"
	StateFailed                  = "FAILED"
)

// Run outcomes
const (
	OutcomeClean      = "CLEAN"
	OutcomeWithErrors = "COMPLETED_WITH_ERRORS"
	OutcomeAborted    = "ABORTED"
)

// SourceStats aggregates the result of one source file.
type SourceStats struct {
	File      string `json:"file"`
	Vendor    string `json:"vendor"`
	Loaded    int    `json:"loaded"`
	Written   int    `json:"written"`
	Errors    int    `json:"errors"`
	LastError string `json:"lastError,omitempty"`
}

// RunStats aggregates a full pipeline run.
type RunStats struct {
	State         string           `json:"state"`
	Outcome       string           `json:"outcome"`
	StartedAt     time.Time        `json:"startedAt"`
	FinishedAt    time.Time        `json:"finishedAt"`
	Cleared       map[string]int64 `json:"cleared"`
	Categories    int              `json:"categories"`
	Vendors       int              `json:"vendors"`
	Sources       []SourceStats    `json:"sources"`
	CategoryCount map[string]int64 `json:"categoryCount"`
	Discrepancies []string         `json:"discrepancies,omitempty"`
}

// TotalWritten sums products committed across all sources.
func (rs *RunStats) TotalWritten() int {
	total := 0
	for _, s := range rs.Sources {
		total += s.Written
	}
	return total
}

// TotalErrors sums excluded or failed products across all sources.
func (rs *RunStats) TotalErrors() int {
	total := 0
	for _, s := range rs.Sources {
		total += s.Errors
	}
	return total
}
