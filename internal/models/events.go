package models

import "time"

// Event types
const (
	EventTypeCatalogReseeded = "CATALOG_RESEEDED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogReseededEvent is published after a run completes, so downstream
// consumers can invalidate caches built on the previous catalog.
type CatalogReseededEvent struct {
	BaseEvent
	Outcome    string          `json:"outcome"`
	Categories int             `json:"categories"`
	Vendors    int             `json:"vendors"`
	Products   int             `json:"products"`
	Errors     int             `json:"errors"`
	DurationMs int64           `json:"duration_ms"`
	Sources    []SourceSummary `json:"sources"`
}

// SourceSummary is the per-file slice of a CatalogReseededEvent.
type SourceSummary struct {
	File    string `json:"file"`
	Vendor  string `json:"vendor"`
	Written int    `json:"written"`
	Errors  int    `json:"errors"`
}
