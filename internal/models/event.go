package models

import "time"

// ===========================================
// TRACK EVENT
// ===========================================

// EventType identifies the kind of user interaction being tracked.
type EventType string

const (
	EventList       EventType = "list"
	EventDetails    EventType = "details"
	EventConversion EventType = "conversion"
)

// Valid reports whether t is one of the three known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventList, EventDetails, EventConversion:
		return true
	}
	return false
}

// Event is one row of the append-only track log. Records are immutable once
// appended; there is no update or delete path.
type Event struct {
	EventType  EventType `json:"eventtype"`
	EntityID   int64     `json:"id"`
	OccurredAt time.Time `json:"inserted_at"`
}

// ===========================================
// REPORTING
// ===========================================

// WindowCounts holds the raw per-entity counts the aggregator needs, as
// returned by EventStore.QueryWindowCounts. The 7- and 14-day windows are
// half-open, anchored at start-of-day of the reference date with the
// reference day itself excluded.
type WindowCounts struct {
	EntityID       int64
	List7d         int64
	Details7d      int64
	Conversions7d  int64
	List14d        int64
	Conversions14d int64
}

// MetricsRow is one derived report row. Rows are computed on demand for a
// single reference date and never persisted.
type MetricsRow struct {
	EntityID          int64   `json:"id"`
	ListImpressions   int64   `json:"list_impressions"`
	DetailViews       int64   `json:"detail_views"`
	Conversions       int64   `json:"conversions"`
	ClickRate7d       float64 `json:"click_rate_7d"`
	ConversionRate7d  float64 `json:"conversion_rate_7d"`
	ConversionRate14d float64 `json:"conversion_rate_14d"`
}
