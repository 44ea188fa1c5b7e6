package storage

import (
	"context"
	"time"

	"github.com/radiusdt/vector-track/internal/models"
)

// EventStore defines operations on the append-only track log.
type EventStore interface {
	// AppendBatch inserts all events as one atomic unit. Either every event
	// in the batch is committed or none is; a partial write never happens.
	AppendBatch(ctx context.Context, events []models.Event) error

	// QueryWindowCounts returns raw per-entity counts for the windows
	// anchored at refDate (start of day). Only entities with at least one
	// event in the 14-day window appear in the result. Order is unspecified.
	QueryWindowCounts(ctx context.Context, refDate time.Time) ([]models.WindowCounts, error)

	// Ping reports whether the underlying medium is reachable.
	Ping(ctx context.Context) error
}

// SchemaManager is implemented by stores backed by a real database.
type SchemaManager interface {
	// EnsureSchema creates the track table if absent. Idempotent.
	EnsureSchema(ctx context.Context) error
	// ResetSchema drops and recreates the track table. Used by the seeder.
	ResetSchema(ctx context.Context) error
}

// Windows holds the report window boundaries for one reference date.
// All three are start-of-day instants; the windows are half-open with
// refDate itself as the exclusive upper bound.
type Windows struct {
	RefDate time.Time
	From7d  time.Time
	From14d time.Time
}

// WindowsFor computes the 7- and 14-day lookback boundaries for refDate.
// An event at exactly From7d falls inside the 7-day window; an event at
// exactly RefDate falls outside every window.
func WindowsFor(refDate time.Time) Windows {
	return Windows{
		RefDate: refDate,
		From7d:  refDate.AddDate(0, 0, -7),
		From14d: refDate.AddDate(0, 0, -14),
	}
}
