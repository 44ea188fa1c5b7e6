package storage

import (
	"context"
	"sync"
	"time"

	"github.com/radiusdt/vector-track/internal/models"
)

// InMemoryEventStore provides in-memory storage for events. Used in tests
// and for running without a database; data does not survive a restart.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []models.Event
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{}
}

// AppendBatch appends all events under one lock acquisition, so a batch is
// never observed half-written.
func (s *InMemoryEventStore) AppendBatch(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

// QueryWindowCounts scans the log and buckets events into the report windows.
func (s *InMemoryEventStore) QueryWindowCounts(ctx context.Context, refDate time.Time) ([]models.WindowCounts, error) {
	w := WindowsFor(refDate)

	s.mu.RLock()
	defer s.mu.RUnlock()

	byEntity := make(map[int64]*models.WindowCounts)
	for _, ev := range s.events {
		// 14-day window membership: inclusive lower bound, exclusive upper.
		if ev.OccurredAt.Before(w.From14d) || !ev.OccurredAt.Before(w.RefDate) {
			continue
		}

		c, ok := byEntity[ev.EntityID]
		if !ok {
			c = &models.WindowCounts{EntityID: ev.EntityID}
			byEntity[ev.EntityID] = c
		}

		in7d := !ev.OccurredAt.Before(w.From7d)
		switch ev.EventType {
		case models.EventList:
			c.List14d++
			if in7d {
				c.List7d++
			}
		case models.EventDetails:
			if in7d {
				c.Details7d++
			}
		case models.EventConversion:
			c.Conversions14d++
			if in7d {
				c.Conversions7d++
			}
		}
	}

	counts := make([]models.WindowCounts, 0, len(byEntity))
	for _, c := range byEntity {
		counts = append(counts, *c)
	}
	return counts, nil
}

// Ping always succeeds.
func (s *InMemoryEventStore) Ping(ctx context.Context) error {
	return nil
}

// Events returns a snapshot of the log. Test helper.
func (s *InMemoryEventStore) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}
