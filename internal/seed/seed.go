// Package seed fills the event store with random traffic for local
// development and load testing of the reporting pipeline.
package seed

import (
	"context"
	"math/rand"
	"time"

	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/storage"
	"go.uber.org/zap"
)

// Params controls the shape of the generated data set.
type Params struct {
	// Events is the total number of events to insert.
	Events int
	// Entities is the upper bound of the entity id range [1, Entities].
	Entities int
	// DaysBack spreads event timestamps over start-of-day instants
	// between 1 and DaysBack days before now.
	DaysBack int
}

// DefaultParams matches the historical seed data set.
func DefaultParams() Params {
	return Params{
		Events:   100000,
		Entities: 100,
		DaysBack: 50,
	}
}

// batchSize bounds the number of events per AppendBatch call.
const batchSize = 1000

var eventTypes = []models.EventType{
	models.EventList,
	models.EventDetails,
	models.EventConversion,
}

// Seeder generates random events into an event store.
type Seeder struct {
	store  storage.EventStore
	logger *zap.Logger
	rng    *rand.Rand
}

// NewSeeder creates a seeder with a time-seeded random source.
func NewSeeder(store storage.EventStore, logger *zap.Logger) *Seeder {
	return &Seeder{
		store:  store,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run inserts p.Events random events in batches. Timestamps land on
// start-of-day instants so window boundaries stay easy to reason about.
func (s *Seeder) Run(ctx context.Context, p Params) error {
	start := time.Now()
	today := startOfDay(time.Now())

	remaining := p.Events
	for remaining > 0 {
		n := remaining
		if n > batchSize {
			n = batchSize
		}

		batch := make([]models.Event, 0, n)
		for i := 0; i < n; i++ {
			batch = append(batch, s.randomEvent(today, p))
		}

		if err := s.store.AppendBatch(ctx, batch); err != nil {
			return err
		}
		remaining -= n
	}

	s.logger.Info("seed completed",
		zap.Int("events", p.Events),
		zap.Int("entities", p.Entities),
		zap.Int("days_back", p.DaysBack),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *Seeder) randomEvent(today time.Time, p Params) models.Event {
	daysBack := 1 + s.rng.Intn(p.DaysBack)
	return models.Event{
		EventType:  eventTypes[s.rng.Intn(len(eventTypes))],
		EntityID:   int64(1 + s.rng.Intn(p.Entities)),
		OccurredAt: today.AddDate(0, 0, -daysBack),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
