package seed

import (
	"context"
	"testing"
	"time"

	"github.com/radiusdt/vector-track/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunGeneratesBoundedEvents(t *testing.T) {
	store := storage.NewInMemoryEventStore()
	s := NewSeeder(store, zap.NewNop())

	p := Params{Events: 2500, Entities: 10, DaysBack: 5}
	require.NoError(t, s.Run(context.Background(), p))

	events := store.Events()
	require.Len(t, events, 2500)

	today := startOfDay(time.Now())
	for _, ev := range events {
		assert.True(t, ev.EventType.Valid(), "eventtype %q", ev.EventType)
		assert.GreaterOrEqual(t, ev.EntityID, int64(1))
		assert.LessOrEqual(t, ev.EntityID, int64(10))

		// Timestamps land on start-of-day instants 1..5 days back.
		assert.True(t, ev.OccurredAt.Before(today))
		assert.False(t, ev.OccurredAt.Before(today.AddDate(0, 0, -5)))
		assert.True(t, ev.OccurredAt.Equal(startOfDay(ev.OccurredAt)))
	}
}

func TestRunZeroEvents(t *testing.T) {
	store := storage.NewInMemoryEventStore()
	s := NewSeeder(store, zap.NewNop())

	require.NoError(t, s.Run(context.Background(), Params{Events: 0, Entities: 1, DaysBack: 1}))
	assert.Empty(t, store.Events())
}
