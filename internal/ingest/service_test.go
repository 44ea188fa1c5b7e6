package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/storage"
	"github.com/radiusdt/vector-track/internal/trackerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockEventStore is a mock implementation of storage.EventStore.
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) AppendBatch(ctx context.Context, events []models.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventStore) QueryWindowCounts(ctx context.Context, refDate time.Time) ([]models.WindowCounts, error) {
	args := m.Called(ctx, refDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WindowCounts), args.Error(1)
}

func (m *MockEventStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestService(store storage.EventStore, at time.Time) *Service {
	svc := NewService(store, zap.NewNop(), nil)
	svc.now = func() time.Time { return at }
	return svc
}

func TestIngestSharedTimestamp(t *testing.T) {
	store := storage.NewInMemoryEventStore()
	at := time.Date(2017, 3, 28, 15, 4, 5, 0, time.UTC)
	svc := newTestService(store, at)

	res, err := svc.Ingest(context.Background(), "list", "1,2,3")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Accepted)
	assert.NotEmpty(t, res.BatchID)

	events := store.Events()
	require.Len(t, events, 3)
	for i, ev := range events {
		assert.Equal(t, models.EventList, ev.EventType)
		assert.Equal(t, int64(i+1), ev.EntityID)
		assert.Equal(t, at, ev.OccurredAt)
	}
}

func TestIngestValidationFailureSkipsStore(t *testing.T) {
	store := new(MockEventStore)
	svc := newTestService(store, time.Now())

	_, err := svc.Ingest(context.Background(), "details", "1,2")
	require.Error(t, err)
	assert.True(t, trackerr.IsValidation(err))
	store.AssertNotCalled(t, "AppendBatch", mock.Anything, mock.Anything)
}

func TestIngestStorageFailure(t *testing.T) {
	store := new(MockEventStore)
	store.On("AppendBatch", mock.Anything, mock.Anything).
		Return(trackerr.Storage(errors.New("conn refused"), "failed to insert event"))
	svc := newTestService(store, time.Now())

	_, err := svc.Ingest(context.Background(), "conversion", "9")
	require.Error(t, err)
	assert.True(t, trackerr.IsStorage(err))
	assert.False(t, trackerr.IsValidation(err))
	store.AssertExpectations(t)
}

func TestIngestSingleBatchPerSubmission(t *testing.T) {
	store := new(MockEventStore)
	store.On("AppendBatch", mock.Anything, mock.MatchedBy(func(events []models.Event) bool {
		return len(events) == 4
	})).Return(nil).Once()
	svc := newTestService(store, time.Now())

	res, err := svc.Ingest(context.Background(), "list", "10,20,30,40")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Accepted)
	store.AssertExpectations(t)
}
