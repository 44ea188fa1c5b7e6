package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/radiusdt/vector-track/internal/config"
	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/storage"
	"github.com/radiusdt/vector-track/internal/trackerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingStore simulates an unreachable event store.
type failingStore struct{}

func (f *failingStore) AppendBatch(ctx context.Context, events []models.Event) error {
	return trackerr.Storage(context.DeadlineExceeded, "failed to append batch")
}

func (f *failingStore) QueryWindowCounts(ctx context.Context, refDate time.Time) ([]models.WindowCounts, error) {
	return nil, trackerr.Storage(context.DeadlineExceeded, "failed to query windows")
}

func (f *failingStore) Ping(ctx context.Context) error {
	return trackerr.Storage(context.DeadlineExceeded, "failed to ping")
}

func newTestServer(t *testing.T, store storage.EventStore) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	return NewServer(&Dependencies{
		Store:  store,
		Config: cfg,
		Logger: zap.NewNop(),
	})
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTrackAcceptsListBatch(t *testing.T) {
	store := storage.NewInMemoryEventStore()
	h := newTestServer(t, store)

	rec := doGet(t, h, "/track?eventtype=list&ids=1,2,3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		BatchID  string `json:"batch_id"`
		Accepted int    `json:"accepted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Accepted)
	assert.NotEmpty(t, body.BatchID)
	assert.Len(t, store.Events(), 3)
}

func TestTrackRejectsMultiIDDetails(t *testing.T) {
	store := storage.NewInMemoryEventStore()
	h := newTestServer(t, store)

	rec := doGet(t, h, "/track?eventtype=details&ids=1,2")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.Events())
}

func TestTrackRejectsUnknownEventType(t *testing.T) {
	h := newTestServer(t, storage.NewInMemoryEventStore())

	rec := doGet(t, h, "/track?eventtype=purchase&ids=1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrackRequiresParams(t *testing.T) {
	h := newTestServer(t, storage.NewInMemoryEventStore())

	assert.Equal(t, http.StatusBadRequest, doGet(t, h, "/track?ids=1").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, h, "/track?eventtype=list").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, h, "/track").Code)
}

func TestTrackMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, storage.NewInMemoryEventStore())

	req := httptest.NewRequest(http.MethodPost, "/track?eventtype=list&ids=1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTrackStorageFailure(t *testing.T) {
	h := newTestServer(t, &failingStore{})

	rec := doGet(t, h, "/track?eventtype=list&ids=1")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestHealthStoreDown(t *testing.T) {
	h := newTestServer(t, &failingStore{})

	rec := doGet(t, h, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthOK(t *testing.T) {
	h := newTestServer(t, storage.NewInMemoryEventStore())

	rec := doGet(t, h, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnknownPathNotFound(t *testing.T) {
	h := newTestServer(t, storage.NewInMemoryEventStore())

	assert.Equal(t, http.StatusNotFound, doGet(t, h, "/nope").Code)
	assert.Equal(t, http.StatusNotFound, doGet(t, h, "/").Code)
}
