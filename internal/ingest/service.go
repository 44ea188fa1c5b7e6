package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/radiusdt/vector-track/internal/metrics"
	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/storage"
	"go.uber.org/zap"
)

// Service turns validated submissions into event store appends.
type Service struct {
	store   storage.EventStore
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService creates a new ingestion service. metrics may be nil.
func NewService(store storage.EventStore, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Result reports the outcome of one accepted submission.
type Result struct {
	BatchID  string `json:"batch_id"`
	Accepted int    `json:"accepted"`
}

// Ingest validates the submission and appends one event per id. The
// timestamp is assigned here, once: every event in the batch shares it.
// The append is a single atomic batch; a failing store never leaves a
// partially written submission behind.
func (s *Service) Ingest(ctx context.Context, eventtype, ids string) (*Result, error) {
	sub, err := ParseSubmission(eventtype, ids)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordRejection(eventtype)
		}
		return nil, err
	}

	batchID := uuid.New().String()
	occurredAt := s.now()

	events := make([]models.Event, 0, len(sub.EntityIDs))
	for _, id := range sub.EntityIDs {
		events = append(events, models.Event{
			EventType:  sub.EventType,
			EntityID:   id,
			OccurredAt: occurredAt,
		})
	}

	start := time.Now()
	err = s.store.AppendBatch(ctx, events)
	if s.metrics != nil {
		s.metrics.RecordAppend(time.Since(start), err)
	}
	if err != nil {
		s.logger.Error("failed to append batch",
			zap.String("batch_id", batchID),
			zap.String("eventtype", string(sub.EventType)),
			zap.Int("events", len(events)),
			zap.Error(err),
		)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordIngested(string(sub.EventType), len(events))
	}
	s.logger.Info("batch appended",
		zap.String("batch_id", batchID),
		zap.String("eventtype", string(sub.EventType)),
		zap.Int("events", len(events)),
	)

	return &Result{BatchID: batchID, Accepted: len(events)}, nil
}
