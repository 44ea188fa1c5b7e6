package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Service runs the export pipeline: validate date, query, aggregate,
// render, write. Stages short-circuit on the first failure; the error kind
// tells the caller which stage gave up.
type Service struct {
	store     storage.EventStore
	cache     *redis.Client
	logger    *zap.Logger
	exportDir string
	cacheTTL  time.Duration
}

// NewService creates a new report service. cache may be nil, in which case
// every run queries the event store directly.
func NewService(store storage.EventStore, cache *redis.Client, exportDir string, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		cache:     cache,
		logger:    logger,
		exportDir: exportDir,
		cacheTTL:  cacheTTL,
	}
}

func cacheKey(refDate time.Time) string {
	return "report:" + refDate.Format("2006-01-02")
}

// Rows returns the metrics rows for refDate, consulting the cache first.
// Cache failures are ignored; the store remains the source of truth.
func (s *Service) Rows(ctx context.Context, refDate time.Time) ([]models.MetricsRow, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey(refDate)).Bytes(); err == nil {
			var rows []models.MetricsRow
			if json.Unmarshal(data, &rows) == nil {
				s.logger.Debug("report cache hit",
					zap.String("reference_date", refDate.Format("2006-01-02")),
				)
				return rows, nil
			}
		}
	}

	s.logger.Info("querying event store",
		zap.String("reference_date", refDate.Format("2006-01-02")),
	)
	counts, err := s.store.QueryWindowCounts(ctx, refDate)
	if err != nil {
		return nil, err
	}

	rows := Aggregate(counts)

	if s.cache != nil && len(rows) > 0 {
		if data, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, cacheKey(refDate), data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache report rows", zap.Error(err))
			}
		}
	}
	return rows, nil
}

// Export runs the full pipeline for the given raw date input and returns
// the path of the written file.
func (s *Service) Export(ctx context.Context, input string) (string, error) {
	s.logger.Info("validating input", zap.String("date", input))
	refDate, err := ParseReferenceDate(input)
	if err != nil {
		return "", err
	}

	rows, err := s.Rows(ctx, refDate)
	if err != nil {
		return "", err
	}

	s.logger.Info("rendering csv", zap.Int("rows", len(rows)))
	data, err := RenderCSV(rows)
	if err != nil {
		return "", err
	}

	path, err := WriteExport(s.exportDir, refDate, data)
	if err != nil {
		return "", err
	}

	s.logger.Info("export written",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)
	return path, nil
}
