package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/trackerr"
)

// PostgresEventStore implements EventStore using PostgreSQL.
type PostgresEventStore struct {
	pool *pgxpool.Pool
}

// NewPostgresEventStore creates a new PostgreSQL-backed event store.
func NewPostgresEventStore(pool *pgxpool.Pool) *PostgresEventStore {
	return &PostgresEventStore{pool: pool}
}

// EnsureSchema creates the track table and its time index if absent.
func (s *PostgresEventStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS track (
			eventtype   TEXT        NOT NULL,
			id          BIGINT      NOT NULL,
			inserted_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return trackerr.Storage(err, "failed to create track table")
	}

	_, err = s.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS track_inserted_at_idx ON track (inserted_at)
	`)
	if err != nil {
		return trackerr.Storage(err, "failed to create track index")
	}
	return nil
}

// ResetSchema drops and recreates the track table.
func (s *PostgresEventStore) ResetSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DROP TABLE IF EXISTS track`); err != nil {
		return trackerr.Storage(err, "failed to drop track table")
	}
	return s.EnsureSchema(ctx)
}

// AppendBatch inserts all events in one transaction.
func (s *PostgresEventStore) AppendBatch(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return trackerr.Storage(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	for _, ev := range events {
		_, err := tx.Exec(ctx, `
			INSERT INTO track (eventtype, id, inserted_at) VALUES ($1, $2, $3)
		`, string(ev.EventType), ev.EntityID, ev.OccurredAt)
		if err != nil {
			return trackerr.Storage(err, "failed to insert event")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return trackerr.Storage(err, "failed to commit batch")
	}
	return nil
}

// QueryWindowCounts groups the 14-day lookback by entity id and counts each
// event type per window. The WHERE clause bounds the 14-day window; the
// 7-day counts narrow it with a FILTER on the same scan.
func (s *PostgresEventStore) QueryWindowCounts(ctx context.Context, refDate time.Time) ([]models.WindowCounts, error) {
	w := WindowsFor(refDate)

	rows, err := s.pool.Query(ctx, `
		SELECT id,
			COUNT(*) FILTER (WHERE eventtype = 'list'       AND inserted_at >= $2) AS list_7d,
			COUNT(*) FILTER (WHERE eventtype = 'details'    AND inserted_at >= $2) AS details_7d,
			COUNT(*) FILTER (WHERE eventtype = 'conversion' AND inserted_at >= $2) AS conversions_7d,
			COUNT(*) FILTER (WHERE eventtype = 'list')                             AS list_14d,
			COUNT(*) FILTER (WHERE eventtype = 'conversion')                       AS conversions_14d
		FROM track
		WHERE inserted_at >= $3 AND inserted_at < $1
		GROUP BY id
	`, w.RefDate, w.From7d, w.From14d)
	if err != nil {
		return nil, trackerr.Storage(err, "failed to query window counts")
	}
	defer rows.Close()

	var counts []models.WindowCounts
	for rows.Next() {
		var c models.WindowCounts
		if err := rows.Scan(&c.EntityID, &c.List7d, &c.Details7d, &c.Conversions7d, &c.List14d, &c.Conversions14d); err != nil {
			return nil, trackerr.Storage(err, "failed to scan window counts")
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, trackerr.Storage(err, "failed to read window counts")
	}
	return counts, nil
}

// Ping checks database connectivity.
func (s *PostgresEventStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return trackerr.Storage(err, "database unreachable")
	}
	return nil
}
