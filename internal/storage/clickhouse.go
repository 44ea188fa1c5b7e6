package storage

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/trackerr"
)

// ClickHouseEventStore implements EventStore on ClickHouse. An append-only
// event log is a natural fit for MergeTree; a batch goes out as a single
// insert block, which keeps the all-or-nothing append contract.
type ClickHouseEventStore struct {
	conn driver.Conn
}

// NewClickHouseEventStore creates a new ClickHouse-backed event store.
func NewClickHouseEventStore(conn driver.Conn) *ClickHouseEventStore {
	return &ClickHouseEventStore{conn: conn}
}

// EnsureSchema creates the track table if absent.
func (s *ClickHouseEventStore) EnsureSchema(ctx context.Context) error {
	err := s.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS track (
			eventtype   LowCardinality(String),
			id          Int64,
			inserted_at DateTime64(3)
		) ENGINE = MergeTree
		ORDER BY (inserted_at, id)
	`)
	if err != nil {
		return trackerr.Storage(err, "failed to create track table")
	}
	return nil
}

// ResetSchema drops and recreates the track table.
func (s *ClickHouseEventStore) ResetSchema(ctx context.Context) error {
	if err := s.conn.Exec(ctx, `DROP TABLE IF EXISTS track`); err != nil {
		return trackerr.Storage(err, "failed to drop track table")
	}
	return s.EnsureSchema(ctx)
}

// AppendBatch sends all events as one insert block.
func (s *ClickHouseEventStore) AppendBatch(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `INSERT INTO track (eventtype, id, inserted_at)`)
	if err != nil {
		return trackerr.Storage(err, "failed to prepare batch")
	}

	for _, ev := range events {
		if err := batch.Append(string(ev.EventType), ev.EntityID, ev.OccurredAt); err != nil {
			return trackerr.Storage(err, "failed to append event to batch")
		}
	}

	if err := batch.Send(); err != nil {
		return trackerr.Storage(err, "failed to send batch")
	}
	return nil
}

// QueryWindowCounts groups the 14-day lookback by entity id with countIf
// narrowing the 7-day counts.
func (s *ClickHouseEventStore) QueryWindowCounts(ctx context.Context, refDate time.Time) ([]models.WindowCounts, error) {
	w := WindowsFor(refDate)

	rows, err := s.conn.Query(ctx, `
		SELECT id,
			countIf(eventtype = 'list'       AND inserted_at >= ?) AS list_7d,
			countIf(eventtype = 'details'    AND inserted_at >= ?) AS details_7d,
			countIf(eventtype = 'conversion' AND inserted_at >= ?) AS conversions_7d,
			countIf(eventtype = 'list')                            AS list_14d,
			countIf(eventtype = 'conversion')                      AS conversions_14d
		FROM track
		WHERE inserted_at >= ? AND inserted_at < ?
		GROUP BY id
	`, w.From7d, w.From7d, w.From7d, w.From14d, w.RefDate)
	if err != nil {
		return nil, trackerr.Storage(err, "failed to query window counts")
	}
	defer rows.Close()

	var counts []models.WindowCounts
	for rows.Next() {
		var (
			c                            models.WindowCounts
			list7, det7, conv7           uint64
			list14, conv14               uint64
		)
		if err := rows.Scan(&c.EntityID, &list7, &det7, &conv7, &list14, &conv14); err != nil {
			return nil, trackerr.Storage(err, "failed to scan window counts")
		}
		c.List7d = int64(list7)
		c.Details7d = int64(det7)
		c.Conversions7d = int64(conv7)
		c.List14d = int64(list14)
		c.Conversions14d = int64(conv14)
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, trackerr.Storage(err, "failed to read window counts")
	}
	return counts, nil
}

// Ping checks ClickHouse connectivity.
func (s *ClickHouseEventStore) Ping(ctx context.Context) error {
	if err := s.conn.Ping(ctx); err != nil {
		return trackerr.Storage(err, "clickhouse unreachable")
	}
	return nil
}
