package storage

import (
	"context"
	"fmt"

	"github.com/radiusdt/vector-track/internal/config"
	"github.com/radiusdt/vector-track/internal/database"
	"go.uber.org/zap"
)

// Open builds the event store selected by cfg.Store.Driver and ensures its
// schema. The returned close function releases the underlying connection and
// is safe to call exactly once.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (EventStore, func(), error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.NewPostgresDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		store := NewPostgresEventStore(db.Pool)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	case "clickhouse":
		db, err := database.NewClickHouseDB(ctx, cfg.ClickHouse, logger)
		if err != nil {
			return nil, nil, err
		}
		store := NewClickHouseEventStore(db.Conn)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil

	case "memory":
		logger.Warn("using in-memory event store; events are not durable")
		return NewInMemoryEventStore(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
