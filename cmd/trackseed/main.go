package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/radiusdt/vector-track/internal/config"
	"github.com/radiusdt/vector-track/internal/middleware"
	"github.com/radiusdt/vector-track/internal/seed"
	"github.com/radiusdt/vector-track/internal/storage"
	"go.uber.org/zap"
)

func main() {
	defaults := seed.DefaultParams()
	events := flag.Int("events", defaults.Events, "number of events to insert")
	entities := flag.Int("entities", defaults.Entities, "entity ids are drawn from [1, entities]")
	days := flag.Int("days", defaults.DaysBack, "timestamps are spread over this many days back")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := middleware.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open event store", zap.Error(err))
	}
	defer closeStore()

	// Seeding replaces the data set wholesale, matching the historical
	// behavior of dropping and recreating the track table.
	if sm, ok := store.(storage.SchemaManager); ok {
		if err := sm.ResetSchema(ctx); err != nil {
			logger.Fatal("failed to reset schema", zap.Error(err))
		}
	}

	s := seed.NewSeeder(store, logger)
	if err := s.Run(ctx, seed.Params{
		Events:   *events,
		Entities: *entities,
		DaysBack: *days,
	}); err != nil {
		logger.Fatal("failed to seed events", zap.Error(err))
	}
}
