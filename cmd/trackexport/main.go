package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/radiusdt/vector-track/internal/config"
	"github.com/radiusdt/vector-track/internal/database"
	"github.com/radiusdt/vector-track/internal/middleware"
	"github.com/radiusdt/vector-track/internal/report"
	"github.com/radiusdt/vector-track/internal/storage"
	"github.com/radiusdt/vector-track/internal/trackerr"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	date := flag.String("date", "", "reference date in YYYY-MM-DD format (default: today)")
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

	// The report row cache is optional; exports run fine without Redis.
	var cache *redis.Client
	if cfg.Redis.Enabled {
		rdb, err := database.NewRedisDB(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, exporting without cache", zap.Error(err))
		} else {
			defer rdb.Close()
			cache = rdb.Client
		}
	}

	svc := report.NewService(store, cache, cfg.Export.Dir, cfg.Redis.CacheTTL, logger)

	path, err := svc.Export(ctx, *date)
	if err != nil {
		switch {
		case trackerr.IsValidation(err):
			fmt.Fprintf(os.Stderr, "invalid date: %v\n", err)
		case trackerr.IsFormat(err):
			fmt.Fprintf(os.Stderr, "nothing to export: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println(path)
}
