package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the Vector-Track application.
type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Database   DatabaseConfig
	ClickHouse ClickHouseConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
	Metrics    MetricsConfig
	Export     ExportConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

// StoreConfig selects the event store backend.
type StoreConfig struct {
	// Driver is one of "postgres", "clickhouse", "memory".
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type ClickHouseConfig struct {
	Addr     string
	Database string
	User     string
	Password string
	MaxConns int
}

type RedisConfig struct {
	// Enabled turns the report row cache on. Reporting works without Redis;
	// a disabled cache just means every run hits the store.
	Enabled  bool
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// ExportConfig configures the CSV export job.
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("VECTOR_TRACK_HTTP_ADDR", ":8081"),
			Env:             getEnv("VECTOR_TRACK_ENV", "development"),
			ShutdownTimeout: getDurationEnv("VECTOR_TRACK_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			Driver: getEnv("VECTOR_TRACK_STORE_DRIVER", "postgres"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("VECTOR_TRACK_DB_HOST", "localhost"),
			Port:     getIntEnv("VECTOR_TRACK_DB_PORT", 5432),
			User:     getEnv("VECTOR_TRACK_DB_USER", "vectortrack"),
			Password: getEnv("VECTOR_TRACK_DB_PASSWORD", "vectortrack_secret"),
			DBName:   getEnv("VECTOR_TRACK_DB_NAME", "vectortrack"),
			SSLMode:  getEnv("VECTOR_TRACK_DB_SSLMODE", "disable"),
			MaxConns: getIntEnv("VECTOR_TRACK_DB_MAX_CONNS", 25),
			MinConns: getIntEnv("VECTOR_TRACK_DB_MIN_CONNS", 5),
		},
		ClickHouse: ClickHouseConfig{
			Addr:     getEnv("VECTOR_TRACK_CH_ADDR", "localhost:9000"),
			Database: getEnv("VECTOR_TRACK_CH_DATABASE", "vectortrack"),
			User:     getEnv("VECTOR_TRACK_CH_USER", "default"),
			Password: getEnv("VECTOR_TRACK_CH_PASSWORD", ""),
			MaxConns: getIntEnv("VECTOR_TRACK_CH_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("VECTOR_TRACK_REDIS_ENABLED", false),
			Addr:     getEnv("VECTOR_TRACK_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("VECTOR_TRACK_REDIS_PASSWORD", ""),
			DB:       getIntEnv("VECTOR_TRACK_REDIS_DB", 0),
			CacheTTL: getDurationEnv("VECTOR_TRACK_REDIS_CACHE_TTL", 10*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolEnv("VECTOR_TRACK_RATELIMIT_ENABLED", false),
			RPS:     getFloatEnv("VECTOR_TRACK_RATELIMIT_RPS", 500),
			Burst:   getIntEnv("VECTOR_TRACK_RATELIMIT_BURST", 1000),
		},
		Log: LogConfig{
			Level:  getEnv("VECTOR_TRACK_LOG_LEVEL", "info"),
			Format: getEnv("VECTOR_TRACK_LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("VECTOR_TRACK_METRICS_ENABLED", true),
			Path:    getEnv("VECTOR_TRACK_METRICS_PATH", "/metrics"),
		},
		Export: ExportConfig{
			Dir: getEnv("VECTOR_TRACK_EXPORT_DIR", "./exports"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "postgres", "clickhouse", "memory":
	default:
		return fmt.Errorf("unknown store driver %q (want postgres, clickhouse or memory)", c.Store.Driver)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Helper functions for reading environment variables

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloatEnv(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
