package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/mwantia/foodgram/internal/config"
	"github.com/mwantia/foodgram/pkg/log"
)

// Open builds the store selected by cfg.Type. The returned store is not yet
// connected.
func Open(cfg config.DatabaseConfig, logger log.LoggerService) (CatalogStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := Options{
		Logger:        logger,
		LogLevel:      log.ParseGormLevel(cfg.LogLevel),
		SlowThreshold: config.ParseDuration(cfg.SlowThreshold, 200*time.Millisecond),
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case config.DatabaseTypeSQLite:
		return NewSQLiteStore(SQLiteConfig{
			Path:    cfg.SQLite.Path,
			Options: opts,
		})
	case config.DatabaseTypePostgres:
		return NewPostgresStore(PostgresConfig{
			DSN:             cfg.Postgres.DSN,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			ConnMaxLifetime: config.ParseDuration(cfg.Postgres.ConnMaxLifetime, time.Hour),
			ConnMaxIdleTime: config.ParseDuration(cfg.Postgres.ConnMaxIdleTime, 30*time.Minute),
			Options:         opts,
		})
	default:
		return nil, fmt.Errorf("unknown database type: %q", cfg.Type)
	}
}
