package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
)

// PostgresStore implements CatalogStore using Postgres
type PostgresStore struct {
	*GormStore
	cfg PostgresConfig
}

// PostgresConfig holds Postgres connection and pool settings
type PostgresConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	Options
}

// NewPostgresStore creates a new Postgres-backed catalog store
func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	gs, err := newGormStore(postgres.Open(cfg.DSN), cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	return &PostgresStore{
		GormStore: gs,
		cfg:       cfg,
	}, nil
}

// Connect applies the pool settings and verifies the connection
func (s *PostgresStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if s.cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(s.cfg.MaxIdleConns)
	}
	if s.cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(s.cfg.MaxOpenConns)
	}
	if s.cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)
	}
	if s.cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(s.cfg.ConnMaxIdleTime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	s.log.Debug("connected to postgres database")
	return nil
}
