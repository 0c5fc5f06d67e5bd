package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DatabaseTypeSQLite   = "sqlite"
	DatabaseTypePostgres = "postgres"
)

// DatabaseConfig selects and configures the catalog store
type DatabaseConfig struct {
	Type          string                 `mapstructure:"type"           yaml:"type"`
	LogLevel      string                 `mapstructure:"log_level"      yaml:"log_level"`
	SlowThreshold string                 `mapstructure:"slow_threshold" yaml:"slow_threshold"`
	SQLite        DatabaseSQLiteConfig   `mapstructure:"sqlite"         yaml:"sqlite"`
	Postgres      DatabasePostgresConfig `mapstructure:"postgres"       yaml:"postgres"`
}

// DatabaseSQLiteConfig holds SQLite-specific configuration
type DatabaseSQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DatabasePostgresConfig holds Postgres connection and pool settings
type DatabasePostgresConfig struct {
	DSN             string `mapstructure:"dsn"                yaml:"dsn"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"     yaml:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"     yaml:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"  yaml:"conn_max_lifetime"`
	ConnMaxIdleTime string `mapstructure:"conn_max_idle_time" yaml:"conn_max_idle_time"`
}

// Validate reports whether the selected database type has the settings it needs.
func (c DatabaseConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case DatabaseTypeSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("database.sqlite.path must not be empty")
		}
	case DatabaseTypePostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return fmt.Errorf("database.postgres.dsn must not be empty")
		}
	default:
		return fmt.Errorf("unknown database type: %q", c.Type)
	}
	return nil
}

// ParseDuration parses value and falls back to def when it is blank or invalid.
func ParseDuration(value string, def time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
