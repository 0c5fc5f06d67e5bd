package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/foodgram/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func writeConfigFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "shutdown_timeout: 5s\ndatabase:\n  type: sqlite\n  sqlite:\n    path: from-file.db\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// executeRoot runs the root command with a subcommand that loads the
// configuration the same way the catalog commands do.
func executeRoot(t *testing.T, args ...string) *config.BaseConfig {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	var loaded *config.BaseConfig
	root := NewRootCommand(VersionInfo{Version: "test", Commit: "none"})
	root.AddCommand(&cobra.Command{
		Use: "load",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			loaded = cfg
			return err
		},
	})

	root.SetArgs(append([]string{"load"}, args...))
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return loaded
}

func TestRootReadsConfigFile(t *testing.T) {
	cfg := executeRoot(t, "--config", writeConfigFile(t))

	if cfg.ShutdownTimeout != "5s" {
		t.Fatalf("ShutdownTimeout = %q, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.Database.SQLite.Path != "from-file.db" {
		t.Fatalf("SQLite.Path = %q, want from-file.db", cfg.Database.SQLite.Path)
	}
}

func TestRootDatabaseFlagsOverrideConfigFile(t *testing.T) {
	cfg := executeRoot(t, "--config", writeConfigFile(t),
		"--database", "postgres",
		"--postgres-dsn", "host=localhost user=foodgram dbname=foodgram")

	if cfg.Database.Type != config.DatabaseTypePostgres {
		t.Fatalf("Database.Type = %q, want postgres", cfg.Database.Type)
	}
	if cfg.Database.Postgres.DSN != "host=localhost user=foodgram dbname=foodgram" {
		t.Fatalf("Postgres.DSN = %q", cfg.Database.Postgres.DSN)
	}

	cfg = executeRoot(t, "--config", writeConfigFile(t), "--sqlite-path", "from-flag.db")
	if cfg.Database.SQLite.Path != "from-flag.db" {
		t.Fatalf("SQLite.Path = %q, want from-flag.db", cfg.Database.SQLite.Path)
	}
}
