package db

import (
	"context"
	"fmt"

	"github.com/mwantia/foodgram/internal/catalog"
	"github.com/mwantia/foodgram/internal/config"
	"github.com/mwantia/foodgram/pkg/db/migrations"
	"github.com/mwantia/foodgram/pkg/db/store"
	"github.com/spf13/cobra"
)

// migratorSource is implemented by stores backed by GORM.
type migratorSource interface {
	Migrator() *migrations.Migrator
}

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect schema migrations",
		Long:  "Apply, roll back or list the versioned schema migrations of the recipe catalog.",
	}

	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateDownCommand())
	cmd.AddCommand(newMigrateStatusCommand())

	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *migrations.Migrator) error {
				if err := m.Migrate(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema is at version %d\n", m.Latest())
				return nil
			})
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the last applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *migrations.Migrator) error {
				if err := m.Rollback(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Rolled back the last migration")
				return nil
			})
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *migrations.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return err
				}
				for _, status := range statuses {
					state := "pending"
					if status.Applied {
						state = "applied"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-8s %s\n", status.Version, state, status.Description)
				}
				return nil
			})
		},
	}
}

func withMigrator(cmd *cobra.Command, fn func(ctx context.Context, m *migrations.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	return catalog.New(cfg).Run(cmd.Context(), func(ctx context.Context, s store.CatalogStore) error {
		source, ok := s.(migratorSource)
		if !ok {
			return fmt.Errorf("store %T does not support migrations", s)
		}
		return fn(ctx, source.Migrator())
	})
}
