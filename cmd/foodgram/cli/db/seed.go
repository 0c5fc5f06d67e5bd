package db

import (
	"context"
	"fmt"

	"github.com/mwantia/foodgram/internal/catalog"
	"github.com/mwantia/foodgram/internal/config"
	"github.com/mwantia/foodgram/pkg/db/fixtures"
	"github.com/mwantia/foodgram/pkg/db/store"
	"github.com/spf13/cobra"
)

func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with demo data",
		Long:  "Apply pending migrations and insert demo users, tags, ingredients and recipes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			return catalog.New(cfg).Run(cmd.Context(), func(ctx context.Context, s store.CatalogStore) error {
				if err := s.Migrate(ctx); err != nil {
					return fmt.Errorf("failed to migrate: %w", err)
				}

				data, err := fixtures.Seed(ctx, s)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d tags, %d ingredients and %d recipes\n",
					len(data.Users), len(data.Tags), len(data.Ingredients), len(data.Recipes))
				return nil
			})
		},
	}

	return cmd
}
