package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCommand(info VersionInfo) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "foodgram",
		Short:         "Foodgram recipe catalog",
		Long:          "Manage the foodgram recipe catalog database: apply schema migrations and seed demo data.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(path)
		},
	}

	cmd.PersistentFlags().StringVar(&path, "config", "", "config file (default is ./config.yaml)")
	cmd.PersistentFlags().Bool("no-color", false, "Disables colored command output")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	cmd.PersistentFlags().String("database", "", "database back end (sqlite, postgres)")
	cmd.PersistentFlags().String("sqlite-path", "", "sqlite database file")
	cmd.PersistentFlags().String("postgres-dsn", "", "postgres connection string")

	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.no_color", cmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("database.type", cmd.PersistentFlags().Lookup("database"))
	viper.BindPFlag("database.sqlite.path", cmd.PersistentFlags().Lookup("sqlite-path"))
	viper.BindPFlag("database.postgres.dsn", cmd.PersistentFlags().Lookup("postgres-dsn"))

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}
