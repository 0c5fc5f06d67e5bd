package main

import (
	"fmt"
	"os"

	"github.com/mwantia/foodgram/cmd/foodgram/cli"
	"github.com/mwantia/foodgram/cmd/foodgram/cli/db"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())
	root.AddCommand(cli.NewConfigCommand())

	root.AddCommand(db.NewMigrateCommand())
	root.AddCommand(db.NewSeedCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
