package main

import (
	"Pantry-Tracker/cmd/config"
	migration "Pantry-Tracker/cmd/database/migrate"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the postgres schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			return migration.Migrate(db)
		},
	}
}
