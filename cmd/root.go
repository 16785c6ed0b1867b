package main

import (
	"Pantry-Tracker/internal/utils"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "pantry",
		Short:         "Pantry tracks household food stock, expirations and daily consumption",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if configFile != "" {
				utils.SetConfigPath(configFile)
			}
			utils.LoadConfig()
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (default: config.yaml)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newTriggerCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newTokenCmd())
	return root
}
