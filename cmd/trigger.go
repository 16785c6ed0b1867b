package main

import (
	"encoding/json"
	"io"

	"Pantry-Tracker/cmd/config"

	"github.com/spf13/cobra"
)

func newTriggerCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Run automatic consumption once through the daily gate",
		Long: `Run automatic consumption once. Without --force the run is skipped when
it already happened today, which makes the command safe to schedule from cron.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, closer, err := config.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer closer.Close()
			opts.LogOutput = io.Discard

			app, err := config.NewApp(opts)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if force {
				report, err := app.Engine.ProcessAutomaticConsumption(cmd.Context())
				if err != nil {
					return err
				}
				return enc.Encode(report)
			}

			res, err := app.Gate.Trigger(cmd.Context())
			if err != nil {
				return err
			}
			return enc.Encode(res)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "bypass the once per day check")
	return cmd
}
