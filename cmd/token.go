package main

import (
	"fmt"
	"time"

	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/pkg/jwt"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the auto-consumption endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := jwt.NewJWTService(utils.GetConfig("JWT_SECRET")).GenerateSchedulerToken(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "scheduler", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime")
	return cmd
}
