package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Pantry-Tracker/cmd/config"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/pkg/consumption"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily consumption scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts, closer, err := config.Bootstrap(ctx)
			if err != nil {
				return err
			}
			defer closer.Close()

			app, err := config.NewApp(opts)
			if err != nil {
				return err
			}

			if utils.GetConfig("AUTO_CONSUMPTION_ENABLED") == "true" {
				interval := utils.GetDuration("AUTO_CONSUMPTION_INTERVAL", time.Hour)
				scheduler := consumption.NewScheduler(app.Gate, opts.Clock, interval)
				go scheduler.Run(ctx)
				log.Infow("auto consumption scheduler started", "interval", interval.String())
			}

			go func() {
				<-ctx.Done()
				log.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := app.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
					log.Errorw("server shutdown failed", "error", err)
				}
			}()

			port := utils.GetConfig("APP_PORT")
			log.Infow("server starting", "port", port)
			return app.Fiber.Listen(":" + port)
		},
	}
}
