package config

import (
	"context"
	"errors"
	"fmt"
	"io"

	migration "Pantry-Tracker/cmd/database/migrate"
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/internal/utils/mailing"
	"Pantry-Tracker/internal/utils/storage"
	"Pantry-Tracker/pkg/backup"
	"Pantry-Tracker/pkg/cascade"
	"Pantry-Tracker/pkg/consumption"
	"Pantry-Tracker/pkg/store"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Bootstrap turns the loaded configuration into AppOptions. The returned
// closer releases the marker database, if one was opened.
func Bootstrap(ctx context.Context) (AppOptions, io.Closer, error) {
	utils.LoadConfig()
	setLogLevel(utils.GetConfig("LOG_LEVEL"))

	opts := AppOptions{
		Clock:     clock.Real(),
		Location:  utils.GetLocation(),
		Policy:    utils.GetConfig("AUTO_CONSUMPTION_POLICY"),
		JWTSecret: utils.GetConfig("JWT_SECRET"),
		RateLimit: 10,
	}
	closer := closers{}

	var db *gorm.DB
	switch backend := utils.GetConfig("STORAGE_BACKEND"); backend {
	case "", "memory":
		opts.Repository = store.NewMemoryRepository()
	case "postgres":
		var err error
		if db, err = ConnectDB(); err != nil {
			return AppOptions{}, nil, err
		}
		if err := migration.Migrate(db); err != nil {
			return AppOptions{}, nil, err
		}
		opts.Repository = store.NewGormRepository(db)
	default:
		return AppOptions{}, nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, backend)
	}

	switch backend := utils.GetConfig("MARKER_BACKEND"); backend {
	case "", "memory":
		opts.Markers = consumption.NewMemoryMarkerStore()
	case "sqlite":
		markers, err := consumption.NewSQLiteMarkerStore(utils.GetConfig("MARKER_PATH"), opts.Clock)
		if err != nil {
			return AppOptions{}, nil, err
		}
		closer = append(closer, markers)
		opts.Markers = markers
	case "postgres":
		if db == nil {
			return AppOptions{}, nil, errors.New("MARKER_BACKEND=postgres requires STORAGE_BACKEND=postgres")
		}
		opts.Markers = consumption.NewGormMarkerStore(db, opts.Clock)
	default:
		return AppOptions{}, nil, fmt.Errorf("%w: marker %q", domain.ErrUnknownBackend, backend)
	}

	if mailConfig := mailing.LoadMailConfig(); mailConfig.Enabled() {
		mailer, err := mailing.NewNotificationMailer(mailConfig)
		if err != nil {
			return AppOptions{}, nil, err
		}
		opts.Notifiers = []cascade.Notifier{mailer}
		log.Infow("mail notifications enabled", "to", mailConfig.MailTo)
	}

	if bucket := utils.GetConfig("AWS_S3_BUCKET"); bucket != "" {
		s3, err := storage.NewAwsS3(ctx, storage.AwsS3Config{
			Bucket:    bucket,
			Region:    utils.GetConfig("AWS_S3_REGION"),
			AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
			SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
		})
		if err != nil {
			return AppOptions{}, nil, err
		}
		exporter := backup.NewSnapshotExporter(opts.Repository, s3, opts.Clock, opts.Location)
		opts.Hooks = []consumption.PostRunHook{exporter.Export}
		log.Infow("daily snapshots enabled", "bucket", bucket)
	}

	return opts, closer, nil
}

type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, closer := range c {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.LevelDebug)
	case "warn":
		log.SetLevel(log.LevelWarn)
	case "error":
		log.SetLevel(log.LevelError)
	default:
		log.SetLevel(log.LevelInfo)
	}
}
