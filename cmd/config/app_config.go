package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"Pantry-Tracker/internal/api/handlers"
	"Pantry-Tracker/internal/api/routes"
	"Pantry-Tracker/internal/middleware"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/cart"
	"Pantry-Tracker/pkg/cascade"
	"Pantry-Tracker/pkg/consumption"
	"Pantry-Tracker/pkg/food"
	"Pantry-Tracker/pkg/jwt"
	"Pantry-Tracker/pkg/notification"
	"Pantry-Tracker/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type (
	AppOptions struct {
		Repository store.Repository
		Markers    consumption.MarkerStore
		Clock      clock.Clock
		Location   *time.Location
		Policy     string
		JWTSecret  string
		Notifiers  []cascade.Notifier
		Hooks      []consumption.PostRunHook
		// LogOutput receives the access log. Nil means ./logs/app.log.
		LogOutput io.Writer
		// RateLimit is requests per second per client; zero disables it.
		RateLimit int
	}

	App struct {
		Fiber  *fiber.App
		Engine consumption.Engine
		Gate   consumption.Gate
	}
)

func NewApp(opts AppOptions) (*App, error) {
	if opts.Repository == nil {
		return nil, errors.New("repository is required")
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Markers == nil {
		opts.Markers = consumption.NewMemoryMarkerStore()
	}

	validator := utils.InitValidator(opts.Clock, opts.Location)
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: false,
	})
	middlewares := middleware.NewMiddleware()

	// setting up logging and limiter
	output := opts.LogOutput
	if output == nil {
		file, err := openLogFile(utils.GetConfig("LOG_FILE"))
		if err != nil {
			return nil, err
		}
		output = file
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   opts.Location.String(),
		Output:     output,
	}))

	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	// Cascade
	emitter := notification.NewEmitter(opts.Clock)
	router := cart.NewRouter(opts.Clock)
	dispatcher := cascade.NewDispatcher(emitter, router, opts.Notifiers...)

	// Service
	jwtService := jwt.NewJWTService(opts.JWTSecret)
	foodService := food.NewFoodService(opts.Repository, dispatcher, opts.Clock, opts.Location)
	notificationService := notification.NewNotificationService(opts.Repository)
	cartService := cart.NewCartService(opts.Repository, router)
	engine, err := consumption.NewEngine(opts.Repository, dispatcher, opts.Clock, opts.Policy)
	if err != nil {
		return nil, err
	}
	gate := consumption.NewGate(engine, opts.Markers, opts.Clock, opts.Location, opts.Hooks...)

	// Handler
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	cartHandler := handlers.NewCartHandler(cartService, validator)
	consumptionHandler := handlers.NewConsumptionHandler(engine, gate)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		FoodHandler:         foodHandler,
		NotificationHandler: notificationHandler,
		CartHandler:         cartHandler,
		ConsumptionHandler:  consumptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()

	return &App{
		Fiber:  app,
		Engine: engine,
		Gate:   gate,
	}, nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		path = "./logs/app.log"
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
}
