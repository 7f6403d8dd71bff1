// Package main is the entry point for the ProjectBoard server.
// It loads configuration, connects the database pool, applies migrations
// and wires the HTTP routes.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/avissapr/projectboard/internal/config"
	"github.com/avissapr/projectboard/internal/database"
	"github.com/avissapr/projectboard/internal/handlers"
	"github.com/avissapr/projectboard/internal/logging"
	"github.com/avissapr/projectboard/internal/middleware"
	"github.com/avissapr/projectboard/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger()

	// Establish the connection pool and verify connectivity.
	err = database.Connect(database.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Bring the schema up to date before accepting traffic.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	notifier := services.NewNotificationService(cfg, logger)

	app := fiber.New()

	// Panic recovery first, then per-request logging with request ids.
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))

	handlers.RegisterRoutes(app, notifier, logger)

	// Serve the SPA bundle; API routes above take precedence.
	app.Static("/", "./web/dist")

	// Shut down cleanly on SIGINT/SIGTERM so in-flight requests finish and
	// the pool closes.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown failed", err)
		}
	}()

	logger.Info("server starting", logging.Fields{
		"port":       cfg.Port,
		"email_mode": cfg.EmailMode,
	})

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
