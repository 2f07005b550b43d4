package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/i474232898/weather-search/internal/api/http"
	"github.com/i474232898/weather-search/internal/config"
	"github.com/i474232898/weather-search/internal/history"
	"github.com/i474232898/weather-search/internal/probe"
	"github.com/i474232898/weather-search/internal/weather"
	"github.com/i474232898/weather-search/internal/web"
)

func main() {
	log := setupLogger()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found", "error", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Process-wide storage handle, opened once and shared by all requests.
	store, err := history.Open(cfg.DatabaseDSN, log)
	if err != nil {
		log.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		log.Error("history store unreachable", "error", err)
		os.Exit(1)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	gateway := weather.NewGateway(httpClient, cfg.OpenWeatherAPIKey, log)

	// Optional provider reachability probe.
	prb := probe.New(cfg.ProbeCity, cfg.ProbeInterval, gateway, log)
	if err := prb.Start(); err != nil {
		log.Error("failed to start provider probe", "error", err)
		os.Exit(1)
	}
	defer prb.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-search",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// API routes and the embedded client.
	httpapi.RegisterRoutes(app, store, gateway, log)
	web.Register(app)

	// Start server with graceful shutdown
	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}

func setupLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if os.Getenv("ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
