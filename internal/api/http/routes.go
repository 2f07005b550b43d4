package httpapi

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-search/internal/history"
	"github.com/i474232898/weather-search/internal/weather"
)

var validate = validator.New()

// recentLimit is the fixed number of history entries returned to callers.
const recentLimit = 5

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, store *history.Store, gateway *weather.Gateway, log *slog.Logger) {
	// Liveness.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Weather API is running...")
	})

	api := app.Group("/api")

	api.Post("/weather", func(c *fiber.Ctx) error {
		var req lookupRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "city is required"})
		}

		payload, err := gateway.Current(c.Context(), req.City)
		if err != nil {
			log.Error("weather lookup failed", "city", req.City, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "City not found or API error"})
		}

		// The submitted city is recorded, not the provider-normalized name.
		if _, err := store.Create(c.Context(), req.City, time.Time{}); err != nil {
			log.Error("failed to record search", "city", req.City, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "City not found or API error"})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	})

	api.Get("/history", func(c *fiber.Ctx) error {
		records, err := store.ListRecent(c.Context(), recentLimit)
		if err != nil {
			log.Error("failed to list history", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load history"})
		}
		return c.JSON(records)
	})

	api.Delete("/history/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")

		err := store.DeleteByID(c.Context(), id)
		switch {
		case errors.Is(err, history.ErrInvalidID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID format"})
		case errors.Is(err, history.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Search not found"})
		case err != nil:
			log.Error("failed to delete search", "id", id, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Delete failed"})
		}

		return c.JSON(fiber.Map{"message": "Search deleted successfully"})
	})
}

// lookupRequest is the POST /api/weather request body.
type lookupRequest struct {
	City string `json:"city" validate:"required"`
}
