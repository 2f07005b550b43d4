package web

import (
	"embed"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed static
var assets embed.FS

// Register serves the embedded single-page client under /app.
func Register(app *fiber.App) {
	app.Use("/app", filesystem.New(filesystem.Config{
		Root:       http.FS(assets),
		PathPrefix: "static",
		Index:      "index.html",
	}))
}
