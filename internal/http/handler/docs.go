package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"perfserver/docs"
)

// RegisterDocs serves the Swagger UI and document under /swagger.
// The document leaves host and schemes empty, so the UI targets whichever host served it.
// SwaggerInfo is fixed before the route exists and never written per request.
func RegisterDocs(app *fiber.App) {
	docs.SwaggerInfo.Host = ""
	docs.SwaggerInfo.Schemes = []string{}

	app.Get("/swagger/*", swagger.HandlerDefault)
}
