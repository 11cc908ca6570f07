package docs

import (
	"font-helper/core/config"
	"font-helper/core/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Prefix is where the UI is served.
const Prefix = "/swagger/"

// assets are the files the UI requests below Prefix.
var assets = []string{
	"",
	"index.html",
	"doc.json",
	"index.css",
	"swagger-ui.css",
	"swagger-ui-bundle.js",
	"swagger-ui-standalone-preset.js",
	"swagger-initializer.js",
	"oauth2-redirect.html",
	"favicon-16x16.png",
	"favicon-32x32.png",
}

// Handler forwards documentation requests to the swagger UI.
type Handler struct {
	serve func(c *fiber.Ctx) error
}

// NewHandler creates a new HTTP handler.
func NewHandler() *Handler {
	inner := fiber.New(fiber.Config{DisableStartupMessage: true})
	inner.Get(Prefix+"*", swagger.HandlerDefault)
	serve := inner.Handler()

	return &Handler{serve: func(c *fiber.Ctx) error {
		// The embedded app writes straight into the shared request context.
		serve(c.Context())
		return nil
	}}
}

// Routes returns one exact route per UI asset.
func (h *Handler) Routes() []router.Route {
	routes := make([]router.Route, 0, len(assets))
	for _, name := range assets {
		routes = append(routes, router.Route{
			Method:  fiber.MethodGet,
			Path:    Prefix + name,
			Handler: router.HandlerFunc(h.HandleDocs),
		})
	}
	return routes
}

// HandleDocs serves the Swagger UI and its OpenAPI document.
func (h *Handler) HandleDocs(c *fiber.Ctx, _ *config.Config) error {
	return h.serve(c)
}
