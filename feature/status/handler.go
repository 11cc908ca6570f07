package status

import (
	"font-helper/core/config"
	"font-helper/core/metrics"
	"font-helper/core/router"

	"github.com/gofiber/fiber/v2"
)

// Handler serves operational endpoints.
type Handler struct {
	metrics *metrics.Metrics
}

// NewHandler creates a new HTTP handler. m may be nil, in which case
// /metrics is not served.
func NewHandler(m *metrics.Metrics) *Handler {
	return &Handler{metrics: m}
}

// Routes returns the status routes.
func (h *Handler) Routes() []router.Route {
	routes := []router.Route{
		{Method: fiber.MethodGet, Path: "/health", Handler: router.HandlerFunc(h.HandleHealth)},
	}
	// Metrics are optional, e.g. in handler tests
	if h.metrics != nil {
		serve := h.metrics.Handler()
		routes = append(routes, router.Route{
			Method: fiber.MethodGet,
			Path:   "/metrics",
			Handler: router.HandlerFunc(func(c *fiber.Ctx, _ *config.Config) error {
				return serve(c)
			}),
		})
	}
	return routes
}

// HandleHealth reports liveness together with the bound address.
// @Summary Health
// @Description Reports liveness together with the bound address.
// @Tags status
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx, cfg *config.Config) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"addr":   cfg.Server.Address(),
	})
}
