package dispatch

import (
	"font-helper/core/config"
	"font-helper/core/router"

	"github.com/gofiber/fiber/v2"
)

// TrustedOrigin is the only web origin allowed by CORS. It is fixed at build
// time and never derived from the request.
const TrustedOrigin = "https://www.figma.com"

// Dispatcher routes requests to handlers from a route table.
type Dispatcher struct {
	table    *router.Table
	config   *config.Config
	fallback router.Handler
}

// New creates a dispatcher. A nil fallback selects NotFound.
func New(table *router.Table, cfg *config.Config, fallback router.Handler) *Dispatcher {
	if fallback == nil {
		fallback = NotFound
	}
	return &Dispatcher{table: table, config: cfg, fallback: fallback}
}

// Handle is the catch-all fiber handler.
// OPTIONS requests get the preflight response without consulting the table.
// Handler errors are returned unchanged.
func (d *Dispatcher) Handle(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodOptions {
		return Preflight(c)
	}

	if h, ok := d.table.Lookup(c.Method(), c.Path()); ok {
		return h.Handle(c, d.config)
	}
	return d.fallback.Handle(c, d.config)
}

// Preflight writes the fixed CORS preflight response.
func Preflight(c *fiber.Ctx) error {
	AllowCORS(c)
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// AllowCORS sets the CORS headers for the trusted origin on the response.
func AllowCORS(c *fiber.Ctx) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, TrustedOrigin)
	c.Set("Access-Control-Allow-Private-Network", "true")
}

// NotFound is the default fallback handler.
var NotFound router.Handler = router.HandlerFunc(func(c *fiber.Ctx, _ *config.Config) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":  "not found",
		"method": c.Method(),
		"path":   c.Path(),
	})
})
