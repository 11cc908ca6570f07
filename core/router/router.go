package router

import (
	"errors"
	"fmt"

	"font-helper/core/config"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrSealed is returned when registering into a table that is already serving.
	ErrSealed = errors.New("route table is sealed")
	// ErrInvalidRoute is returned for routes missing a method, path or handler.
	ErrInvalidRoute = errors.New("invalid route")
)

// Handler produces the response for one matched request.
// Implementations must be safe to call concurrently from multiple workers.
type Handler interface {
	Handle(c *fiber.Ctx, cfg *config.Config) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(c *fiber.Ctx, cfg *config.Config) error

// Handle calls f(c, cfg).
func (f HandlerFunc) Handle(c *fiber.Ctx, cfg *config.Config) error {
	return f(c, cfg)
}

// Route binds a method and an exact path to a handler.
type Route struct {
	Method  string
	Path    string
	Handler Handler
}

// String returns "METHOD /path".
func (r Route) String() string {
	return r.Method + " " + r.Path
}

// Table is an ordered list of routes. Register is not safe for concurrent use;
// Lookup is, once the table has been sealed.
type Table struct {
	routes []Route
	sealed bool
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{}
}

// Register appends a route. Duplicates are accepted; the earlier one keeps winning.
func (t *Table) Register(route Route) error {
	if t.sealed {
		return fmt.Errorf("register %s: %w", route, ErrSealed)
	}
	if route.Method == "" || route.Path == "" || route.Handler == nil {
		return fmt.Errorf("register %q: %w", route.String(), ErrInvalidRoute)
	}
	t.routes = append(t.routes, route)
	return nil
}

// MustRegister is Register for static route sets; it panics on error.
func (t *Table) MustRegister(routes ...Route) {
	for _, r := range routes {
		if err := t.Register(r); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the handler of the first route matching method and path exactly.
func (t *Table) Lookup(method, path string) (Handler, bool) {
	for i := range t.routes {
		if t.routes[i].Method == method && t.routes[i].Path == path {
			return t.routes[i].Handler, true
		}
	}
	return nil, false
}

// Seal makes the table read-only. Sealing twice is a no-op.
func (t *Table) Seal() {
	t.sealed = true
}

// Sealed reports whether Seal has been called.
func (t *Table) Sealed() bool {
	return t.sealed
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Routes returns a copy of the registered routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}
