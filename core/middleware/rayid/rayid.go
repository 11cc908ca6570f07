package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the ray id on requests and responses.
	Header = "X-Ray-ID"
	// LocalsKey is where the ray id is stored on the fiber context.
	LocalsKey = "ray_id"
)

// New returns a middleware that tags each request with a ray id.
// An incoming X-Ray-ID is kept when it is a valid UUID.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// FromCtx returns the ray id of the request, or "".
func FromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsKey).(string)
	return id
}
