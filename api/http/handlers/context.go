package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorID returns the authenticated user id the auth middleware stored in
// the request context. It is only valid on routes behind the middleware.
func actorID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
