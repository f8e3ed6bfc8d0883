package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// HeaderName is the request header carrying the session token.
const HeaderName = "x-auth-token"

// NewAuthMiddleware returns a Fiber middleware that validates the token from
// the x-auth-token header. On success it sets the subject user id into
// c.Locals("userId"). It is a pure gate: no business logic, safe to run
// concurrently across requests.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(c.Get(HeaderName))
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"msg": "No token, authorization denied"})
		}
		userID, err := Parse(tokenStr, secret, expectedIssuer)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"msg": "Token is not valid"})
		}
		c.Locals("userId", userID)
		return c.Next()
	}
}
