package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskflow-app/taskflow/internal/auth/service"
)

// UserIDKey is the locals key under which RequireAuth stores the verified
// user id. Downstream handlers must resolve ownership from this value only,
// never from a client-supplied field.
const UserIDKey = "user_id"

// RequireAuth rejects the request before any store access unless it carries
// a valid bearer token.
func RequireAuth(tokens service.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token"})
		}

		c.Locals(UserIDKey, claims.UserID)

		return c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
