package middleware

import (
	"github.com/gofiber/fiber/v2"

	"fstrack/internal/database"
)

// RequireRole gates a route on an explicit set of allowed roles. Runs after
// AuthMiddleware has put the user in locals.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(database.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		if !allowed[user.Role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have access to this operation",
			})
		}

		return c.Next()
	}
}
