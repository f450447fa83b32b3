package middleware

import (
	"github.com/gofiber/fiber/v2"

	"fstrack/internal/platform/throttle"
)

const throttleRetryMessage = "Too many attempts. Try again in 15 minutes."

// LoginThrottleKey derives the throttle bucket from the submitted username,
// not the source address: shared corporate networks and VPNs must not
// collide. Requests without a username share one anonymous bucket.
func LoginThrottleKey(c *fiber.Ctx) string {
	var body struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&body); err != nil || body.Username == "" {
		return "anonymous"
	}
	return "login:" + body.Username
}

// LoginThrottle rejects over-limit requests before the authenticator is ever
// invoked. The key function is passed in rather than subclassed.
func LoginThrottle(window *throttle.SlidingWindow, key func(*fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !window.Allow(key(c)) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": throttleRetryMessage,
			})
		}
		return c.Next()
	}
}
