package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter allows max requests per window from one client IP.
func RateLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: message,
				Status:  fiber.StatusTooManyRequests,
			})
		},
	})
}

// LoginRateLimiter guards credential endpoints.
func LoginRateLimiter() fiber.Handler {
	return RateLimiter(10, time.Minute, "Too many login attempts. Please try again later.")
}

// SubmitRateLimiter guards quiz submission.
func SubmitRateLimiter() fiber.Handler {
	return RateLimiter(30, time.Minute, "Too many submissions. Please slow down.")
}
