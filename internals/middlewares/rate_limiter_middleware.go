package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "disiplinku_backend/internals/helpers"
)

// Jalur yang tidak ikut dihitung limiter global (health check & file statis).
var limiterSkipPrefixes = []string{"/health", "/documents/"}

func skipLimiter(c *fiber.Ctx) bool {
	p := c.Path()
	for _, prefix := range limiterSkipPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// GlobalRateLimiter: max request per menit per IP untuk seluruh API.
func GlobalRateLimiter(limit int) fiber.Handler {
	if limit <= 0 {
		limit = 100
	}
	return limiter.New(limiter.Config{
		Next:       skipLimiter,
		Max:        limit,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Terlalu banyak permintaan. Silakan coba lagi nanti.")
		},
	})
}

// LoginRateLimiter: kuota terpisah per IP dan per endpoint login (password / google).
func LoginRateLimiter(limit int) fiber.Handler {
	if limit <= 0 {
		limit = 5
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.Path() + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Terlalu banyak percobaan login. Coba beberapa saat lagi.")
		},
	})
}
