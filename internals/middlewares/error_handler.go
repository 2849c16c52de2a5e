package middlewares

import (
	"github.com/gofiber/fiber/v2"

	helper "disiplinku_backend/internals/helpers"
)

// ErrorHandler: semua error yang lolos dari handler/middleware dirender dengan envelope standar.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return helper.FromFiberError(c, err)
}
