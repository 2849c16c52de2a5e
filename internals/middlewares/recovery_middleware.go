package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	helper "disiplinku_backend/internals/helpers"
	"disiplinku_backend/internals/services/reporting"
)

// RecoveryMiddleware menangkap panic, melaporkannya ke Rollbar, dan mengembalikan error 500
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			reporting.Critical(e, map[string]interface{}{
				"path":   c.Path(),
				"method": c.Method(),
				"reqid":  c.Locals(helper.LocRequestID),
			})
		},
	})
}
