package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"disiplinku_backend/internals/services/reporting"
)

// FromFiberError mengubah error hasil repository/Transaction (biasanya *fiber.Error)
// menjadi response JSON konsisten. Error validasi → 422 per field.
// Selain itu fallback ke 500; pesan asli tidak dibocorkan ke client.
func FromFiberError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			reporting.Error(err, reportFields(c))
		}
		return JsonError(c, fe.Code, fe.Message)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, ValidationMessages(ve))
	}
	reporting.Error(err, reportFields(c))
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

func reportFields(c *fiber.Ctx) map[string]interface{} {
	return map[string]interface{}{
		"path":   c.Path(),
		"method": c.Method(),
		"reqid":  requestID(c),
	}
}
