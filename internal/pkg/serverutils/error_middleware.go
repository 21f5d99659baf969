package serverutils

import (
	"errors"

	"auction-marketplace-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of controllers into the
// structured failure envelope: {"error": {"kind": ..., "message": ...}}.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Status()).JSON(fiber.Map{
				"error": fiber.Map{
					"kind":    appErr.Kind,
					"message": appErr.Message,
				},
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiber.Map{
					"kind":    "INTERNAL",
					"message": fiberErr.Message,
				},
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"kind":    "INTERNAL",
				"message": "internal server error",
			},
		})
	}
}
