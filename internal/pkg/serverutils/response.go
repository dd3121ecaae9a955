package serverutils

import (
	"errors"

	"github.com/oraclehub-commits/brain-hub/internal/service"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

func errorResponse(message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"message": message,
	}
}

// ErrorHandlerMiddleware maps service errors to HTTP statuses so the
// controllers can just bubble them up.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			return ctx.Status(fiber.StatusUnauthorized).JSON(errorResponse("Unauthorized"))
		case errors.Is(err, service.ErrSessionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(errorResponse(err.Error()))
		case errors.Is(err, service.ErrGenerationFailed):
			return ctx.Status(fiber.StatusInternalServerError).JSON(errorResponse("Failed to generate response"))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(errorResponse(fiberErr.Message))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(errorResponse("Internal server error"))
		}
	}
}
