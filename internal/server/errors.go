package server

import (
	"errors"

	"scribe/internal/common"
	"scribe/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// errorHandler maps domain errors onto status codes. Auth failures share one
// body so callers cannot tell which check failed.
func errorHandler(log logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg := fiber.StatusInternalServerError, "internal server error"
		var fe *fiber.Error

		switch {
		case errors.Is(err, common.ErrValidation):
			status, msg = fiber.StatusBadRequest, err.Error()
		case errors.Is(err, common.ErrEmailTaken):
			status, msg = fiber.StatusBadRequest, common.ErrEmailTaken.Error()
		case errors.Is(err, common.ErrInvalidCredentials):
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			status, msg = fiber.StatusUnauthorized, common.ErrInvalidCredentials.Error()
		case errors.Is(err, common.ErrUnauthenticated), errors.Is(err, common.ErrInvalidToken):
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			status, msg = fiber.StatusUnauthorized, common.ErrUnauthenticated.Error()
		case errors.Is(err, common.ErrNotFound):
			status, msg = fiber.StatusNotFound, "note not found"
		case errors.As(err, &fe):
			status, msg = fe.Code, fe.Message
		default:
			log.Error(c.UserContext(), "request failed",
				"method", c.Method(), "path", c.Path(), "error", err)
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
}
