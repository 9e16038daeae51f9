package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/pkg/logger"
)

// errorJSON writes the error envelope.
func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Code: code, Message: message})
}

// internalError logs err and answers 500 without exposing storage details.
func internalError(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")
	return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", "Internal server error")
}

// invalidBody answers 400 for a body that is not valid JSON.
func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
}
