package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Quotation-api/internal/application/dto"
)

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Success: true, Message: "Server running"})
}

// NotFound answers unknown routes with the error envelope.
func NotFound(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "Route not found: "+c.Method()+" "+c.OriginalURL())
}
