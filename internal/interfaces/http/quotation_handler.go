package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/internal/application/quotation"
	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/pkg/logger"
)

// QuotationHandler serves the quotation ledger.
type QuotationHandler struct {
	ledger *quotation.Ledger
	log    *logger.Logger
}

// NewQuotationHandler builds the quotation handler.
func NewQuotationHandler(ledger *quotation.Ledger, log *logger.Logger) *QuotationHandler {
	return &QuotationHandler{ledger: ledger, log: log}
}

// writeError maps ledger errors to the envelope.
func (h *QuotationHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return errorJSON(c, fiber.StatusBadRequest, "MISSING_FIELD", "Please provide quotation ID and segment")
	case errors.Is(err, domain.ErrDuplicateID):
		return errorJSON(c, fiber.StatusBadRequest, "DUPLICATE_ID", "Quotation ID already exists")
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "Quotation not found")
	case errors.Is(err, quotation.ErrRendererUnavailable):
		return errorJSON(c, fiber.StatusServiceUnavailable, "PDF_UNAVAILABLE", "PDF rendering is not available")
	}
	return internalError(c, h.log, err)
}

// Create godoc
// @Summary      Create quotation
// @Description  id and quotationSegment are required; attributes outside the schema are stored verbatim.
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Quotation  true  "quotation"
// @Success      201   {object}  dto.DataResponse{data=entity.Quotation}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var q entity.Quotation
	if err := decodeBody(c, &q); err != nil {
		return invalidBody(c)
	}
	created, err := h.ledger.Create(c.UserContext(), &q)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{
		Success: true,
		Message: "Quotation created successfully",
		Data:    created,
	})
}

// List godoc
// @Summary      List quotations
// @Tags         quotations
// @Produce      json
// @Success      200  {object}  dto.ListResponse{data=[]entity.Quotation}
// @Router       /api/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	list, err := h.ledger.List(c.UserContext())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.ListResponse{Success: true, Count: len(list), Data: list})
}

// ListBySegment godoc
// @Summary      List quotations of a segment
// @Tags         quotations
// @Produce      json
// @Param        segment  path  string  true  "quotation segment"
// @Success      200  {object}  dto.ListResponse{data=[]entity.Quotation}
// @Router       /api/quotations/segment/{segment} [get]
func (h *QuotationHandler) ListBySegment(c *fiber.Ctx) error {
	list, err := h.ledger.ListBySegment(c.UserContext(), param(c, "segment"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.ListResponse{Success: true, Count: len(list), Data: list})
}

// ListByUser godoc
// @Summary      List quotations created by a user
// @Tags         quotations
// @Produce      json
// @Param        username  path  string  true  "createdBy"
// @Success      200  {object}  dto.ListResponse{data=[]entity.Quotation}
// @Router       /api/quotations/user/{username} [get]
func (h *QuotationHandler) ListByUser(c *fiber.Ctx) error {
	list, err := h.ledger.ListByCreator(c.UserContext(), param(c, "username"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.ListResponse{Success: true, Count: len(list), Data: list})
}

// GetByID godoc
// @Summary      Get quotation
// @Tags         quotations
// @Produce      json
// @Param        id  path  string  true  "quotation id"
// @Success      200  {object}  dto.DataResponse{data=entity.Quotation}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	q, err := h.ledger.GetByID(c.UserContext(), param(c, "id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Data: q})
}

// Update godoc
// @Summary      Update quotation
// @Description  Top-level attributes of the body replace the stored ones; the rest are kept.
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "quotation id"
// @Param        body  body  object  true  "attributes to replace"
// @Success      200   {object}  dto.DataResponse{data=entity.Quotation}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [put]
func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	patch := map[string]json.RawMessage{}
	if err := decodeBody(c, &patch); err != nil {
		return invalidBody(c)
	}
	q, err := h.ledger.Update(c.UserContext(), param(c, "id"), patch)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Message: "Quotation updated successfully", Data: q})
}

// Delete godoc
// @Summary      Delete quotation
// @Tags         quotations
// @Produce      json
// @Param        id  path  string  true  "quotation id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.Delete(c.UserContext(), param(c, "id")); err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Quotation deleted successfully"})
}

// PDF godoc
// @Summary      Download quotation as PDF
// @Tags         quotations
// @Produce      application/pdf
// @Param        id  path  string  true  "quotation id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	doc, name, err := h.ledger.RenderPDF(c.UserContext(), param(c, "id"))
	if err != nil {
		return h.writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(doc)
}
