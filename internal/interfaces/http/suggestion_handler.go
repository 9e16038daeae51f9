package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/internal/application/suggestion"
	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SuggestionHandler serves the custom autocomplete lists.
type SuggestionHandler struct {
	registry *suggestion.Registry
	log      *logger.Logger
}

// NewSuggestionHandler builds the suggestion handler.
func NewSuggestionHandler(registry *suggestion.Registry, log *logger.Logger) *SuggestionHandler {
	return &SuggestionHandler{registry: registry, log: log}
}

func invalidType(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "INVALID_TYPE", "Invalid type. Must be one of: "+entity.ValidSuggestionTypes())
}

// stringField reads a string attribute from a decoded body; other JSON types read as "".
func stringField(body map[string]json.RawMessage, key string) string {
	var s string
	if raw, ok := body[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// List godoc
// @Summary      List suggestions grouped by type
// @Tags         custom-suggestions
// @Produce      json
// @Success      200  {object}  dto.GroupedSuggestionsResponse
// @Router       /api/custom-suggestions [get]
func (h *SuggestionHandler) List(c *fiber.Ctx) error {
	grouped, err := h.registry.ListAll(c.UserContext())
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.GroupedSuggestionsResponse{Success: true, Suggestions: grouped})
}

// ListByType godoc
// @Summary      List suggestions of one type
// @Tags         custom-suggestions
// @Produce      json
// @Param        type  path  string  true  "customer, consignee, pod, pol, por, airportDeparture, airportDestination"
// @Success      200  {object}  dto.TypedSuggestionsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/custom-suggestions/{type} [get]
func (h *SuggestionHandler) ListByType(c *fiber.Ctx) error {
	typ := param(c, "type")
	list, err := h.registry.ListByType(c.UserContext(), typ)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidType) {
			return invalidType(c)
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.TypedSuggestionsResponse{Success: true, Type: typ, Count: len(list), Suggestions: list})
}

// Create godoc
// @Summary      Save a suggestion
// @Description  customer and consignee take {name, address}; the other types take a string.
// @Tags         custom-suggestions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSuggestionRequest  true  "type, value, createdBy"
// @Success      201   {object}  dto.DataResponse{data=dto.SuggestionResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/custom-suggestions [post]
func (h *SuggestionHandler) Create(c *fiber.Ctx) error {
	body := map[string]json.RawMessage{}
	if err := decodeBody(c, &body); err != nil {
		return invalidBody(c)
	}
	saved, err := h.registry.Create(c.UserContext(), stringField(body, "type"), body["value"], stringField(body, "createdBy"))
	if err != nil {
		var shape *suggestion.ShapeError
		switch {
		case errors.Is(err, domain.ErrInvalidType):
			return invalidType(c)
		case errors.Is(err, domain.ErrMissingValue):
			return errorJSON(c, fiber.StatusBadRequest, "MISSING_VALUE", "Value is required")
		case errors.As(err, &shape) && shape.Type.IsComplex():
			return errorJSON(c, fiber.StatusBadRequest, "INVALID_SHAPE", "For customer/consignee, value must be an object with name and address")
		case errors.Is(err, domain.ErrInvalidShape):
			return errorJSON(c, fiber.StatusBadRequest, "INVALID_SHAPE", "For this type, value must be a string")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return errorJSON(c, fiber.StatusBadRequest, "DUPLICATE_ENTRY", "This suggestion already exists")
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{
		Success: true,
		Message: "Suggestion saved successfully",
		Data:    saved,
	})
}

// CreateBatch godoc
// @Summary      Save many suggestions
// @Description  Items are processed in order; a failing item is reported and does not stop the batch.
// @Tags         custom-suggestions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchSuggestionRequest  true  "suggestions, createdBy"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/custom-suggestions/batch [post]
func (h *SuggestionHandler) CreateBatch(c *fiber.Ctx) error {
	body := map[string]json.RawMessage{}
	if err := decodeBody(c, &body); err != nil {
		return invalidBody(c)
	}
	var items []json.RawMessage
	if raw, ok := body["suggestions"]; ok {
		_ = json.Unmarshal(raw, &items)
	}
	if len(items) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "MISSING_FIELD", "Suggestions array is required")
	}
	res, err := h.registry.CreateBatch(c.UserContext(), items, stringField(body, "createdBy"))
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchResponse{
		Success:     true,
		Message:     "Batch processing complete",
		BatchResult: *res,
	})
}

// Delete godoc
// @Summary      Delete a suggestion
// @Tags         custom-suggestions
// @Produce      json
// @Param        type  path  string  true  "suggestion type"
// @Param        id    path  string  true  "suggestion id"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/custom-suggestions/{type}/{id} [delete]
func (h *SuggestionHandler) Delete(c *fiber.Ctx) error {
	err := h.registry.Delete(c.UserContext(), param(c, "type"), param(c, "id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidType):
			return invalidType(c)
		case errors.Is(err, domain.ErrNotFound):
			return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "Suggestion not found")
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Suggestion deleted successfully"})
}

// Import godoc
// @Summary      Import suggestions from a spreadsheet
// @Description  .xlsx with a header row Type | Value | Name | Address. Rows go through the batch rules.
// @Tags         custom-suggestions
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "workbook"
// @Param        createdBy  formData  string  false  "creator"
// @Success      201  {object}  dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/custom-suggestions/import [post]
func (h *SuggestionHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "MISSING_FIELD", "A workbook file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return internalError(c, h.log, err)
	}
	defer f.Close()

	res, err := h.registry.ImportWorkbook(c.UserContext(), f, c.FormValue("createdBy"))
	if err != nil {
		switch {
		case errors.Is(err, suggestion.ErrWorkbookUnsupported):
			return errorJSON(c, fiber.StatusServiceUnavailable, "WORKBOOK_UNAVAILABLE", "Workbook import is not available")
		case errors.Is(err, domain.ErrInvalidInput):
			return errorJSON(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
		case errors.Is(err, domain.ErrMissingField):
			return errorJSON(c, fiber.StatusBadRequest, "MISSING_FIELD", "Workbook has no suggestion rows")
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchResponse{
		Success:     true,
		Message:     "Import complete",
		BatchResult: *res,
	})
}

// Export godoc
// @Summary      Export suggestions to a spreadsheet
// @Tags         custom-suggestions
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/custom-suggestions/export [get]
func (h *SuggestionHandler) Export(c *fiber.Ctx) error {
	doc, err := h.registry.ExportWorkbook(c.UserContext())
	if err != nil {
		if errors.Is(err, suggestion.ErrWorkbookUnsupported) {
			return errorJSON(c, fiber.StatusServiceUnavailable, "WORKBOOK_UNAVAILABLE", "Workbook export is not available")
		}
		return internalError(c, h.log, err)
	}
	name := fmt.Sprintf("custom_suggestions_%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(doc)
}
