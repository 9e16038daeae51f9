package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Quotation-api/internal/application/auth"
	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/pkg/logger"
)

// HeaderAdminResetKey carries the secondary credential for admin password resets.
const HeaderAdminResetKey = "X-Admin-Reset-Key"

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Register user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password, fullName, role, location"
// @Success      201   {object}  dto.DataResponse{data=dto.AuthUserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := decodeBody(c, &in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			return errorJSON(c, fiber.StatusBadRequest, "MISSING_FIELD", "Please provide username, password and fullName")
		case errors.Is(err, domain.ErrPasswordTooLong):
			return errorJSON(c, fiber.StatusBadRequest, "INVALID_INPUT", "Password must be at most 72 bytes")
		case errors.Is(err, domain.ErrInvalidInput):
			return errorJSON(c, fiber.StatusBadRequest, "INVALID_INPUT", "Role must be one of: Admin, Manager, User")
		case errors.Is(err, domain.ErrDuplicateUsername):
			return errorJSON(c, fiber.StatusBadRequest, "DUPLICATE_USERNAME", "Username already exists")
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    out,
	})
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.DataResponse{data=dto.AuthUserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := decodeBody(c, &in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			return errorJSON(c, fiber.StatusBadRequest, "MISSING_FIELD", "Please provide username and password")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return errorJSON(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
		case errors.Is(err, domain.ErrAccountInactive):
			return errorJSON(c, fiber.StatusUnauthorized, "ACCOUNT_INACTIVE", "Account is inactive")
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Message: "Login successful", Data: out})
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DataResponse{data=dto.ProfileResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Changes full name, location and password; empty fields are left unchanged.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateProfileRequest  true  "fullName, location, password"
// @Success      200   {object}  dto.DataResponse{data=dto.AuthUserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/updateprofile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := decodeBody(c, &in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordTooLong):
			return errorJSON(c, fiber.StatusBadRequest, "INVALID_INPUT", "Password must be at most 72 bytes")
		case errors.Is(err, domain.ErrNotFound):
			return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Message: "Profile updated successfully", Data: out})
}

// AdminResetPassword godoc
// @Summary      Reset a user's password
// @Description  No session required. When a reset key is configured it must be sent in X-Admin-Reset-Key.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Admin-Reset-Key  header  string  false  "admin reset key"
// @Param        body  body  dto.AdminResetPasswordRequest  true  "username, newPassword"
// @Success      200   {object}  dto.DataResponse{data=dto.ResetPasswordResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/admin-reset-password [post]
func (h *AuthHandler) AdminResetPassword(c *fiber.Ctx) error {
	var in dto.AdminResetPasswordRequest
	if err := decodeBody(c, &in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AdminResetPassword(c.UserContext(), in, c.Get(HeaderAdminResetKey))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing reset key")
		case errors.Is(err, domain.ErrMissingField):
			return errorJSON(c, fiber.StatusBadRequest, "MISSING_FIELD", "Please provide username and newPassword")
		case errors.Is(err, domain.ErrPasswordTooLong):
			return errorJSON(c, fiber.StatusBadRequest, "INVALID_INPUT", "Password must be at most 72 bytes")
		case errors.Is(err, domain.ErrNotFound):
			return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{
		Success: true,
		Message: "Password reset successfully for user: " + out.Username,
		Data:    out,
	})
}
