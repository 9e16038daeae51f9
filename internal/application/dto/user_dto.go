package dto

import "time"

// RegisterRequest body of POST /api/auth/register. Role defaults to "User".
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"`
	Location string `json:"location,omitempty"`
}

// LoginRequest body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest body of PUT /api/auth/updateprofile. Empty fields are left unchanged.
type UpdateProfileRequest struct {
	FullName string `json:"fullName,omitempty"`
	Location string `json:"location,omitempty"`
	Password string `json:"password,omitempty"`
}

// AdminResetPasswordRequest body of POST /api/auth/admin-reset-password.
type AdminResetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

// AuthUserResponse user plus a fresh session token (register, login, profile update).
type AuthUserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Token    string `json:"token"`
}

// ProfileResponse output of GET /api/auth/me. Never carries the password hash.
type ProfileResponse struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	Location  string    `json:"location"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResetPasswordResponse output of the admin password reset.
type ResetPasswordResponse struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}
