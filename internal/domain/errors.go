package domain

import "errors"

// Domain errors (no external dependencies). The HTTP layer maps them to status codes.
var (
	ErrMissingField       = errors.New("required field missing")
	ErrMissingValue       = errors.New("value is required")
	ErrInvalidType        = errors.New("invalid suggestion type")
	ErrInvalidShape       = errors.New("invalid value shape")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEntry     = errors.New("suggestion already exists")
	ErrDuplicateID        = errors.New("quotation id already exists")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("not authorized")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)
