package entity

import "time"

// Role is the staff role of a User.
type Role string

// Valid roles.
const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleUser    Role = "User"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// User is a staff member allowed to log in.
type User struct {
	ID           string
	Username     string // always lower case
	PasswordHash string // bcrypt, never plaintext
	FullName     string
	Role         Role
	Location     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
