package repository

import (
	"context"

	"github.com/jhoicas/Quotation-api/internal/domain/entity"
)

// UserRepository is the persistence port for User.
// Lookups return (nil, nil) when nothing matches.
type UserRepository interface {
	// Create returns domain.ErrDuplicateUsername when the username is taken.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByUsername matches case-insensitively.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
