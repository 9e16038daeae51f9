package auth

import (
	"context"
	"errors"

	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/internal/domain"
)

// DefaultSeedUsers are the accounts created by cmd/seed_users.
var DefaultSeedUsers = []dto.RegisterRequest{
	{Username: "vikram", Password: "123", FullName: "Vikram", Role: "Admin", Location: "Delhi"},
	{Username: "ravi", Password: "123", FullName: "Ravi", Role: "Manager", Location: "Mumbai"},
}

// SeedResult reports what Seed did per username.
type SeedResult struct {
	Username string
	Created  bool
}

// Seed registers every user that does not exist yet. Running it twice is a no-op.
func (uc *AuthUseCase) Seed(ctx context.Context, users []dto.RegisterRequest) ([]SeedResult, error) {
	results := make([]SeedResult, 0, len(users))
	for _, u := range users {
		_, err := uc.Register(ctx, u)
		switch {
		case err == nil:
			results = append(results, SeedResult{Username: NormalizeUsername(u.Username), Created: true})
		case errors.Is(err, domain.ErrDuplicateUsername):
			results = append(results, SeedResult{Username: NormalizeUsername(u.Username)})
		default:
			return results, err
		}
	}
	return results, nil
}
