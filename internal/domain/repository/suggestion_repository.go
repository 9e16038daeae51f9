package repository

import (
	"context"

	"github.com/jhoicas/Quotation-api/internal/domain/entity"
)

// SuggestionRepository is the persistence port for the autocomplete lists.
type SuggestionRepository interface {
	// Create returns domain.ErrDuplicateEntry when (type, key) already exists.
	Create(ctx context.Context, s *entity.Suggestion) error
	// FindByKey looks up the entry whose name (complex) or value (simple) equals key.
	// Returns (nil, nil) when nothing matches.
	FindByKey(ctx context.Context, t entity.SuggestionType, key string) (*entity.Suggestion, error)
	// List returns every entry, newest first.
	List(ctx context.Context) ([]*entity.Suggestion, error)
	// ListByType returns the entries of one type, newest first.
	ListByType(ctx context.Context, t entity.SuggestionType) ([]*entity.Suggestion, error)
	// DeleteByTypeAndID reports whether an entry matching both was removed.
	DeleteByTypeAndID(ctx context.Context, t entity.SuggestionType, id string) (bool, error)
}
