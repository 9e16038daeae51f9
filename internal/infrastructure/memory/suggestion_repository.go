package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
)

var _ repository.SuggestionRepository = (*SuggestionRepo)(nil)

type suggestionRow struct {
	s   entity.Suggestion
	seq int64
}

// SuggestionRepo implements repository.SuggestionRepository in memory.
// Empty keys are exempt from uniqueness, as with the partial indexes in PostgreSQL.
type SuggestionRepo struct {
	store *Store
}

// NewSuggestionRepository builds the repository over store.
func NewSuggestionRepository(store *Store) *SuggestionRepo {
	return &SuggestionRepo{store: store}
}

// Create stores a copy of s.
func (r *SuggestionRepo) Create(_ context.Context, s *entity.Suggestion) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if key := s.Payload.Key(); key != "" {
		for _, row := range r.store.suggestions {
			if row.s.Type == s.Type && row.s.Payload.Key() == key {
				return domain.ErrDuplicateEntry
			}
		}
	}
	r.store.suggestions[s.ID] = &suggestionRow{s: *s, seq: r.store.nextSeq()}
	return nil
}

// FindByKey returns the first entry of type t whose key equals key, or nil.
func (r *SuggestionRepo) FindByKey(_ context.Context, t entity.SuggestionType, key string) (*entity.Suggestion, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, row := range r.store.suggestions {
		if row.s.Type == t && row.s.Payload.Key() == key {
			s := row.s
			return &s, nil
		}
	}
	return nil, nil
}

// List returns every entry, newest first.
func (r *SuggestionRepo) List(_ context.Context) ([]*entity.Suggestion, error) {
	return r.collect(func(*entity.Suggestion) bool { return true }), nil
}

// ListByType returns the entries of type t, newest first.
func (r *SuggestionRepo) ListByType(_ context.Context, t entity.SuggestionType) ([]*entity.Suggestion, error) {
	return r.collect(func(s *entity.Suggestion) bool { return s.Type == t }), nil
}

// DeleteByTypeAndID removes the entry when both type and id match.
func (r *SuggestionRepo) DeleteByTypeAndID(_ context.Context, t entity.SuggestionType, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.suggestions[id]
	if !ok || row.s.Type != t {
		return false, nil
	}
	delete(r.store.suggestions, id)
	return true, nil
}

func (r *SuggestionRepo) collect(keep func(*entity.Suggestion) bool) []*entity.Suggestion {
	r.store.mu.RLock()
	rows := make([]*suggestionRow, 0, len(r.store.suggestions))
	for _, row := range r.store.suggestions {
		if keep(&row.s) {
			cp := *row
			rows = append(rows, &cp)
		}
	}
	r.store.mu.RUnlock()

	newestFirst(rows,
		func(row *suggestionRow) time.Time { return row.s.CreatedAt },
		func(row *suggestionRow) int64 { return row.seq })

	out := make([]*entity.Suggestion, len(rows))
	for i, row := range rows {
		s := row.s
		out[i] = &s
	}
	return out
}
