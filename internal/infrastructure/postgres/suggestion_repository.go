package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
)

var _ repository.SuggestionRepository = (*SuggestionRepo)(nil)

const suggestionColumns = `id, type, value, name, address, created_by, created_at, updated_at`

// SuggestionRepo implements repository.SuggestionRepository on PostgreSQL.
// Complex entries use name/address, simple entries use value; the unused columns stay ''.
type SuggestionRepo struct {
	db Querier
}

// NewSuggestionRepository builds the suggestion persistence adapter.
func NewSuggestionRepository(db Querier) *SuggestionRepo {
	return &SuggestionRepo{db: db}
}

// Create inserts the entry. The partial unique indexes reject duplicates.
func (r *SuggestionRepo) Create(ctx context.Context, s *entity.Suggestion) error {
	party, place := s.Party(), s.Place()
	query := `
		INSERT INTO custom_suggestions (` + suggestionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		s.ID, string(s.Type), place.Value, party.Name, party.Address, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("insert suggestion: %w", err)
	}
	return nil
}

// FindByKey looks up by name for complex types and by value for simple ones.
func (r *SuggestionRepo) FindByKey(ctx context.Context, t entity.SuggestionType, key string) (*entity.Suggestion, error) {
	column := "value"
	if t.IsComplex() {
		column = "name"
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+suggestionColumns+` FROM custom_suggestions WHERE type = $1 AND `+column+` = $2 LIMIT 1`,
		string(t), key)
	if err != nil {
		return nil, fmt.Errorf("find suggestion: %w", err)
	}
	list, err := collectSuggestions(rows)
	if err != nil {
		return nil, fmt.Errorf("find suggestion: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// List returns every entry, newest first.
func (r *SuggestionRepo) List(ctx context.Context) ([]*entity.Suggestion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+suggestionColumns+` FROM custom_suggestions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	return collectSuggestions(rows)
}

// ListByType returns the entries of one type, newest first.
func (r *SuggestionRepo) ListByType(ctx context.Context, t entity.SuggestionType) ([]*entity.Suggestion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+suggestionColumns+` FROM custom_suggestions WHERE type = $1 ORDER BY created_at DESC, id`,
		string(t))
	if err != nil {
		return nil, fmt.Errorf("list suggestions by type: %w", err)
	}
	return collectSuggestions(rows)
}

// DeleteByTypeAndID deletes the entry only when both type and id match.
func (r *SuggestionRepo) DeleteByTypeAndID(ctx context.Context, t entity.SuggestionType, id string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM custom_suggestions WHERE id::text = $1 AND type = $2`, id, string(t))
	if err != nil {
		return false, fmt.Errorf("delete suggestion: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func collectSuggestions(rows pgx.Rows) ([]*entity.Suggestion, error) {
	defer rows.Close()
	var list []*entity.Suggestion
	for rows.Next() {
		var (
			s                    entity.Suggestion
			typ                  string
			value, name, address string
		)
		if err := rows.Scan(&s.ID, &typ, &value, &name, &address, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		s.Type = entity.SuggestionType(typ)
		if s.Type.IsComplex() {
			s.Payload = entity.PartyPayload{Name: name, Address: address}
		} else {
			s.Payload = entity.PlacePayload{Value: value}
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
