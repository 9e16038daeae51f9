package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implements repository.QuotationRepository on PostgreSQL.
// The whole record, extension attributes included, lives in the JSONB document
// column; id, segment and creator are copied into columns for lookups.
type QuotationRepo struct {
	db Querier
}

// NewQuotationRepository builds the quotation persistence adapter.
func NewQuotationRepository(db Querier) *QuotationRepo {
	return &QuotationRepo{db: db}
}

// Create inserts the quotation.
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode quotation: %w", err)
	}
	query := `
		INSERT INTO quotations (id, quotation_id, quotation_segment, created_by, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.Exec(ctx, query,
		q.InternalID, q.ID, q.QuotationSegment, q.CreatedBy, doc, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// GetByQuotationID returns the quotation or nil.
func (r *QuotationRepo) GetByQuotationID(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.getOne(ctx, `WHERE quotation_id = $1`, id)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *QuotationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.getOne(ctx, `WHERE quotation_id = $1 FOR UPDATE`, id)
}

// List returns the quotations matching filter, newest created first.
func (r *QuotationRepo) List(ctx context.Context, filter repository.QuotationFilter) ([]*entity.Quotation, error) {
	var (
		where []string
		args  []any
	)
	if filter.Segment != "" {
		args = append(args, filter.Segment)
		where = append(where, fmt.Sprintf("quotation_segment = $%d", len(args)))
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		where = append(where, fmt.Sprintf("created_by = $%d", len(args)))
	}
	query := `SELECT id, document, created_at, updated_at FROM quotations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Update replaces the document stored under currentID.
func (r *QuotationRepo) Update(ctx context.Context, currentID string, q *entity.Quotation) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode quotation: %w", err)
	}
	query := `
		UPDATE quotations
		SET quotation_id = $2, quotation_segment = $3, created_by = $4, document = $5, updated_at = $6
		WHERE quotation_id = $1`
	_, err = r.db.Exec(ctx, query, currentID, q.ID, q.QuotationSegment, q.CreatedBy, doc, q.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("update quotation: %w", err)
	}
	return nil
}

// Delete removes the quotation with the given business id.
func (r *QuotationRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM quotations WHERE quotation_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete quotation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *QuotationRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Quotation, error) {
	rows, err := r.db.Query(ctx, `SELECT id, document, created_at, updated_at FROM quotations `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanQuotation(rows)
}

// scanQuotation decodes the document; the columns are authoritative for storage metadata.
func scanQuotation(rows pgx.Rows) (*entity.Quotation, error) {
	var (
		q                    entity.Quotation
		internalID           string
		doc                  []byte
		createdAt, updatedAt time.Time
	)
	if err := rows.Scan(&internalID, &doc, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan quotation: %w", err)
	}
	if err := json.Unmarshal(doc, &q); err != nil {
		return nil, fmt.Errorf("decode quotation %s: %w", internalID, err)
	}
	q.InternalID = internalID
	q.CreatedAt = createdAt
	q.UpdatedAt = updatedAt
	return &q, nil
}
