package repository

import (
	"context"

	"github.com/jhoicas/Quotation-api/internal/domain/entity"
)

// QuotationFilter narrows List by exact match. Empty fields are ignored.
type QuotationFilter struct {
	Segment   string
	CreatedBy string
}

// QuotationRepository is the persistence port for quotations, keyed by the business id.
// Lookups return (nil, nil) when nothing matches.
type QuotationRepository interface {
	// Create returns domain.ErrDuplicateID when the id is taken.
	Create(ctx context.Context, q *entity.Quotation) error
	GetByQuotationID(ctx context.Context, id string) (*entity.Quotation, error)
	// GetForUpdate is GetByQuotationID plus a row lock when running inside a transaction.
	GetForUpdate(ctx context.Context, id string) (*entity.Quotation, error)
	// List returns the matching quotations, newest created first.
	List(ctx context.Context, filter QuotationFilter) ([]*entity.Quotation, error)
	// Update replaces the document stored under currentID; q.ID may differ (rename).
	// Returns domain.ErrDuplicateID when the new id is taken.
	Update(ctx context.Context, currentID string, q *entity.Quotation) error
	// Delete reports whether a quotation was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
