package quotation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
)

// ErrRendererUnavailable is returned by RenderPDF when no renderer was configured.
var ErrRendererUnavailable = errors.New("pdf renderer not configured")

// Ledger stores quotations addressed by their business id.
type Ledger struct {
	repo     repository.QuotationRepository
	tx       TxRunner
	renderer Renderer
	now      func() time.Time
}

// NewLedger builds the ledger. renderer may be nil.
func NewLedger(repo repository.QuotationRepository, tx TxRunner, renderer Renderer) *Ledger {
	return &Ledger{repo: repo, tx: tx, renderer: renderer, now: time.Now}
}

// Create validates q, applies the defaults and stores it.
func (l *Ledger) Create(ctx context.Context, q *entity.Quotation) (*entity.Quotation, error) {
	now := l.now()
	q.Normalize(now)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	existing, err := l.repo.GetByQuotationID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateID
	}
	q.InternalID = uuid.New().String()
	q.CreatedAt = now
	q.UpdatedAt = now
	if err := l.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// GetByID returns the quotation or domain.ErrNotFound.
func (l *Ledger) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	q, err := l.repo.GetByQuotationID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

// List returns every quotation, newest created first.
func (l *Ledger) List(ctx context.Context) ([]*entity.Quotation, error) {
	return l.list(ctx, repository.QuotationFilter{})
}

// ListBySegment returns the quotations of one segment (exact match).
func (l *Ledger) ListBySegment(ctx context.Context, segment string) ([]*entity.Quotation, error) {
	return l.list(ctx, repository.QuotationFilter{Segment: segment})
}

// ListByCreator returns the quotations created by username (exact match).
func (l *Ledger) ListByCreator(ctx context.Context, username string) ([]*entity.Quotation, error) {
	return l.list(ctx, repository.QuotationFilter{CreatedBy: username})
}

func (l *Ledger) list(ctx context.Context, f repository.QuotationFilter) ([]*entity.Quotation, error) {
	list, err := l.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Quotation{}
	}
	return list, nil
}

// Update merges patch over the stored quotation inside a transaction that
// holds the row, re-validates and saves. The patch may rename the id.
func (l *Ledger) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (*entity.Quotation, error) {
	var updated *entity.Quotation
	err := l.tx.Run(ctx, func(quotations repository.QuotationRepository) error {
		current, err := quotations.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		merged, err := current.Merge(patch)
		if err != nil {
			return err
		}
		now := l.now()
		merged.Normalize(now)
		if err := merged.Validate(); err != nil {
			return err
		}
		if merged.ID != current.ID {
			taken, err := quotations.GetByQuotationID(ctx, merged.ID)
			if err != nil {
				return err
			}
			if taken != nil {
				return domain.ErrDuplicateID
			}
		}
		merged.UpdatedAt = now
		if err := quotations.Update(ctx, current.ID, merged); err != nil {
			return err
		}
		updated = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the quotation or returns domain.ErrNotFound.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	ok, err := l.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// RenderPDF renders the quotation and returns the document with its file name.
func (l *Ledger) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	if l.renderer == nil {
		return nil, "", ErrRendererUnavailable
	}
	q, err := l.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := l.renderer.Render(q)
	if err != nil {
		return nil, "", fmt.Errorf("render quotation %s: %w", id, err)
	}
	return doc, FileName(q), nil
}

// FileName is pdfFileName when set, else quotation_<id>.pdf.
func FileName(q *entity.Quotation) string {
	if q.PDFFileName != "" {
		return q.PDFFileName
	}
	return fmt.Sprintf("quotation_%s.pdf", q.ID)
}
