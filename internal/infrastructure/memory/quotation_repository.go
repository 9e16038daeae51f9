package memory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

type quotationRow struct {
	q   *entity.Quotation
	seq int64
}

// QuotationRepo implements repository.QuotationRepository in memory.
type QuotationRepo struct {
	store *Store
}

// NewQuotationRepository builds the repository over store.
func NewQuotationRepository(store *Store) *QuotationRepo {
	return &QuotationRepo{store: store}
}

// Create stores a copy of q under q.ID.
func (r *QuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.quotations[q.ID]; exists {
		return domain.ErrDuplicateID
	}
	r.store.quotations[q.ID] = &quotationRow{q: cloneQuotation(q), seq: r.store.nextSeq()}
	return nil
}

// GetByQuotationID returns a copy of the quotation, or nil.
func (r *QuotationRepo) GetByQuotationID(_ context.Context, id string) (*entity.Quotation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.quotations[id]
	if !ok {
		return nil, nil
	}
	return cloneQuotation(row.q), nil
}

// GetForUpdate is GetByQuotationID; TxRunner serializes the callers.
func (r *QuotationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.GetByQuotationID(ctx, id)
}

// List returns the quotations matching filter, newest created first.
func (r *QuotationRepo) List(_ context.Context, filter repository.QuotationFilter) ([]*entity.Quotation, error) {
	r.store.mu.RLock()
	rows := make([]*quotationRow, 0, len(r.store.quotations))
	for _, row := range r.store.quotations {
		if filter.Segment != "" && row.q.QuotationSegment != filter.Segment {
			continue
		}
		if filter.CreatedBy != "" && row.q.CreatedBy != filter.CreatedBy {
			continue
		}
		rows = append(rows, &quotationRow{q: cloneQuotation(row.q), seq: row.seq})
	}
	r.store.mu.RUnlock()

	newestFirst(rows,
		func(row *quotationRow) time.Time { return row.q.CreatedAt },
		func(row *quotationRow) int64 { return row.seq })

	out := make([]*entity.Quotation, len(rows))
	for i, row := range rows {
		out[i] = row.q
	}
	return out, nil
}

// Update replaces the quotation stored under currentID, re-keying it when q.ID changed.
func (r *QuotationRepo) Update(_ context.Context, currentID string, q *entity.Quotation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.quotations[currentID]
	if !ok {
		return nil
	}
	if q.ID != currentID {
		if _, taken := r.store.quotations[q.ID]; taken {
			return domain.ErrDuplicateID
		}
		delete(r.store.quotations, currentID)
	}
	r.store.quotations[q.ID] = &quotationRow{q: cloneQuotation(q), seq: row.seq}
	return nil
}

// Delete removes the quotation with the given business id.
func (r *QuotationRepo) Delete(_ context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.quotations[id]; !ok {
		return false, nil
	}
	delete(r.store.quotations, id)
	return true, nil
}

func cloneQuotation(q *entity.Quotation) *entity.Quotation {
	c := *q
	if q.CreatedDate != nil {
		d := *q.CreatedDate
		c.CreatedDate = &d
	}
	c.OriginCharges = cloneLines(q.OriginCharges)
	c.FreightCharges = cloneLines(q.FreightCharges)
	c.DestinationCharges = cloneLines(q.DestinationCharges)
	c.TermsAndConditions = append([]string(nil), q.TermsAndConditions...)
	c.RailRamps = append([]string(nil), q.RailRamps...)
	if q.TermsAndConditions != nil && c.TermsAndConditions == nil {
		c.TermsAndConditions = []string{}
	}
	if q.RailRamps != nil && c.RailRamps == nil {
		c.RailRamps = []string{}
	}
	if q.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(q.Extra))
		for k, v := range q.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &c
}

func cloneLines(lines []entity.ChargeLine) []entity.ChargeLine {
	if lines == nil {
		return nil
	}
	out := make([]entity.ChargeLine, len(lines))
	for i, l := range lines {
		if l.ID != nil {
			id := *l.ID
			l.ID = &id
		}
		out[i] = l
	}
	return out
}
