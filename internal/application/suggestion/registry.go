package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
)

// Batch failure reasons reported per item.
const (
	ReasonInvalidType      = "Invalid type"
	ReasonValueRequired    = "Value is required"
	ReasonInvalidPartyForm = "Invalid value format for customer/consignee"
	ReasonValueNotString   = "Value must be a string"
	ReasonDuplicate        = "Duplicate entry"
)

// Registry manages the autocomplete lists.
type Registry struct {
	repo  repository.SuggestionRepository
	codec WorkbookCodec
	now   func() time.Time
}

// NewRegistry builds the registry. codec may be nil when workbook import/export is not served.
func NewRegistry(repo repository.SuggestionRepository, codec WorkbookCodec) *Registry {
	return &Registry{repo: repo, codec: codec, now: time.Now}
}

// ListAll groups every entry by type. All seven types are present, newest entries first.
func (r *Registry) ListAll(ctx context.Context) (map[string][]any, error) {
	all, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]any, len(entity.SuggestionTypes))
	for _, t := range entity.SuggestionTypes {
		grouped[string(t)] = []any{}
	}
	for _, s := range all {
		key := string(s.Type)
		if _, ok := grouped[key]; ok {
			grouped[key] = append(grouped[key], toView(s))
		}
	}
	return grouped, nil
}

// ListByType returns the entries of one type, newest first.
func (r *Registry) ListByType(ctx context.Context, typ string) ([]any, error) {
	t, err := entity.ParseSuggestionType(typ)
	if err != nil {
		return nil, err
	}
	list, err := r.repo.ListByType(ctx, t)
	if err != nil {
		return nil, err
	}
	views := make([]any, len(list))
	for i, s := range list {
		views[i] = toView(s)
	}
	return views, nil
}

// Create validates and stores one entry.
func (r *Registry) Create(ctx context.Context, typ string, value json.RawMessage, createdBy string) (*dto.SuggestionResponse, error) {
	t, err := entity.ParseSuggestionType(typ)
	if err != nil {
		return nil, err
	}
	return r.create(ctx, t, value, createdBy)
}

func (r *Registry) create(ctx context.Context, t entity.SuggestionType, value json.RawMessage, createdBy string) (*dto.SuggestionResponse, error) {
	payload, err := decodePayload(t, value)
	if err != nil {
		return nil, err
	}
	existing, err := r.repo.FindByKey(ctx, t, payload.Key())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEntry
	}
	now := r.now()
	s := &entity.Suggestion{
		ID:        uuid.New().String(),
		Type:      t,
		Payload:   payload,
		CreatedBy: strings.TrimSpace(createdBy),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := toResponse(s)
	return &out, nil
}

// CreateBatch stores items one by one in input order. A failing item is
// recorded with its reason and never stops the batch.
func (r *Registry) CreateBatch(ctx context.Context, items []json.RawMessage, createdBy string) (*dto.BatchResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrMissingField
	}
	res := &dto.BatchResult{Total: len(items), SavedItems: []dto.SuggestionResponse{}}
	for _, raw := range items {
		saved, err := r.createItem(ctx, raw, createdBy)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, dto.BatchError{Item: raw, Error: err.Error()})
			continue
		}
		res.Saved++
		res.SavedItems = append(res.SavedItems, *saved)
	}
	return res, nil
}

// batchError carries the per-item reason shown to the caller.
type batchError struct{ reason string }

func (e batchError) Error() string { return e.reason }

func (r *Registry) createItem(ctx context.Context, raw json.RawMessage, createdBy string) (*dto.SuggestionResponse, error) {
	var item dto.BatchItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, batchError{ReasonInvalidType}
	}
	t, err := decodeType(item.Type)
	if err != nil {
		return nil, batchError{ReasonInvalidType}
	}
	saved, err := r.create(ctx, t, item.Value, createdBy)
	if err == nil {
		return saved, nil
	}
	var shape *ShapeError
	switch {
	case errors.Is(err, domain.ErrMissingValue):
		return nil, batchError{ReasonValueRequired}
	case errors.As(err, &shape) && shape.Type.IsComplex():
		return nil, batchError{ReasonInvalidPartyForm}
	case errors.Is(err, domain.ErrInvalidShape):
		return nil, batchError{ReasonValueNotString}
	case errors.Is(err, domain.ErrDuplicateEntry):
		return nil, batchError{ReasonDuplicate}
	}
	return nil, err
}

// Delete removes the entry matching both type and id.
func (r *Registry) Delete(ctx context.Context, typ, id string) error {
	t, err := entity.ParseSuggestionType(typ)
	if err != nil {
		return err
	}
	ok, err := r.repo.DeleteByTypeAndID(ctx, t, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
