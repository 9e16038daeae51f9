package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
)

// ErrWorkbookUnsupported is returned when the registry was built without a codec.
var ErrWorkbookUnsupported = errors.New("workbook codec not configured")

// WorkbookRow is one spreadsheet line: Type | Value | Name | Address.
type WorkbookRow struct {
	Type    string
	Value   string
	Name    string
	Address string
}

// WorkbookCodec reads and writes suggestion spreadsheets.
type WorkbookCodec interface {
	Decode(r io.Reader) ([]WorkbookRow, error)
	Encode(rows []WorkbookRow) ([]byte, error)
}

// ImportWorkbook feeds every row of the spreadsheet through CreateBatch.
func (r *Registry) ImportWorkbook(ctx context.Context, src io.Reader, createdBy string) (*dto.BatchResult, error) {
	if r.codec == nil {
		return nil, ErrWorkbookUnsupported
	}
	rows, err := r.codec.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	items := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		raw, err := json.Marshal(rowToItem(row))
		if err != nil {
			return nil, fmt.Errorf("encode workbook row: %w", err)
		}
		items = append(items, raw)
	}
	return r.CreateBatch(ctx, items, createdBy)
}

// ExportWorkbook writes every entry, newest first, in the import layout.
func (r *Registry) ExportWorkbook(ctx context.Context) ([]byte, error) {
	if r.codec == nil {
		return nil, ErrWorkbookUnsupported
	}
	all, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]WorkbookRow, len(all))
	for i, s := range all {
		party, place := s.Party(), s.Place()
		rows[i] = WorkbookRow{
			Type:    string(s.Type),
			Value:   place.Value,
			Name:    party.Name,
			Address: party.Address,
		}
	}
	return r.codec.Encode(rows)
}

type workbookItem struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type partyValue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// rowToItem builds the batch item for a row. Complex types read Name/Address,
// the rest read Value; an unknown type keeps Value so the batch reports it.
func rowToItem(row WorkbookRow) workbookItem {
	if entity.SuggestionType(row.Type).IsComplex() {
		if row.Name == "" {
			return workbookItem{Type: row.Type, Value: ""}
		}
		return workbookItem{Type: row.Type, Value: partyValue{Name: row.Name, Address: row.Address}}
	}
	return workbookItem{Type: row.Type, Value: row.Value}
}
