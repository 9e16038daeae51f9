// Package excel reads and writes suggestion spreadsheets with excelize.
package excel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Quotation-api/internal/application/suggestion"
)

const sheetName = "Suggestions"

// Header is the column layout shared by export and import.
var Header = []string{"Type", "Value", "Name", "Address"}

var columnWidths = []float64{20, 32, 32, 48}

// ErrMissingHeader is returned when the first row lacks the Type column.
var ErrMissingHeader = errors.New("excel: header row with a Type column is required")

var _ suggestion.WorkbookCodec = (*SuggestionWorkbook)(nil)

// SuggestionWorkbook implements suggestion.WorkbookCodec.
type SuggestionWorkbook struct{}

// NewSuggestionWorkbook builds the codec.
func NewSuggestionWorkbook() *SuggestionWorkbook { return &SuggestionWorkbook{} }

// Encode writes rows under a styled, frozen header.
func (SuggestionWorkbook) Encode(rows []suggestion.WorkbookRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, h := range Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("set header style: %w", err)
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, colName, colName, columnWidths[i]); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for i, r := range rows {
		values := []string{r.Type, r.Value, r.Name, r.Address}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads the first sheet. Columns are located by header name
// (case-insensitive); blank rows are skipped.
func (SuggestionWorkbook) Decode(r io.Reader) ([]suggestion.WorkbookRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingHeader
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["type"]; !ok {
		return nil, ErrMissingHeader
	}
	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]suggestion.WorkbookRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		wr := suggestion.WorkbookRow{
			Type:    cell(row, "type"),
			Value:   cell(row, "value"),
			Name:    cell(row, "name"),
			Address: cell(row, "address"),
		}
		if wr == (suggestion.WorkbookRow{}) {
			continue
		}
		out = append(out, wr)
	}
	return out, nil
}
