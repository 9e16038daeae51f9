// Package pdf renders quotations as A4 documents.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: QUOTATION + segment  │  Quotation id + date         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTIES: customer / consignee / prepared by                 │
//	│  ROUTING: sea or air legs                                    │
//	│  CARGO + SHIPMENT                                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CHARGES: origin / freight / destination tables             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REMARKS + TERMS AND CONDITIONS                              │
//	│  FOOTER: QR with the quotation id                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Quotation-api/internal/domain/entity"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implements quotation.Renderer with Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator builds the generator. company is printed as the document author.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// Render produces the PDF bytes of q.
func (g *MarotoPDFGenerator) Render(q *entity.Quotation) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Quotation "+q.ID, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(q))
	m.AddRows(sectionRows("ROUTING", routingFields(q))...)
	m.AddRows(sectionRows("CARGO", cargoFields(q))...)
	m.AddRows(sectionRows("SHIPMENT", shipmentFields(q))...)

	for _, group := range []struct {
		title string
		lines []entity.ChargeLine
	}{
		{"ORIGIN CHARGES", q.OriginCharges},
		{"FREIGHT CHARGES", q.FreightCharges},
		{"DESTINATION CHARGES", q.DestinationCharges},
	} {
		if len(group.lines) == 0 {
			continue
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(titleRow(group.title))
		m.AddRows(chargeHeaderRow())
		m.AddRows(chargeRows(group.lines)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(notesRows(q)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(q))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func headerRow(q *entity.Quotation) core.Row {
	date := "-"
	if q.CreatedDate != nil {
		date = q.CreatedDate.Format("02 Jan 2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("QUOTATION", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(q.QuotationSegment, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(q.ID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func partiesRow(q *entity.Quotation) core.Row {
	preparedBy := nonEmpty(q.CreatedBy, "-")
	if q.CreatedByLocation != "" {
		preparedBy += " (" + q.CreatedByLocation + ")"
	}
	party := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(value, "-"), props.Text{Size: 9, Top: 6}),
		)
	}
	return row.New(14).Add(
		party("CUSTOMER", q.CustomerName),
		party("CONSIGNEE", q.ConsigneeName),
		party("PREPARED BY", preparedBy),
	)
}

type field struct {
	label string
	value string
}

func routingFields(q *entity.Quotation) []field {
	return []field{
		{"POR", q.POR}, {"POL", q.POL}, {"POD", q.POD},
		{"Final destination", q.FinalDestination},
		{"Shipping line", q.ShippingLine}, {"Equipment", q.Equipment}, {"Size", q.Size},
		{"Airline", q.AirLines},
		{"Airport of departure", q.AirPortOfDeparture},
		{"Airport of destination", q.AirPortOfDestination},
	}
}

func cargoFields(q *entity.Quotation) []field {
	return []field{
		{"Commodity", q.Commodity}, {"Cargo size", q.CargoSize},
		{"CBM", string(q.CBM)}, {"Weight", string(q.Weight)},
		{"Packages", string(q.NumberOfPackets)},
		{"Chargeable weight", string(q.ChargeableWeight)},
		{"Volume weight", string(q.VolumeWeight)},
	}
}

func shipmentFields(q *entity.Quotation) []field {
	return []field{
		{"Terms", q.Terms}, {"ETD", q.ETD}, {"ETA", q.ETA},
		{"Transit time", q.TransitTime}, {"Service", q.ServiceJobType},
	}
}

// sectionRows prints the non-empty fields, three per row. Nothing when all are empty.
func sectionRows(title string, fields []field) []core.Row {
	var set []field
	for _, f := range fields {
		if strings.TrimSpace(f.value) != "" {
			set = append(set, f)
		}
	}
	if len(set) == 0 {
		return nil
	}
	rows := []core.Row{titleRow(title)}
	for i := 0; i < len(set); i += 3 {
		r := row.New(6)
		for _, f := range set[i:min(i+3, len(set))] {
			r.Add(col.New(4).Add(text.New(f.label+": "+f.value, props.Text{Size: 8, Top: 1})))
		}
		rows = append(rows, r)
	}
	return rows
}

func titleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func chargeHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("#", 1, align.Center),
		h("Charge", 5, align.Left),
		h("Currency", 2, align.Center),
		h("Amount", 2, align.Right),
		h("Unit", 2, align.Left),
	)
}

func chargeRows(lines []entity.ChargeLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		id := ""
		if l.ID != nil {
			id = decimal.NewFromFloat(float64(*l.ID)).String()
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(id, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.Charges, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Currency, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(FormatAmount(string(l.Amount)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.Unit, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return rows
}

func notesRows(q *entity.Quotation) []core.Row {
	var rows []core.Row
	if q.Remarks != "" {
		rows = append(rows, titleRow("REMARKS"),
			row.New(8).Add(col.New(12).Add(text.New(q.Remarks, props.Text{Size: 8, Top: 1}))))
	}
	if len(q.TermsAndConditions) > 0 {
		rows = append(rows, titleRow("TERMS AND CONDITIONS"))
		for i, t := range q.TermsAndConditions {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(fmt.Sprintf("%d. %s", i+1, t), props.Text{Size: 7.5, Color: colorGray, Top: 0.5}),
			)))
		}
	}
	if len(q.RailRamps) > 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Rail ramps: "+strings.Join(q.RailRamps, ", "), props.Text{Size: 8, Top: 1}),
		)))
	}
	return rows
}

func footerRow(q *entity.Quotation) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(q.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Reference: "+q.ID, props.Text{Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3}),
			text.New("Rates are subject to space and equipment availability at the time of booking.",
				props.Text{Size: 7, Top: 14, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatAmount renders numeric amounts with two decimals and thousands
// separators ("1450" → "1,450.00"). Anything that is not a number is returned as is.
func FormatAmount(s string) string {
	trimmed := strings.TrimSpace(s)
	d, err := decimal.NewFromString(strings.ReplaceAll(trimmed, ",", ""))
	if err != nil {
		return s
	}
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	out := groupThousands(intPart) + "." + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// groupThousands inserts commas every three digits: "1000000" → "1,000,000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
