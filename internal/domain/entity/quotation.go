package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Quotation-api/internal/domain"
)

// DefaultChargeCurrency is applied to charge lines sent without a currency.
const DefaultChargeCurrency = "USD"

// FlexString is a display string that also accepts JSON numbers and booleans,
// storing their literal text. Amounts and weights arrive either way from clients.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(fmt.Sprint(v))
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		*s = FlexString(n.String())
	}
	return nil
}

// FlexDate is a timestamp that also accepts date-only strings, timestamps
// without a zone (read as UTC) and epoch milliseconds. An empty string or null
// leaves it zero.
type FlexDate struct {
	time.Time
}

var flexDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *FlexDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	d.Time = time.Time{}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] != '"' {
		var ms float64
		if err := json.Unmarshal(b, &ms); err != nil {
			return fmt.Errorf("expected date string or epoch milliseconds, got %s", b)
		}
		d.Time = time.UnixMilli(int64(ms)).UTC()
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range flexDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			d.Time = t
			return nil
		}
	}
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		d.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	return fmt.Errorf("invalid date %q", v)
}

// MarshalJSON implements json.Marshaler.
func (d FlexDate) MarshalJSON() ([]byte, error) {
	return d.Time.MarshalJSON()
}

// ChargeID numbers a charge line. Numeric strings are accepted.
type ChargeID float64

// UnmarshalJSON implements json.Unmarshaler.
func (c *ChargeID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("charge id %q is not a number", v)
		}
		*c = ChargeID(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*c = ChargeID(f)
	return nil
}

// ChargeLine is one row of the origin, freight or destination charges.
// Amount is display text; no arithmetic is done on it server side.
type ChargeLine struct {
	ID       *ChargeID  `json:"id"`
	Charges  string     `json:"charges"`
	Currency string     `json:"currency"`
	Amount   FlexString `json:"amount"`
	Unit     string     `json:"unit"`
}

// Quotation is a freight quote addressed by its business ID (e.g. "SELCL-091225-925").
// InternalID is the storage identifier. Attributes outside the typed schema are
// kept in Extra and round-trip verbatim.
type Quotation struct {
	InternalID string `json:"_id,omitempty"`

	ID                     string `json:"id"`
	QuotationSegment       string `json:"quotationSegment"`
	QuotationSegmentPrefix string `json:"quotationSegmentPrefix"`

	CreatedBy         string     `json:"createdBy"`
	CreatedByLocation string     `json:"createdByLocation"`
	CreatedByRole     string     `json:"createdByRole"`
	CreatedDate       *FlexDate  `json:"createdDate,omitempty"`

	CustomerName  string `json:"customerName"`
	ConsigneeName string `json:"consigneeName"`

	// Sea freight
	POL              string `json:"pol"`
	POD              string `json:"pod"`
	POR              string `json:"por"`
	FinalDestination string `json:"finalDestination"`
	ShippingLine     string `json:"shippingLine"`
	Equipment        string `json:"equipment"`
	Size             string `json:"size"`

	// Air freight
	AirLines             string     `json:"airLines"`
	AirPortOfDeparture   string     `json:"airPortOfDeparture"`
	AirPortOfDestination string     `json:"airPortOfDestination"`
	ChargeableWeight     FlexString `json:"chargeableWeight"`
	VolumeWeight         FlexString `json:"volumeWeight"`

	// Cargo
	Commodity       string     `json:"commodity"`
	CargoSize       string     `json:"cargoSize"`
	CBM             FlexString `json:"cbm"`
	Weight          FlexString `json:"weight"`
	NumberOfPackets FlexString `json:"numberOfPackets"`

	// Shipment
	Terms          string `json:"terms"`
	ETD            string `json:"etd"`
	ETA            string `json:"eta"`
	TransitTime    string `json:"transitTime"`
	ServiceJobType string `json:"serviceJobType"`

	OriginCharges      []ChargeLine `json:"originCharges"`
	FreightCharges     []ChargeLine `json:"freightCharges"`
	DestinationCharges []ChargeLine `json:"destinationCharges"`

	Remarks            string   `json:"remarks"`
	PDFFileName        string   `json:"pdfFileName"`
	TermsAndConditions []string `json:"termsAndConditions"`
	RailRamps          []string `json:"railRamps"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

// quotationDoc has Quotation's fields without its JSON methods.
type quotationDoc Quotation

var knownQuotationKeys = jsonKeys(reflect.TypeOf(quotationDoc{}))

// storage-owned keys a client cannot overwrite through a patch
var metadataKeys = map[string]bool{"_id": true, "createdAt": true, "updatedAt": true}

func jsonKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}

// MarshalJSON writes the typed fields followed by the extension attributes.
func (q Quotation) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(quotationDoc(q))
	if err != nil || len(q.Extra) == 0 {
		return b, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	for k, v := range q.Extra {
		if !knownQuotationKeys[k] {
			doc[k] = v
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads the typed fields and keeps every unknown attribute in Extra.
func (q *Quotation) UnmarshalJSON(data []byte) error {
	var doc quotationDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k := range all {
		if knownQuotationKeys[k] {
			delete(all, k)
		}
	}
	if len(all) > 0 {
		doc.Extra = all
	}
	*q = Quotation(doc)
	return nil
}

// Normalize trims the key fields and applies the schema defaults.
func (q *Quotation) Normalize(now time.Time) {
	q.ID = strings.TrimSpace(q.ID)
	q.QuotationSegment = strings.TrimSpace(q.QuotationSegment)
	if q.CreatedDate == nil || q.CreatedDate.IsZero() {
		q.CreatedDate = &FlexDate{Time: now}
	}
	for _, lines := range [][]ChargeLine{q.OriginCharges, q.FreightCharges, q.DestinationCharges} {
		for i := range lines {
			if lines[i].Currency == "" {
				lines[i].Currency = DefaultChargeCurrency
			}
		}
	}
	if q.OriginCharges == nil {
		q.OriginCharges = []ChargeLine{}
	}
	if q.FreightCharges == nil {
		q.FreightCharges = []ChargeLine{}
	}
	if q.DestinationCharges == nil {
		q.DestinationCharges = []ChargeLine{}
	}
	if q.TermsAndConditions == nil {
		q.TermsAndConditions = []string{}
	}
	if q.RailRamps == nil {
		q.RailRamps = []string{}
	}
}

// Validate checks the required fields. Call after Normalize.
func (q *Quotation) Validate() error {
	if q.ID == "" || q.QuotationSegment == "" {
		return domain.ErrMissingField
	}
	groups := map[string][]ChargeLine{
		"originCharges":      q.OriginCharges,
		"freightCharges":     q.FreightCharges,
		"destinationCharges": q.DestinationCharges,
	}
	for name, lines := range groups {
		for i, l := range lines {
			if l.ID == nil {
				return fmt.Errorf("%w: %s[%d].id is required", domain.ErrInvalidInput, name, i)
			}
		}
	}
	return nil
}

// Merge overlays the top-level attributes of patch on q and returns the result.
// Storage metadata (_id, createdAt, updatedAt) is kept from q.
func (q *Quotation) Merge(patch map[string]json.RawMessage) (*Quotation, error) {
	current, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode quotation: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(current, &doc); err != nil {
		return nil, fmt.Errorf("decode quotation: %w", err)
	}
	for k, v := range patch {
		if metadataKeys[k] {
			continue
		}
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode merged quotation: %w", err)
	}
	var out Quotation
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out.InternalID = q.InternalID
	out.CreatedAt = q.CreatedAt
	out.UpdatedAt = q.UpdatedAt
	return &out, nil
}
