package suggestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
)

// ShapeError reports a value whose form does not match its suggestion type.
// It matches domain.ErrInvalidShape.
type ShapeError struct {
	Type entity.SuggestionType
}

func (e *ShapeError) Error() string {
	if e.Type.IsComplex() {
		return fmt.Sprintf("%s value must be an object with name and address", e.Type)
	}
	return fmt.Sprintf("%s value must be a string", e.Type)
}

func (e *ShapeError) Unwrap() error { return domain.ErrInvalidShape }

// decodePayload turns the raw "value" of a request into the payload of type t.
func decodePayload(t entity.SuggestionType, raw json.RawMessage) (entity.SuggestionPayload, error) {
	if isFalsy(raw) {
		return nil, domain.ErrMissingValue
	}
	if t.IsComplex() {
		p, ok := decodeParty(raw)
		if !ok {
			return nil, &ShapeError{Type: t}
		}
		return p, nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &ShapeError{Type: t}
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, domain.ErrMissingValue
	}
	return entity.PlacePayload{Value: v}, nil
}

func decodeParty(raw json.RawMessage) (entity.PartyPayload, bool) {
	if b := bytes.TrimSpace(raw); len(b) == 0 || b[0] != '{' {
		return entity.PartyPayload{}, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return entity.PartyPayload{}, false
	}
	name, ok := optionalString(obj["name"])
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return entity.PartyPayload{}, false
	}
	address, ok := optionalString(obj["address"])
	if !ok {
		return entity.PartyPayload{}, false
	}
	return entity.PartyPayload{Name: name, Address: strings.TrimSpace(address)}, true
}

// optionalString accepts a JSON string, null or nothing; anything else is not ok.
func optionalString(raw json.RawMessage) (string, bool) {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 || string(b) == "null" {
		return "", true
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return "", false
	}
	return s, true
}

// isFalsy reports an absent value or one of null, false, 0 and "".
func isFalsy(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	switch string(b) {
	case "", "null", "false", `""`:
		return true
	}
	if b[0] == '-' || (b[0] >= '0' && b[0] <= '9') {
		f, err := strconv.ParseFloat(string(b), 64)
		return err == nil && f == 0
	}
	return false
}

// decodeType reads a JSON string holding a suggestion type.
func decodeType(raw json.RawMessage) (entity.SuggestionType, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", domain.ErrInvalidType
	}
	return entity.ParseSuggestionType(s)
}
