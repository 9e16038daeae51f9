package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Quotation-api/internal/domain"
)

// SuggestionType is the closed set of autocomplete lists.
type SuggestionType string

// Suggestion types. Customer and consignee are "complex" (name + address);
// the port and airport lists are "simple" (a single value).
const (
	SuggestionCustomer           SuggestionType = "customer"
	SuggestionConsignee          SuggestionType = "consignee"
	SuggestionPOD                SuggestionType = "pod"
	SuggestionPOL                SuggestionType = "pol"
	SuggestionPOR                SuggestionType = "por"
	SuggestionAirportDeparture   SuggestionType = "airportDeparture"
	SuggestionAirportDestination SuggestionType = "airportDestination"
)

// SuggestionTypes lists every type in its canonical order.
var SuggestionTypes = []SuggestionType{
	SuggestionCustomer,
	SuggestionConsignee,
	SuggestionPOD,
	SuggestionPOL,
	SuggestionPOR,
	SuggestionAirportDeparture,
	SuggestionAirportDestination,
}

// ParseSuggestionType returns domain.ErrInvalidType for anything outside SuggestionTypes.
// Matching is exact (case-sensitive).
func ParseSuggestionType(s string) (SuggestionType, error) {
	for _, t := range SuggestionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidType, s)
}

// IsComplex reports whether entries of this type carry a PartyPayload.
func (t SuggestionType) IsComplex() bool {
	return t == SuggestionCustomer || t == SuggestionConsignee
}

// ValidSuggestionTypes renders the valid set, comma separated.
func ValidSuggestionTypes() string {
	names := make([]string, len(SuggestionTypes))
	for i, t := range SuggestionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// SuggestionPayload is the type-dependent body of a Suggestion: PartyPayload or PlacePayload.
type SuggestionPayload interface {
	// Key is the value uniqueness is enforced on within a type.
	Key() string
	isSuggestionPayload()
}

// PartyPayload is the payload of customer and consignee entries.
type PartyPayload struct {
	Name    string
	Address string
}

func (p PartyPayload) Key() string        { return p.Name }
func (PartyPayload) isSuggestionPayload() {}

// PlacePayload is the payload of port and airport entries.
type PlacePayload struct {
	Value string
}

func (p PlacePayload) Key() string        { return p.Value }
func (PlacePayload) isSuggestionPayload() {}

// Suggestion is one immutable autocomplete entry.
type Suggestion struct {
	ID        string
	Type      SuggestionType
	Payload   SuggestionPayload
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Party returns the payload as a PartyPayload (zero value for simple types).
func (s *Suggestion) Party() PartyPayload {
	p, _ := s.Payload.(PartyPayload)
	return p
}

// Place returns the payload as a PlacePayload (zero value for complex types).
func (s *Suggestion) Place() PlacePayload {
	p, _ := s.Payload.(PlacePayload)
	return p
}
