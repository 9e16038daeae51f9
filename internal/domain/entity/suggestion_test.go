package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Quotation-api/internal/domain"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
)

func TestParseSuggestionType(t *testing.T) {
	for _, want := range entity.SuggestionTypes {
		got, err := entity.ParseSuggestionType(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"", "Customer", "airport", "pod "} {
		_, err := entity.ParseSuggestionType(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidType, bad)
	}
}

func TestSuggestionType_IsComplex(t *testing.T) {
	assert.True(t, entity.SuggestionCustomer.IsComplex())
	assert.True(t, entity.SuggestionConsignee.IsComplex())
	for _, st := range []entity.SuggestionType{
		entity.SuggestionPOD, entity.SuggestionPOL, entity.SuggestionPOR,
		entity.SuggestionAirportDeparture, entity.SuggestionAirportDestination,
	} {
		assert.False(t, st.IsComplex(), st)
	}
}

func TestValidSuggestionTypes(t *testing.T) {
	assert.Equal(t,
		"customer, consignee, pod, pol, por, airportDeparture, airportDestination",
		entity.ValidSuggestionTypes())
}

func TestSuggestionPayloadAccessors(t *testing.T) {
	party := &entity.Suggestion{Type: entity.SuggestionCustomer, Payload: entity.PartyPayload{Name: "Acme", Address: "Pune"}}
	assert.Equal(t, "Acme", party.Payload.Key())
	assert.Equal(t, "Pune", party.Party().Address)
	assert.Empty(t, party.Place().Value)

	place := &entity.Suggestion{Type: entity.SuggestionPOD, Payload: entity.PlacePayload{Value: "Shanghai"}}
	assert.Equal(t, "Shanghai", place.Payload.Key())
	assert.Empty(t, place.Party().Name)
}
