package suggestion

import (
	"github.com/jhoicas/Quotation-api/internal/application/dto"
	"github.com/jhoicas/Quotation-api/internal/domain/entity"
)

// toView projects an entry to its listing shape.
func toView(s *entity.Suggestion) any {
	if s.Type.IsComplex() {
		p := s.Party()
		return dto.PartyView{ID: s.ID, Name: p.Name, Address: p.Address}
	}
	return dto.PlaceView{ID: s.ID, Value: s.Place().Value}
}

func toResponse(s *entity.Suggestion) dto.SuggestionResponse {
	party, place := s.Party(), s.Place()
	return dto.SuggestionResponse{
		ID:        s.ID,
		Type:      string(s.Type),
		Value:     place.Value,
		Name:      party.Name,
		Address:   party.Address,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
