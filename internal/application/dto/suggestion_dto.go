package dto

import (
	"encoding/json"
	"time"
)

// CreateSuggestionRequest body of POST /api/custom-suggestions.
// Value stays raw: its expected shape depends on Type.
type CreateSuggestionRequest struct {
	Type      string          `json:"type"`
	Value     json.RawMessage `json:"value"`
	CreatedBy string          `json:"createdBy,omitempty"`
}

// BatchSuggestionRequest body of POST /api/custom-suggestions/batch.
// Items stay raw so failures can echo them back unchanged.
type BatchSuggestionRequest struct {
	Suggestions []json.RawMessage `json:"suggestions"`
	CreatedBy   string            `json:"createdBy,omitempty"`
}

// BatchItem is one element of the batch as the caller sent it.
type BatchItem struct {
	Type  json.RawMessage `json:"type"`
	Value json.RawMessage `json:"value"`
}

// PartyView listing projection of customer and consignee entries.
type PartyView struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// PlaceView listing projection of port and airport entries.
type PlaceView struct {
	ID    string `json:"_id"`
	Value string `json:"value"`
}

// SuggestionResponse is a stored entry with every field.
type SuggestionResponse struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GroupedSuggestionsResponse output of GET /api/custom-suggestions.
type GroupedSuggestionsResponse struct {
	Success     bool             `json:"success"`
	Suggestions map[string][]any `json:"suggestions"`
}

// TypedSuggestionsResponse output of GET /api/custom-suggestions/:type.
type TypedSuggestionsResponse struct {
	Success     bool   `json:"success"`
	Type        string `json:"type"`
	Count       int    `json:"count"`
	Suggestions []any  `json:"suggestions"`
}

// BatchError is one rejected batch item with the reason.
type BatchError struct {
	Item  json.RawMessage `json:"item"`
	Error string          `json:"error"`
}

// BatchResult is the outcome of a batch or workbook import.
type BatchResult struct {
	Saved      int                  `json:"saved"`
	Failed     int                  `json:"failed"`
	Total      int                  `json:"total"`
	SavedItems []SuggestionResponse `json:"savedItems"`
	Errors     []BatchError         `json:"errors,omitempty"`
}

// BatchResponse output of POST /api/custom-suggestions/batch and /import.
type BatchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	BatchResult
}
