// Package handlers implements the API request handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ramonehamilton/commander-companion/internal/api/response"
	"github.com/ramonehamilton/commander-companion/internal/collection"
	"github.com/ramonehamilton/commander-companion/internal/deck"
)

// CollectionHandler handles collection-related API requests.
type CollectionHandler struct {
	service *collection.Service
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(service *collection.Service) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// GetCollection returns the stored collection with cached metadata.
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.Get(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if cards == nil {
		cards = []deck.OwnedCard{}
	}
	response.Success(w, cards)
}

// ReplaceCollectionRequest represents a full collection upload.
type ReplaceCollectionRequest struct {
	Cards []deck.OwnedCard `json:"cards"`
}

// ReplaceCollection swaps the stored collection for the uploaded one.
func (h *CollectionHandler) ReplaceCollection(w http.ResponseWriter, r *http.Request) {
	var req ReplaceCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	if err := h.service.Replace(r.Context(), req.Cards); err != nil {
		response.BadRequest(w, err)
		return
	}

	response.Success(w, map[string]int{"cards": len(req.Cards)})
}
