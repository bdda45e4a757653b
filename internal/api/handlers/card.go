package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ramonehamilton/commander-companion/internal/api/response"
	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

// CardProvider is the card lookup surface the handler needs.
// *scryfall.Client satisfies it.
type CardProvider interface {
	GetCardByExactName(ctx context.Context, name string) (*scryfall.Card, error)
	SearchCards(ctx context.Context, query string, opts scryfall.SearchOptions) (*scryfall.SearchResult, error)
}

// CardHandler handles card lookup API requests.
type CardHandler struct {
	provider CardProvider
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(provider CardProvider) *CardHandler {
	return &CardHandler{provider: provider}
}

// SearchCards proxies a Scryfall-syntax search.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, errors.New("query parameter q is required"))
		return
	}

	opts := scryfall.SearchOptions{
		Order:     r.URL.Query().Get("order"),
		Direction: r.URL.Query().Get("dir"),
	}
	if page := r.URL.Query().Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			response.BadRequest(w, errors.New("page must be a positive integer"))
			return
		}
		opts.Page = n
	}

	result, err := h.provider.SearchCards(r.Context(), query, opts)
	if err != nil {
		if scryfall.IsNotFound(err) {
			response.NotFound(w, errors.New("no cards matched the query"))
			return
		}
		response.BadGateway(w, err)
		return
	}

	response.Success(w, result)
}

// GetCardByName resolves a card by exact name.
func (h *CardHandler) GetCardByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("exact")
	if name == "" {
		response.BadRequest(w, errors.New("query parameter exact is required"))
		return
	}

	card, err := h.provider.GetCardByExactName(r.Context(), name)
	if err != nil {
		if scryfall.IsNotFound(err) {
			response.NotFound(w, errors.New("card not found"))
			return
		}
		response.BadGateway(w, err)
		return
	}

	response.Success(w, card)
}
