package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ramonehamilton/commander-companion/internal/api/response"
	"github.com/ramonehamilton/commander-companion/internal/collection"
	"github.com/ramonehamilton/commander-companion/internal/deck"
	"github.com/ramonehamilton/commander-companion/internal/storage/models"
	"github.com/ramonehamilton/commander-companion/internal/storage/repository"
)

// DeckHandler handles deck-related API requests.
type DeckHandler struct {
	builder    *deck.Builder
	collection *collection.Service
	decks      repository.DeckRepository
	logger     *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(builder *deck.Builder, collection *collection.Service, decks repository.DeckRepository, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DeckHandler{builder: builder, collection: collection, decks: decks, logger: logger}
}

// AutoBuildRequest represents an auto-build request. When Collection is
// omitted the stored collection is used; Save persists the result.
type AutoBuildRequest struct {
	CommanderNames []string         `json:"commanderNames"`
	Collection     []deck.OwnedCard `json:"collection,omitempty"`
	Save           bool             `json:"save,omitempty"`
}

// AutoBuildResponse is a build result plus the saved deck's ID when the
// request asked to persist it.
type AutoBuildResponse struct {
	*deck.BuildResult
	DeckID string `json:"deckId,omitempty"`
}

// AutoBuild assembles a deck for the requested commanders.
func (h *DeckHandler) AutoBuild(w http.ResponseWriter, r *http.Request) {
	var req AutoBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if len(req.CommanderNames) == 0 || len(req.CommanderNames) > 2 {
		response.BadRequest(w, errors.New("one or two commander names are required"))
		return
	}

	pool := req.Collection
	if pool == nil {
		stored, err := h.collection.Get(r.Context())
		if err != nil {
			response.InternalError(w, err)
			return
		}
		pool = stored
	}

	result, err := h.builder.Build(r.Context(), deck.BuildRequest{
		CommanderNames: req.CommanderNames,
		Collection:     pool,
	})
	if err != nil {
		if deck.IsCommanderNotFound(err) {
			response.NotFound(w, err)
			return
		}
		response.BadGateway(w, err)
		return
	}

	resp := AutoBuildResponse{BuildResult: result}
	if req.Save {
		id, err := h.saveDeck(r, req.CommanderNames, result)
		if err != nil {
			h.logger.Error("failed to save built deck", "error", err)
			response.InternalError(w, err)
			return
		}
		resp.DeckID = id
	}

	response.Success(w, resp)
}

func (h *DeckHandler) saveDeck(r *http.Request, commanders []string, result *deck.BuildResult) (string, error) {
	now := time.Now()
	record := &models.Deck{
		ID:            uuid.NewString(),
		Name:          result.DeckName,
		Commanders:    commanders,
		Colors:        result.Colors,
		DeckURL:       result.DeckURL,
		LandShortfall: result.LandShortfall,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	cards := make([]models.DeckCard, len(result.DeckList))
	for i, entry := range result.DeckList {
		cards[i] = models.DeckCard{Name: entry.Name, ScryfallID: entry.ScryfallID}
	}

	if err := h.decks.Create(r.Context(), record, cards); err != nil {
		return "", err
	}
	return record.ID, nil
}

// ListDecks returns all saved deck headers.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.List(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if decks == nil {
		decks = []*models.Deck{}
	}
	response.Success(w, decks)
}

// DeckDetail is a saved deck header plus its card list.
type DeckDetail struct {
	*models.Deck
	Cards []models.DeckCard `json:"cards"`
}

// GetDeck returns a saved deck with its card list.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	record, err := h.decks.GetByID(r.Context(), deckID)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if record == nil {
		response.NotFound(w, errors.New("deck not found"))
		return
	}

	cards, err := h.decks.GetCards(r.Context(), deckID)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, DeckDetail{Deck: record, Cards: cards})
}

// RenameDeckRequest represents a deck rename.
type RenameDeckRequest struct {
	Name string `json:"name"`
}

// RenameDeck changes a saved deck's name.
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	var req RenameDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Name == "" {
		response.BadRequest(w, errors.New("deck name is required"))
		return
	}

	if err := h.decks.Rename(r.Context(), deckID, req.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.NotFound(w, errors.New("deck not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.NoContent(w)
}

// DeleteDeck removes a saved deck.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	if err := h.decks.Delete(r.Context(), deckID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.NotFound(w, errors.New("deck not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.NoContent(w)
}
