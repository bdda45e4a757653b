package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

// fakeCardProvider serves canned cards by exact name.
type fakeCardProvider struct {
	cards     map[string]*scryfall.Card
	searchErr error
}

func (f *fakeCardProvider) GetCardByExactName(_ context.Context, name string) (*scryfall.Card, error) {
	if card, ok := f.cards[name]; ok {
		return card, nil
	}
	return nil, &scryfall.NotFoundError{URL: "/cards/named?exact=" + name}
}

func (f *fakeCardProvider) SearchCards(_ context.Context, _ string, _ scryfall.SearchOptions) (*scryfall.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var data []scryfall.Card
	for _, card := range f.cards {
		data = append(data, *card)
	}
	return &scryfall.SearchResult{Data: data, TotalCards: len(data)}, nil
}

func TestCardHandler_GetCardByName(t *testing.T) {
	handler := NewCardHandler(&fakeCardProvider{cards: map[string]*scryfall.Card{
		"Sol Ring": {ID: "id-1", Name: "Sol Ring", TypeLine: "Artifact"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/named?exact=Sol+Ring", nil)
	rec := httptest.NewRecorder()
	handler.GetCardByName(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data scryfall.Card `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Name != "Sol Ring" {
		t.Errorf("card name = %q, want Sol Ring", resp.Data.Name)
	}
}

func TestCardHandler_GetCardByName_NotFound(t *testing.T) {
	handler := NewCardHandler(&fakeCardProvider{cards: map[string]*scryfall.Card{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/named?exact=Nope", nil)
	rec := httptest.NewRecorder()
	handler.GetCardByName(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCardHandler_GetCardByName_MissingParam(t *testing.T) {
	handler := NewCardHandler(&fakeCardProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/named", nil)
	rec := httptest.NewRecorder()
	handler.GetCardByName(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCardHandler_SearchCards(t *testing.T) {
	handler := NewCardHandler(&fakeCardProvider{cards: map[string]*scryfall.Card{
		"Sol Ring": {ID: "id-1", Name: "Sol Ring"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/search?q=t%3Aartifact&order=edhrec", nil)
	rec := httptest.NewRecorder()
	handler.SearchCards(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCardHandler_SearchCards_BadPage(t *testing.T) {
	handler := NewCardHandler(&fakeCardProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/search?q=x&page=zero", nil)
	rec := httptest.NewRecorder()
	handler.SearchCards(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
