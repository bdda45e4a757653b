package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ramonehamilton/commander-companion/internal/api/handlers"
	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

type stubProvider struct{}

func (stubProvider) GetCardByExactName(_ context.Context, name string) (*scryfall.Card, error) {
	if name == "Sol Ring" {
		return &scryfall.Card{ID: "id-1", Name: "Sol Ring"}, nil
	}
	return nil, &scryfall.NotFoundError{URL: "/cards/named?exact=" + name}
}

func (stubProvider) SearchCards(_ context.Context, _ string, _ scryfall.SearchOptions) (*scryfall.SearchResult, error) {
	return &scryfall.SearchResult{}, nil
}

func newTestServer() *Server {
	return NewServer(DefaultConfig(), &Handlers{
		Card: handlers.NewCardHandler(stubProvider{}),
	}, nil)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestJSONContentTypeEnforced(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/collection", strings.NewReader(`{"cards":[]}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestCardRouteWired(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cards/named?exact=Sol+Ring", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Sol Ring") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestDefaultConfig(t *testing.T) {
	if DefaultConfig().Port != 8080 {
		t.Errorf("default port = %d, want 8080", DefaultConfig().Port)
	}
	if newTestServer().Port() != 8080 {
		t.Error("server did not take the configured port")
	}
}
