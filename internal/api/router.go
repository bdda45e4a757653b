package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/commander-companion/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/collection", func(r chi.Router) {
			r.Get("/", s.collectionHandler.GetCollection)
			r.Put("/", s.collectionHandler.ReplaceCollection)
		})

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.deckHandler.ListDecks)
			r.Post("/autobuild", s.deckHandler.AutoBuild)
			r.Get("/{deckID}", s.deckHandler.GetDeck)
			r.Patch("/{deckID}", s.deckHandler.RenameDeck)
			r.Delete("/{deckID}", s.deckHandler.DeleteDeck)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/search", s.cardHandler.SearchCards)
			r.Get("/named", s.cardHandler.GetCardByName)
		})
	})
}

// healthCheck reports service liveness.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
