// Package collection manages the owned-card pool: persistence plus lazy
// enrichment of printings with Scryfall metadata.
package collection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ramonehamilton/commander-companion/internal/deck"
	"github.com/ramonehamilton/commander-companion/internal/scryfall"
	"github.com/ramonehamilton/commander-companion/internal/storage/repository"
)

// BatchProvider is the batch metadata lookup the service depends on.
// *scryfall.Client satisfies it.
type BatchProvider interface {
	GetCardsByIdentifiers(ctx context.Context, identifiers []scryfall.CardIdentifier) ([]scryfall.Card, []scryfall.CardIdentifier, error)
}

// Service stores the owned collection and keeps its cached metadata current.
type Service struct {
	repo   repository.CollectionRepository
	cards  BatchProvider
	logger *slog.Logger
}

// NewService creates a collection service. A nil logger discards output.
func NewService(repo repository.CollectionRepository, cards BatchProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, cards: cards, logger: logger}
}

// Get returns the stored collection with cached metadata.
func (s *Service) Get(ctx context.Context) ([]deck.OwnedCard, error) {
	return s.repo.GetAll(ctx)
}

// Replace swaps the stored collection and enriches any printings missing
// metadata. Enrichment failure does not fail the replace; the pool works
// degraded and the next replace retries.
func (s *Service) Replace(ctx context.Context, cards []deck.OwnedCard) error {
	for i, card := range cards {
		if card.Name == "" {
			return fmt.Errorf("collection entry %d has no name", i)
		}
		if card.ScryfallID == "" {
			return fmt.Errorf("collection entry %d (%s) has no scryfall id", i, card.Name)
		}
		if card.Quantity <= 0 {
			cards[i].Quantity = 1
		}
	}

	if err := s.repo.Replace(ctx, cards); err != nil {
		return err
	}

	enriched, err := s.Enrich(ctx)
	if err != nil {
		s.logger.Warn("collection enrichment failed", "error", err)
		return nil
	}
	if enriched > 0 {
		s.logger.Info("collection enriched", "cards", enriched)
	}
	return nil
}

// Enrich fetches Scryfall metadata for every stored printing that lacks it.
// Returns the number of printings enriched.
func (s *Service) Enrich(ctx context.Context) (int, error) {
	missing, err := s.repo.MissingDetails(ctx)
	if err != nil {
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}

	identifiers := make([]scryfall.CardIdentifier, len(missing))
	for i, card := range missing {
		identifiers[i] = scryfall.CardIdentifier{ID: card.ScryfallID}
	}

	found, notFound, err := s.cards.GetCardsByIdentifiers(ctx, identifiers)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch card metadata: %w", err)
	}
	if len(notFound) > 0 {
		s.logger.Warn("some printings not found on Scryfall", "count", len(notFound))
	}

	var errs []error
	enriched := 0
	for i := range found {
		card := &found[i]
		if err := s.repo.SetDetails(ctx, card.ID, card); err != nil {
			errs = append(errs, err)
			continue
		}
		enriched++
	}
	return enriched, errors.Join(errs...)
}
