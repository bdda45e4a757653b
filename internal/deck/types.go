// Package deck implements the automatic Commander deck assembler. Given one
// or two commanders and an owned-card pool it produces a legal,
// color-identity-compliant 100-card deck list, preferring owned cards and
// suggesting acquisitions for the slots it cannot fill.
package deck

import (
	"context"

	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

// OwnedCard is a card the user possesses: a specific printing with a
// quantity, optionally enriched with cached Scryfall metadata.
type OwnedCard struct {
	ScryfallID      string         `json:"scryfallId"`
	Name            string         `json:"name"`
	SetCode         string         `json:"set,omitempty"`
	CollectorNumber string         `json:"collectorNumber,omitempty"`
	Quantity        int            `json:"quantity"`
	Details         *scryfall.Card `json:"details,omitempty"`
}

// BuildRequest is the input to a single auto-build run.
type BuildRequest struct {
	CommanderNames []string    `json:"commanderNames"`
	Collection     []OwnedCard `json:"collection"`
}

// DeckEntry pairs a deck slot's card name with the owned printing chosen to
// fill it. ScryfallID is empty when the card is a suggestion or an unowned
// basic land.
type DeckEntry struct {
	Name       string `json:"name"`
	ScryfallID string `json:"scryfallId,omitempty"`
}

// BuildResult is the output of a successful build.
type BuildResult struct {
	DeckName string `json:"deckName"`

	// Colors is the merged commander color identity in WUBRG order.
	Colors []string `json:"colors"`

	// CardNames lists every non-commander slot in allocation order. Basic
	// land names may repeat; all other names are unique.
	CardNames []string `json:"cardNames"`

	// DeckList pairs each slot with an owned printing where one exists.
	DeckList []DeckEntry `json:"deckList"`

	// SuggestedDetails carries full metadata for every card proposed that
	// the user does not own.
	SuggestedDetails []scryfall.Card `json:"suggestedDetails"`

	// LandShortfall counts land slots left unfilled. Nonzero only for
	// colorless-identity commanders whose pool ran out of usable lands.
	LandShortfall int `json:"landShortfall"`

	// DeckURL links to the primary commander's EDHREC page.
	DeckURL string `json:"deckUrl"`
}

// CardProvider is the external card metadata lookup the assembler depends
// on. *scryfall.Client satisfies it; tests substitute a deterministic fake.
type CardProvider interface {
	// GetCardByExactName resolves a card by exact name. A failed
	// resolution returns an error satisfying scryfall.IsNotFound.
	GetCardByExactName(ctx context.Context, name string) (*scryfall.Card, error)

	// SearchCards runs a Scryfall-syntax search.
	SearchCards(ctx context.Context, query string, opts scryfall.SearchOptions) (*scryfall.SearchResult, error)
}
