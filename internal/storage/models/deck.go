// Package models holds the row types shared by the storage repositories.
package models

import "time"

// Deck is a saved deck's header row.
type Deck struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Commanders    []string  `json:"commanders"`
	Colors        []string  `json:"colors"`
	DeckURL       string    `json:"deckUrl,omitempty"`
	LandShortfall int       `json:"landShortfall,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DeckCard is one deck slot. Position preserves allocation order; ScryfallID
// is empty for suggested cards and unowned basics.
type DeckCard struct {
	DeckID     string `json:"-"`
	Position   int    `json:"-"`
	Name       string `json:"name"`
	ScryfallID string `json:"scryfallId,omitempty"`
}
