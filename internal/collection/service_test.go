package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/ramonehamilton/commander-companion/internal/deck"
	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

// fakeRepo is an in-memory CollectionRepository.
type fakeRepo struct {
	cards map[string]deck.OwnedCard
	order []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{cards: make(map[string]deck.OwnedCard)}
}

func (f *fakeRepo) GetAll(_ context.Context) ([]deck.OwnedCard, error) {
	out := make([]deck.OwnedCard, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.cards[id])
	}
	return out, nil
}

func (f *fakeRepo) Replace(_ context.Context, cards []deck.OwnedCard) error {
	f.cards = make(map[string]deck.OwnedCard)
	f.order = f.order[:0]
	for _, card := range cards {
		f.cards[card.ScryfallID] = card
		f.order = append(f.order, card.ScryfallID)
	}
	return nil
}

func (f *fakeRepo) UpsertCard(_ context.Context, card deck.OwnedCard) error {
	if _, ok := f.cards[card.ScryfallID]; !ok {
		f.order = append(f.order, card.ScryfallID)
	}
	f.cards[card.ScryfallID] = card
	return nil
}

func (f *fakeRepo) MissingDetails(_ context.Context) ([]deck.OwnedCard, error) {
	var out []deck.OwnedCard
	for _, id := range f.order {
		if f.cards[id].Details == nil {
			out = append(out, f.cards[id])
		}
	}
	return out, nil
}

func (f *fakeRepo) SetDetails(_ context.Context, scryfallID string, details *scryfall.Card) error {
	card, ok := f.cards[scryfallID]
	if !ok {
		return errors.New("unknown printing")
	}
	card.Details = details
	f.cards[scryfallID] = card
	return nil
}

// fakeBatch resolves identifiers against a fixed card set.
type fakeBatch struct {
	known map[string]scryfall.Card
	calls int
}

func (f *fakeBatch) GetCardsByIdentifiers(_ context.Context, identifiers []scryfall.CardIdentifier) ([]scryfall.Card, []scryfall.CardIdentifier, error) {
	f.calls++
	var found []scryfall.Card
	var notFound []scryfall.CardIdentifier
	for _, id := range identifiers {
		if card, ok := f.known[id.ID]; ok {
			found = append(found, card)
		} else {
			notFound = append(notFound, id)
		}
	}
	return found, notFound, nil
}

func TestService_ReplaceEnriches(t *testing.T) {
	repo := newFakeRepo()
	batch := &fakeBatch{known: map[string]scryfall.Card{
		"id-1": {ID: "id-1", Name: "Sol Ring", TypeLine: "Artifact"},
	}}
	svc := NewService(repo, batch, nil)

	err := svc.Replace(context.Background(), []deck.OwnedCard{
		{ScryfallID: "id-1", Name: "Sol Ring", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 || got[0].Details == nil {
		t.Fatalf("collection not enriched: %+v", got)
	}
	if got[0].Details.TypeLine != "Artifact" {
		t.Errorf("details type line = %q, want Artifact", got[0].Details.TypeLine)
	}
}

func TestService_ReplaceValidates(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeBatch{}, nil)

	tests := []struct {
		name string
		card deck.OwnedCard
	}{
		{"missing name", deck.OwnedCard{ScryfallID: "id-1"}},
		{"missing id", deck.OwnedCard{Name: "Sol Ring"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Replace(context.Background(), []deck.OwnedCard{tt.card})
			if err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestService_ReplaceDefaultsQuantity(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeBatch{}, nil)

	err := svc.Replace(context.Background(), []deck.OwnedCard{
		{ScryfallID: "id-1", Name: "Sol Ring", Quantity: 0},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, _ := svc.Get(context.Background())
	if got[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", got[0].Quantity)
	}
}

func TestService_EnrichSkipsAlreadyCached(t *testing.T) {
	repo := newFakeRepo()
	batch := &fakeBatch{known: map[string]scryfall.Card{}}
	svc := NewService(repo, batch, nil)

	_ = repo.UpsertCard(context.Background(), deck.OwnedCard{
		ScryfallID: "id-1", Name: "Sol Ring", Quantity: 1,
		Details: &scryfall.Card{ID: "id-1", Name: "Sol Ring"},
	})

	enriched, err := svc.Enrich(context.Background())
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if enriched != 0 {
		t.Errorf("enriched = %d, want 0", enriched)
	}
	if batch.calls != 0 {
		t.Errorf("provider called %d times for fully cached collection", batch.calls)
	}
}
