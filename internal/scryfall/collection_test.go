package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GetCardsByNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/collection" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		var req CollectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}

		resp := CollectionResponse{Object: "list"}
		for _, id := range req.Identifiers {
			if id.Name == "Sol Ring" {
				resp.Data = append(resp.Data, Card{ID: "sol-ring-id", Name: "Sol Ring", TypeLine: "Artifact"})
			} else {
				resp.NotFound = append(resp.NotFound, id)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	ctx := context.Background()

	cards, notFound, err := client.GetCardsByNames(ctx, []string{"Sol Ring", "Not A Card"})
	if err != nil {
		t.Fatalf("GetCardsByNames failed: %v", err)
	}

	if len(cards) != 1 || cards[0].Name != "Sol Ring" {
		t.Errorf("Unexpected cards: %+v", cards)
	}
	if len(notFound) != 1 || notFound[0] != "Not A Card" {
		t.Errorf("Unexpected notFound: %v", notFound)
	}
}

func TestClient_GetCardsByIdentifiers_Batching(t *testing.T) {
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CollectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		batchSizes = append(batchSizes, len(req.Identifiers))

		resp := CollectionResponse{Object: "list"}
		for _, id := range req.Identifiers {
			resp.Data = append(resp.Data, Card{ID: id.ID, Name: "Card " + id.ID})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	ctx := context.Background()

	// 100 identifiers should be split into batches of 75 and 25.
	identifiers := make([]CardIdentifier, 100)
	for i := range identifiers {
		identifiers[i] = CardIdentifier{ID: fmt.Sprintf("id-%03d", i)}
	}

	cards, notFound, err := client.GetCardsByIdentifiers(ctx, identifiers)
	if err != nil {
		t.Fatalf("GetCardsByIdentifiers failed: %v", err)
	}

	if len(cards) != 100 {
		t.Errorf("Expected 100 cards, got %d", len(cards))
	}
	if len(notFound) != 0 {
		t.Errorf("Expected no missing cards, got %d", len(notFound))
	}
	if len(batchSizes) != 2 || batchSizes[0] != MaxBatchSize || batchSizes[1] != 25 {
		t.Errorf("Unexpected batch sizes: %v", batchSizes)
	}
}

func TestClient_GetCardsByIdentifiers_Empty(t *testing.T) {
	client := NewClient()

	cards, notFound, err := client.GetCardsByIdentifiers(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error for empty input, got %v", err)
	}
	if len(cards) != 0 || len(notFound) != 0 {
		t.Errorf("Expected empty results, got %d cards, %d notFound", len(cards), len(notFound))
	}
}

func TestCard_FullOracleText(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want string
	}{
		{
			name: "top-level text",
			card: Card{OracleText: "Draw a card."},
			want: "Draw a card.",
		},
		{
			name: "split card joins faces",
			card: Card{CardFaces: []CardFace{
				{OracleText: "Destroy target creature."},
				{OracleText: "Draw two cards."},
			}},
			want: "Destroy target creature.\nDraw two cards.",
		},
		{
			name: "no text",
			card: Card{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.FullOracleText(); got != tt.want {
				t.Errorf("FullOracleText() = %q, want %q", got, tt.want)
			}
		})
	}
}
