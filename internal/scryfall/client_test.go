package scryfall

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient()

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}

	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}

	if client.rateLimiter == nil {
		t.Error("rateLimiter is nil")
	}

	if client.userAgent == "" {
		t.Error("userAgent is empty")
	}
}

func TestClient_GetCardByExactName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/named" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("exact"); got != "Lightning Bolt" {
			t.Errorf("Expected exact=Lightning Bolt, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"id": "test-id",
			"name": "Lightning Bolt",
			"mana_cost": "{R}",
			"cmc": 1.0,
			"type_line": "Instant",
			"oracle_text": "Lightning Bolt deals 3 damage to any target.",
			"color_identity": ["R"]
		}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	ctx := context.Background()

	card, err := client.GetCardByExactName(ctx, "Lightning Bolt")
	if err != nil {
		t.Fatalf("GetCardByExactName failed: %v", err)
	}

	if card.Name != "Lightning Bolt" {
		t.Errorf("Expected card name 'Lightning Bolt', got '%s'", card.Name)
	}
	if len(card.ColorIdentity) != 1 || card.ColorIdentity[0] != "R" {
		t.Errorf("Unexpected color identity: %v", card.ColorIdentity)
	}
}

func TestClient_GetCardByExactName_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object":"error","code":"not_found","status":404,"details":"No card found"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	ctx := context.Background()

	_, err := client.GetCardByExactName(ctx, "Not A Real Card")
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError in chain, got %T: %v", err, err)
	}
}

func TestClient_SearchCards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/search" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "id<=WU legal:commander" {
			t.Errorf("Unexpected query: %q", q.Get("q"))
		}
		if q.Get("order") != "edhrec" {
			t.Errorf("Expected order=edhrec, got %q", q.Get("order"))
		}
		if q.Get("dir") != "asc" {
			t.Errorf("Expected dir=asc, got %q", q.Get("dir"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"object": "list",
			"total_cards": 2,
			"has_more": false,
			"data": [
				{"id": "a", "name": "Swords to Plowshares", "type_line": "Instant", "color_identity": ["W"]},
				{"id": "b", "name": "Counterspell", "type_line": "Instant", "color_identity": ["U"]}
			]
		}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	ctx := context.Background()

	result, err := client.SearchCards(ctx, "id<=WU legal:commander", SearchOptions{Order: "edhrec", Direction: "asc"})
	if err != nil {
		t.Fatalf("SearchCards failed: %v", err)
	}

	if len(result.Data) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(result.Data))
	}
	if result.Data[0].Name != "Swords to Plowshares" {
		t.Errorf("Unexpected first card: %s", result.Data[0].Name)
	}
}

func TestClient_RateLimiting(t *testing.T) {
	// Create a test server that counts requests
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"test","name":"Test Card"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	ctx := context.Background()

	// Make 3 requests and measure time
	start := time.Now()
	for i := 0; i < 3; i++ {
		var card Card
		err := client.doRequest(ctx, server.URL, &card)
		if err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
	}
	elapsed := time.Since(start)

	if requestCount != 3 {
		t.Errorf("Expected 3 requests, got %d", requestCount)
	}

	// Should take at least 200ms (2 delays of 100ms each between 3 requests)
	want := 200 * time.Millisecond
	if elapsed < want {
		t.Errorf("Rate limiting not working: completed 3 requests in %v (expected >= %v)", elapsed, want)
	}
}
