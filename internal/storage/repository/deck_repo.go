package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ramonehamilton/commander-companion/internal/storage/models"
)

// DeckRepository handles database operations for saved decks.
type DeckRepository interface {
	// Create inserts a new deck and its card list.
	Create(ctx context.Context, deck *models.Deck, cards []models.DeckCard) error

	// GetByID retrieves a deck header by its ID, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.Deck, error)

	// List retrieves all deck headers, newest first.
	List(ctx context.Context) ([]*models.Deck, error)

	// GetCards retrieves a deck's card list in allocation order.
	GetCards(ctx context.Context, deckID string) ([]models.DeckCard, error)

	// Rename changes a deck's name.
	Rename(ctx context.Context, id, name string) error

	// Delete removes a deck and its cards.
	Delete(ctx context.Context, id string) error
}

// deckRepository is the concrete implementation of DeckRepository.
type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db *sql.DB) DeckRepository {
	return &deckRepository{db: db}
}

// Create inserts a new deck and its card list in one transaction.
func (r *deckRepository) Create(ctx context.Context, deck *models.Deck, cards []models.DeckCard) error {
	commanders, err := json.Marshal(deck.Commanders)
	if err != nil {
		return fmt.Errorf("failed to encode commanders: %w", err)
	}
	colors, err := json.Marshal(deck.Colors)
	if err != nil {
		return fmt.Errorf("failed to encode colors: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO decks (id, name, commanders, colors, deck_url, land_shortfall, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query,
		deck.ID, deck.Name, string(commanders), string(colors),
		deck.DeckURL, deck.LandShortfall, deck.CreatedAt, deck.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create deck: %w", err)
	}

	insert := `INSERT INTO deck_cards (deck_id, position, name, scryfall_id) VALUES (?, ?, ?, ?)`
	for i, card := range cards {
		if _, err := tx.ExecContext(ctx, insert, deck.ID, i, card.Name, card.ScryfallID); err != nil {
			return fmt.Errorf("failed to insert deck card %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck: %w", err)
	}
	return nil
}

const deckColumns = `id, name, commanders, colors, deck_url, land_shortfall, created_at, updated_at`

func scanDeck(scan func(dest ...any) error) (*models.Deck, error) {
	deck := &models.Deck{}
	var commanders, colors string
	if err := scan(&deck.ID, &deck.Name, &commanders, &colors,
		&deck.DeckURL, &deck.LandShortfall, &deck.CreatedAt, &deck.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(commanders), &deck.Commanders); err != nil {
		return nil, fmt.Errorf("failed to decode commanders for deck %s: %w", deck.ID, err)
	}
	if err := json.Unmarshal([]byte(colors), &deck.Colors); err != nil {
		return nil, fmt.Errorf("failed to decode colors for deck %s: %w", deck.ID, err)
	}
	return deck, nil
}

// GetByID retrieves a deck header by its ID, or nil when absent.
func (r *deckRepository) GetByID(ctx context.Context, id string) (*models.Deck, error) {
	query := `SELECT ` + deckColumns + ` FROM decks WHERE id = ?`

	deck, err := scanDeck(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck by id: %w", err)
	}
	return deck, nil
}

// List retrieves all deck headers, newest first.
func (r *deckRepository) List(ctx context.Context) ([]*models.Deck, error) {
	query := `SELECT ` + deckColumns + ` FROM decks ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []*models.Deck
	for rows.Next() {
		deck, err := scanDeck(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decks: %w", err)
	}

	return decks, nil
}

// GetCards retrieves a deck's card list in allocation order.
func (r *deckRepository) GetCards(ctx context.Context, deckID string) ([]models.DeckCard, error) {
	query := `SELECT deck_id, position, name, scryfall_id FROM deck_cards WHERE deck_id = ? ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck cards: %w", err)
	}
	defer rows.Close()

	var cards []models.DeckCard
	for rows.Next() {
		var card models.DeckCard
		if err := rows.Scan(&card.DeckID, &card.Position, &card.Name, &card.ScryfallID); err != nil {
			return nil, fmt.Errorf("failed to scan deck card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deck cards: %w", err)
	}

	return cards, nil
}

// Rename changes a deck's name.
func (r *deckRepository) Rename(ctx context.Context, id, name string) error {
	query := `UPDATE decks SET name = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, name, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to rename deck: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rename result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a deck; deck_cards cascade.
func (r *deckRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
