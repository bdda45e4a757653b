// Package repository implements the database repositories over *sql.DB.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ramonehamilton/commander-companion/internal/deck"
	"github.com/ramonehamilton/commander-companion/internal/scryfall"
)

// CollectionRepository handles database operations for the owned collection.
type CollectionRepository interface {
	// GetAll retrieves the entire collection, cached metadata included.
	GetAll(ctx context.Context) ([]deck.OwnedCard, error)

	// Replace atomically swaps the stored collection for the given one.
	Replace(ctx context.Context, cards []deck.OwnedCard) error

	// UpsertCard inserts or updates a single printing.
	UpsertCard(ctx context.Context, card deck.OwnedCard) error

	// MissingDetails lists printings with no cached Scryfall metadata.
	MissingDetails(ctx context.Context) ([]deck.OwnedCard, error)

	// SetDetails caches Scryfall metadata for a printing.
	SetDetails(ctx context.Context, scryfallID string, details *scryfall.Card) error
}

// collectionRepository is the concrete implementation of CollectionRepository.
type collectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new collection repository.
func NewCollectionRepository(db *sql.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

const collectionColumns = `scryfall_id, name, set_code, collector_number, quantity, details`

func scanOwnedCard(scan func(dest ...any) error) (deck.OwnedCard, error) {
	var card deck.OwnedCard
	var details sql.NullString
	if err := scan(&card.ScryfallID, &card.Name, &card.SetCode, &card.CollectorNumber, &card.Quantity, &details); err != nil {
		return card, err
	}
	if details.Valid && details.String != "" {
		card.Details = &scryfall.Card{}
		if err := json.Unmarshal([]byte(details.String), card.Details); err != nil {
			return card, fmt.Errorf("failed to decode cached details for %s: %w", card.ScryfallID, err)
		}
	}
	return card, nil
}

// GetAll retrieves the entire collection ordered by card name.
func (r *collectionRepository) GetAll(ctx context.Context) ([]deck.OwnedCard, error) {
	query := `SELECT ` + collectionColumns + ` FROM collection ORDER BY name, scryfall_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	defer rows.Close()

	var cards []deck.OwnedCard
	for rows.Next() {
		card, err := scanOwnedCard(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection: %w", err)
	}

	return cards, nil
}

// Replace atomically swaps the stored collection for the given one. Cached
// metadata for printings that survive the swap is preserved.
func (r *collectionRepository) Replace(ctx context.Context, cards []deck.OwnedCard) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Carry over existing details so a re-upload doesn't force re-fetching.
	existing := make(map[string]string)
	rows, err := tx.QueryContext(ctx, `SELECT scryfall_id, details FROM collection WHERE details IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("failed to read cached details: %w", err)
	}
	for rows.Next() {
		var id, details string
		if err := rows.Scan(&id, &details); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan cached details: %w", err)
		}
		existing[id] = details
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating cached details: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection`); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	insert := `
		INSERT INTO collection (scryfall_id, name, set_code, collector_number, quantity, details, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	for _, card := range cards {
		details, err := encodeDetails(card.Details)
		if err != nil {
			return err
		}
		if !details.Valid {
			if cached, ok := existing[card.ScryfallID]; ok {
				details = sql.NullString{String: cached, Valid: true}
			}
		}
		if _, err := tx.ExecContext(ctx, insert,
			card.ScryfallID, card.Name, card.SetCode, card.CollectorNumber, card.Quantity, details, now,
		); err != nil {
			return fmt.Errorf("failed to insert card %s: %w", card.ScryfallID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collection replace: %w", err)
	}
	return nil
}

// UpsertCard inserts or updates a single printing.
func (r *collectionRepository) UpsertCard(ctx context.Context, card deck.OwnedCard) error {
	details, err := encodeDetails(card.Details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO collection (scryfall_id, name, set_code, collector_number, quantity, details, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(scryfall_id) DO UPDATE SET
			name = excluded.name,
			set_code = excluded.set_code,
			collector_number = excluded.collector_number,
			quantity = excluded.quantity,
			details = COALESCE(excluded.details, collection.details),
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query,
		card.ScryfallID, card.Name, card.SetCode, card.CollectorNumber, card.Quantity, details, time.Now(),
	); err != nil {
		return fmt.Errorf("failed to upsert card: %w", err)
	}
	return nil
}

// MissingDetails lists printings with no cached Scryfall metadata.
func (r *collectionRepository) MissingDetails(ctx context.Context) ([]deck.OwnedCard, error) {
	query := `SELECT ` + collectionColumns + ` FROM collection WHERE details IS NULL OR details = ''`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards missing details: %w", err)
	}
	defer rows.Close()

	var cards []deck.OwnedCard
	for rows.Next() {
		card, err := scanOwnedCard(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection: %w", err)
	}

	return cards, nil
}

// SetDetails caches Scryfall metadata for a printing.
func (r *collectionRepository) SetDetails(ctx context.Context, scryfallID string, details *scryfall.Card) error {
	encoded, err := encodeDetails(details)
	if err != nil {
		return err
	}

	query := `UPDATE collection SET details = ?, updated_at = ? WHERE scryfall_id = ?`
	if _, err := r.db.ExecContext(ctx, query, encoded, time.Now(), scryfallID); err != nil {
		return fmt.Errorf("failed to set card details: %w", err)
	}
	return nil
}

func encodeDetails(details *scryfall.Card) (sql.NullString, error) {
	if details == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(details)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode card details: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
