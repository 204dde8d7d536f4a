package repository

import (
	"context"
	"fmt"

	"bingohall/database"
	"bingohall/domain/entities"

	"github.com/jackc/pgx/v5"
)

const cardColumns = `
	id, game_session_id, slot_index, numbers, marked_numbers, is_winner
`

// CardRepository implements card data access over postgres
type CardRepository struct {
	q Queryable
}

// NewCardRepository creates a new card repository on the pool
func NewCardRepository(db *database.DB) *CardRepository {
	return &CardRepository{q: db.Pool}
}

// newCardRepository creates a new card repository inside a transaction
func newCardRepository(tx Queryable) *CardRepository {
	return &CardRepository{q: tx}
}

func (r *CardRepository) scanCard(row pgx.Row) (*entities.Card, error) {
	var card entities.Card
	var numbers, marked []int32
	err := row.Scan(
		&card.ID,
		&card.GameSessionID,
		&card.SlotIndex,
		&numbers,
		&marked,
		&card.IsWinner,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	card.Numbers = toInts(numbers)
	card.Marked = toInts(marked)
	return &card, nil
}

// Create attaches a generated card to its session
func (r *CardRepository) Create(ctx context.Context, card *entities.Card) error {
	query := `
		INSERT INTO cards (game_session_id, slot_index, numbers, marked_numbers, is_winner)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		card.GameSessionID,
		card.SlotIndex,
		toInt32s(card.Numbers),
		toInt32s(card.Marked),
		card.IsWinner,
	).Scan(&card.ID)

	if err != nil {
		return fmt.Errorf("failed to create card for session %d: %w", card.GameSessionID, err)
	}

	return nil
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id int64) (*entities.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	card, err := r.scanCard(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get card %d: %w", id, err)
	}
	return card, nil
}

// GetByIDForUpdate retrieves a card with a row lock
func (r *CardRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 FOR UPDATE`

	card, err := r.scanCard(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock card %d: %w", id, err)
	}
	return card, nil
}

// GetBySession returns all cards of a session ordered by slot
func (r *CardRepository) GetBySession(ctx context.Context, sessionID int64) ([]*entities.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE game_session_id = $1 ORDER BY slot_index`

	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	var cards []*entities.Card
	for rows.Next() {
		var card entities.Card
		var numbers, marked []int32
		err := rows.Scan(
			&card.ID,
			&card.GameSessionID,
			&card.SlotIndex,
			&numbers,
			&marked,
			&card.IsWinner,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		card.Numbers = toInts(numbers)
		card.Marked = toInts(marked)
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}

// Update persists marked numbers and the winner flag
func (r *CardRepository) Update(ctx context.Context, card *entities.Card) error {
	query := `
		UPDATE cards
		SET marked_numbers = $1, is_winner = $2
		WHERE id = $3
	`
	result, err := r.q.Exec(ctx, query, toInt32s(card.Marked), card.IsWinner, card.ID)
	if err != nil {
		return fmt.Errorf("failed to update card %d: %w", card.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("card %d not found", card.ID)
	}

	return nil
}
