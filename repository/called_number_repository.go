package repository

import (
	"context"
	"fmt"

	"bingohall/database"
	"bingohall/domain/entities"
)

// CalledNumberRepository implements the append-only per-session call log
type CalledNumberRepository struct {
	q Queryable
}

// NewCalledNumberRepository creates a new call log repository on the pool
func NewCalledNumberRepository(db *database.DB) *CalledNumberRepository {
	return &CalledNumberRepository{q: db.Pool}
}

// newCalledNumberRepository creates a new call log repository inside a transaction
func newCalledNumberRepository(tx Queryable) *CalledNumberRepository {
	return &CalledNumberRepository{q: tx}
}

// Append records one called number for a session. The unique constraint on
// (session, number) backs up the no-duplicate-draw invariant.
func (r *CalledNumberRepository) Append(ctx context.Context, sessionID int64, number int) error {
	query := `
		INSERT INTO called_numbers (game_session_id, number)
		VALUES ($1, $2)
	`
	if _, err := r.q.Exec(ctx, query, sessionID, number); err != nil {
		return fmt.Errorf("failed to log number %d for session %d: %w", number, sessionID, err)
	}

	return nil
}

// GetBySession returns the call log in call order
func (r *CalledNumberRepository) GetBySession(ctx context.Context, sessionID int64) ([]*entities.CalledNumber, error) {
	query := `
		SELECT id, game_session_id, number, called_at
		FROM called_numbers
		WHERE game_session_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query call log for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	var calls []*entities.CalledNumber
	for rows.Next() {
		var call entities.CalledNumber
		if err := rows.Scan(&call.ID, &call.GameSessionID, &call.Number, &call.CalledAt); err != nil {
			return nil, fmt.Errorf("failed to scan called number: %w", err)
		}
		calls = append(calls, &call)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate call log: %w", err)
	}

	return calls, nil
}
