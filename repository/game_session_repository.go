package repository

import (
	"context"
	"fmt"

	"bingohall/database"
	"bingohall/domain/entities"

	"github.com/jackc/pgx/v5"
)

const gameSessionColumns = `
	id, account_id, stake_amount, status, called_numbers, winner_id, created_at, ended_at
`

// GameSessionRepository implements game session data access over postgres
type GameSessionRepository struct {
	q Queryable
}

// NewGameSessionRepository creates a new session repository on the pool
func NewGameSessionRepository(db *database.DB) *GameSessionRepository {
	return &GameSessionRepository{q: db.Pool}
}

// newGameSessionRepository creates a new session repository inside a transaction
func newGameSessionRepository(tx Queryable) *GameSessionRepository {
	return &GameSessionRepository{q: tx}
}

func (r *GameSessionRepository) scanSession(row pgx.Row) (*entities.GameSession, error) {
	var session entities.GameSession
	var called []int32
	err := row.Scan(
		&session.ID,
		&session.AccountID,
		&session.StakeAmount,
		&session.Status,
		&called,
		&session.WinnerID,
		&session.CreatedAt,
		&session.EndedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	session.CalledNumbers = toInts(called)
	return &session, nil
}

// Create creates a new session in state created
func (r *GameSessionRepository) Create(ctx context.Context, session *entities.GameSession) error {
	query := `
		INSERT INTO game_sessions (account_id, stake_amount, status, called_numbers)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		session.AccountID,
		session.StakeAmount,
		session.Status,
		toInt32s(session.CalledNumbers),
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game session: %w", err)
	}

	return nil
}

// GetByID retrieves a session by its ID
func (r *GameSessionRepository) GetByID(ctx context.Context, id int64) (*entities.GameSession, error) {
	query := `SELECT ` + gameSessionColumns + ` FROM game_sessions WHERE id = $1`

	session, err := r.scanSession(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get game session %d: %w", id, err)
	}
	return session, nil
}

// GetByIDForUpdate retrieves a session with a row lock. Draws and
// settlements take this lock first so they serialize per session.
func (r *GameSessionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.GameSession, error) {
	query := `SELECT ` + gameSessionColumns + ` FROM game_sessions WHERE id = $1 FOR UPDATE`

	session, err := r.scanSession(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock game session %d: %w", id, err)
	}
	return session, nil
}

// Update persists status, called numbers, winner and end time
func (r *GameSessionRepository) Update(ctx context.Context, session *entities.GameSession) error {
	query := `
		UPDATE game_sessions
		SET status = $1, called_numbers = $2, winner_id = $3, ended_at = $4
		WHERE id = $5
	`
	result, err := r.q.Exec(ctx, query,
		session.Status,
		toInt32s(session.CalledNumbers),
		session.WinnerID,
		session.EndedAt,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game session %d: %w", session.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("game session %d not found", session.ID)
	}

	return nil
}

// GetActiveByAccount returns non-terminal sessions for an account
func (r *GameSessionRepository) GetActiveByAccount(ctx context.Context, accountID int64) ([]*entities.GameSession, error) {
	query := `
		SELECT ` + gameSessionColumns + `
		FROM game_sessions
		WHERE account_id = $1 AND status IN ('created', 'playing')
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active sessions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var sessions []*entities.GameSession
	for rows.Next() {
		var session entities.GameSession
		var called []int32
		err := rows.Scan(
			&session.ID,
			&session.AccountID,
			&session.StakeAmount,
			&session.Status,
			&called,
			&session.WinnerID,
			&session.CreatedAt,
			&session.EndedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game session: %w", err)
		}
		session.CalledNumbers = toInts(called)
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game sessions: %w", err)
	}

	return sessions, nil
}
