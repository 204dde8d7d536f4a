package entities

import "time"

// CalledNumber is one row of the append-only per-session call log
type CalledNumber struct {
	ID            int64     `db:"id"`
	GameSessionID int64     `db:"game_session_id"`
	Number        int       `db:"number"`
	CalledAt      time.Time `db:"called_at"`
}
