package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// NumberUniverseSize is the size of the shared draw universe (numbers 1-75).
const NumberUniverseSize = 75

// GameSessionStatus represents the lifecycle state of a game session
type GameSessionStatus string

const (
	GameSessionStatusCreated   GameSessionStatus = "created"
	GameSessionStatusPlaying   GameSessionStatus = "playing"
	GameSessionStatusWon       GameSessionStatus = "won"
	GameSessionStatusAbandoned GameSessionStatus = "abandoned"
)

// GameSession represents a single bingo game owned by one account.
// CalledNumbers is append-only and never contains duplicates.
type GameSession struct {
	ID            int64             `db:"id"`
	AccountID     int64             `db:"account_id"`
	StakeAmount   decimal.Decimal   `db:"stake_amount"`
	Status        GameSessionStatus `db:"status"`
	CalledNumbers []int             `db:"called_numbers"`
	WinnerID      *int64            `db:"winner_id"`
	CreatedAt     time.Time         `db:"created_at"`
	EndedAt       *time.Time        `db:"ended_at"`
}

// IsTerminal returns true once the session reached an absorbing state
func (g *GameSession) IsTerminal() bool {
	return g.Status == GameSessionStatusWon || g.Status == GameSessionStatusAbandoned
}

// CanSelectCards returns true while cards may still be attached
func (g *GameSession) CanSelectCards() bool {
	return g.Status == GameSessionStatusCreated
}

// CanDraw returns true while numbers may be called
func (g *GameSession) CanDraw() bool {
	return g.Status == GameSessionStatusPlaying
}

// HasCalled reports whether a number was already called in this session
func (g *GameSession) HasCalled(number int) bool {
	for _, n := range g.CalledNumbers {
		if n == number {
			return true
		}
	}
	return false
}

// AddCalledNumber appends a number to the call history. Appending a number
// that was already called is a no-op so the history stays duplicate-free.
func (g *GameSession) AddCalledNumber(number int) {
	if g.HasCalled(number) {
		return
	}
	g.CalledNumbers = append(g.CalledNumbers, number)
}

// RemainingNumbers returns how many of the 75 numbers are still undrawn
func (g *GameSession) RemainingNumbers() int {
	return NumberUniverseSize - len(g.CalledNumbers)
}

// Settle transitions the session to won and stamps the end time
func (g *GameSession) Settle(winnerID int64) {
	g.Status = GameSessionStatusWon
	g.WinnerID = &winnerID
	now := time.Now().UTC()
	g.EndedAt = &now
}

// Abandon transitions the session to abandoned and stamps the end time
func (g *GameSession) Abandon() {
	g.Status = GameSessionStatusAbandoned
	now := time.Now().UTC()
	g.EndedAt = &now
}

// Payout returns the fixed-odds winnings for this session (2x stake)
func (g *GameSession) Payout() decimal.Decimal {
	return g.StakeAmount.Mul(decimal.NewFromInt(2))
}
