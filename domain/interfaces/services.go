package interfaces

import (
	"context"

	"bingohall/domain/entities"

	"github.com/shopspring/decimal"
)

// NumberSource yields uniform random values for card generation and draws.
// *rand.Rand satisfies it; tests inject a seeded source.
type NumberSource interface {
	Intn(n int) int
	Perm(n int) []int
}

// GameService defines the interface for game session operations
type GameService interface {
	// CreateSession debits the stake and creates a session atomically
	CreateSession(ctx context.Context, telegramID int64, stake decimal.Decimal) (*entities.GameSession, error)

	// SelectCards generates 1 or 2 cards and transitions the session to playing
	SelectCards(ctx context.Context, sessionID int64, numCards int) ([]*entities.Card, error)

	// DrawNumber calls the next random undrawn number for the session
	DrawNumber(ctx context.Context, sessionID int64) (*entities.DrawResult, error)

	// MarkNumber marks a number on a card; idempotent for already-marked numbers
	MarkNumber(ctx context.Context, cardID int64, number int) ([]int, error)

	// CheckBingo evaluates a card and settles the session exactly once on a win
	CheckBingo(ctx context.Context, sessionID, cardID int64) (*entities.BingoResult, error)

	// GetSession returns a session with its cards
	GetSession(ctx context.Context, sessionID int64) (*entities.GameSessionDetail, error)

	// AbandonSession moves a non-terminal session to the abandoned state
	AbandonSession(ctx context.Context, sessionID int64) (*entities.GameSession, error)
}

// AccountService defines the interface for account operations
type AccountService interface {
	// Register creates a new account with the welcome bonus
	Register(ctx context.Context, telegramID int64, username, phone, name string) (*entities.Account, error)

	// GetByTelegramID retrieves an account profile
	GetByTelegramID(ctx context.Context, telegramID int64) (*entities.Account, error)

	// UpdateProfile updates name, phone and language preference
	UpdateProfile(ctx context.Context, telegramID int64, name, phone, language *string) (*entities.Account, error)
}

// WalletService defines the interface for wallet operations
type WalletService interface {
	// Deposit credits an account and records a completed transaction
	Deposit(ctx context.Context, telegramID int64, amount decimal.Decimal, method string) (*entities.Transaction, error)

	// Withdraw debits an account and records a pending transaction
	Withdraw(ctx context.Context, telegramID int64, amount decimal.Decimal, method string) (*entities.Transaction, error)

	// Transfer moves funds from one account to another, addressed by phone
	Transfer(ctx context.Context, fromTelegramID int64, toPhone string, amount decimal.Decimal) error

	// History returns recent transactions, optionally game entries only
	History(ctx context.Context, telegramID int64, limit int, gameOnly bool) ([]*entities.Transaction, error)

	// Leaderboard returns the top accounts by balance, empty wallets omitted
	Leaderboard(ctx context.Context, limit int) ([]*entities.Account, error)
}
