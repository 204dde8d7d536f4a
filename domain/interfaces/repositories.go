package interfaces

import (
	"context"

	"bingohall/domain/entities"
	"bingohall/events"

	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByID retrieves an account by its primary key
	GetByID(ctx context.Context, id int64) (*entities.Account, error)

	// GetByTelegramID retrieves an account by its Telegram identity
	GetByTelegramID(ctx context.Context, telegramID int64) (*entities.Account, error)

	// GetByTelegramIDForUpdate retrieves an account and locks its row for
	// the duration of the surrounding transaction
	GetByTelegramIDForUpdate(ctx context.Context, telegramID int64) (*entities.Account, error)

	// GetByIDForUpdate retrieves an account by primary key with a row lock
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Account, error)

	// GetByPhone retrieves an account by phone number
	GetByPhone(ctx context.Context, phone string) (*entities.Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *entities.Account) error

	// UpdateBalance updates an account's balance atomically
	UpdateBalance(ctx context.Context, id int64, newBalance decimal.Decimal) error

	// UpdateProfile updates name, phone and language
	UpdateProfile(ctx context.Context, account *entities.Account) error

	// GetTopByBalance returns accounts ordered by balance descending
	GetTopByBalance(ctx context.Context, limit int) ([]*entities.Account, error)
}

// GameSessionRepository defines the interface for game session data access
type GameSessionRepository interface {
	// Create creates a new session in state created
	Create(ctx context.Context, session *entities.GameSession) error

	// GetByID retrieves a session by its ID
	GetByID(ctx context.Context, id int64) (*entities.GameSession, error)

	// GetByIDForUpdate retrieves a session with a row lock so draws and
	// settlements on the same session serialize
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.GameSession, error)

	// Update persists status, called numbers, winner and end time
	Update(ctx context.Context, session *entities.GameSession) error

	// GetActiveByAccount returns non-terminal sessions for an account
	GetActiveByAccount(ctx context.Context, accountID int64) ([]*entities.GameSession, error)
}

// CardRepository defines the interface for card data access
type CardRepository interface {
	// Create attaches a generated card to its session
	Create(ctx context.Context, card *entities.Card) error

	// GetByID retrieves a card by its ID
	GetByID(ctx context.Context, id int64) (*entities.Card, error)

	// GetByIDForUpdate retrieves a card with a row lock
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Card, error)

	// GetBySession returns all cards of a session ordered by slot
	GetBySession(ctx context.Context, sessionID int64) ([]*entities.Card, error)

	// Update persists marked numbers and the winner flag
	Update(ctx context.Context, card *entities.Card) error
}

// CalledNumberRepository defines the interface for the per-session call log
type CalledNumberRepository interface {
	// Append records one called number for a session
	Append(ctx context.Context, sessionID int64, number int) error

	// GetBySession returns the call log in call order
	GetBySession(ctx context.Context, sessionID int64) ([]*entities.CalledNumber, error)
}

// TransactionRepository defines the interface for the wallet audit trail
type TransactionRepository interface {
	// Record creates a new transaction entry
	Record(ctx context.Context, transaction *entities.Transaction) error

	// GetByAccount returns recent transactions for an account
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Transaction, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
