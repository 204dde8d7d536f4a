package application

import (
	"context"

	"bingohall/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations.
// Every balance- or session-mutating operation runs inside exactly one unit
// of work so multi-step changes commit or roll back together.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events
	Commit() error

	// Rollback rolls back the transaction and discards buffered events
	Rollback() error

	// Repository getters
	AccountRepository() interfaces.AccountRepository
	GameSessionRepository() interfaces.GameSessionRepository
	CardRepository() interfaces.CardRepository
	CalledNumberRepository() interfaces.CalledNumberRepository
	TransactionRepository() interfaces.TransactionRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
