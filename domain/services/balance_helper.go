package services

import (
	"context"
	"fmt"

	"bingohall/domain/entities"
	"bingohall/domain/interfaces"
	"bingohall/events"

	"github.com/google/uuid"
)

// recordBalanceChange validates and persists a wallet transaction and
// publishes the matching balance change event.
func recordBalanceChange(ctx context.Context, repo interfaces.TransactionRepository, publisher interfaces.EventPublisher, transaction *entities.Transaction) error {
	if transaction.Reference == "" {
		transaction.Reference = uuid.NewString()
	}
	if transaction.Status == "" {
		transaction.Status = entities.TransactionStatusCompleted
	}

	if err := transaction.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	if err := repo.Record(ctx, transaction); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	change := transaction.BalanceAfter.Sub(transaction.BalanceBefore)
	if err := publisher.Publish(events.BalanceChangeEvent{
		AccountID:       transaction.AccountID,
		OldBalance:      transaction.BalanceBefore,
		NewBalance:      transaction.BalanceAfter,
		TransactionType: transaction.Type,
		ChangeAmount:    change,
	}); err != nil {
		return fmt.Errorf("failed to publish balance change event: %w", err)
	}

	return nil
}
