package repository

import (
	"context"
	"fmt"

	"bingohall/database"
	"bingohall/domain/entities"
)

// TransactionRepository implements the wallet audit trail over postgres
type TransactionRepository struct {
	q Queryable
}

// NewTransactionRepository creates a new transaction repository on the pool
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepository creates a new transaction repository inside a transaction
func newTransactionRepository(tx Queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Record creates a new transaction entry
func (r *TransactionRepository) Record(ctx context.Context, transaction *entities.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, transaction_type, amount, balance_before, balance_after, method, status, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		transaction.AccountID,
		transaction.Type,
		transaction.Amount,
		transaction.BalanceBefore,
		transaction.BalanceAfter,
		transaction.Method,
		transaction.Status,
		transaction.Reference,
	).Scan(&transaction.ID, &transaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record transaction for account %d: %w", transaction.AccountID, err)
	}

	return nil
}

// GetByAccount returns recent transactions for an account
func (r *TransactionRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, account_id, transaction_type, amount, balance_before, balance_after,
		       COALESCE(method, ''), status, COALESCE(reference, ''), created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var transactions []*entities.Transaction
	for rows.Next() {
		var transaction entities.Transaction
		err := rows.Scan(
			&transaction.ID,
			&transaction.AccountID,
			&transaction.Type,
			&transaction.Amount,
			&transaction.BalanceBefore,
			&transaction.BalanceAfter,
			&transaction.Method,
			&transaction.Status,
			&transaction.Reference,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}
