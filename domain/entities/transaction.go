package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a balance-mutating wallet operation
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdraw    TransactionType = "withdraw"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeStake       TransactionType = "stake"
	TransactionTypePayout      TransactionType = "payout"
	TransactionTypeWelcome     TransactionType = "welcome_bonus"
)

// IsCredit returns true for types that increase the balance
func (t TransactionType) IsCredit() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeTransferIn, TransactionTypePayout, TransactionTypeWelcome:
		return true
	}
	return false
}

// IsGameRelated returns true for types produced by the game engine
func (t TransactionType) IsGameRelated() bool {
	return t == TransactionTypeStake || t == TransactionTypePayout
}

// TransactionStatus tracks settlement of a wallet operation
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is the audit record for one balance change
type Transaction struct {
	ID            int64             `db:"id"`
	AccountID     int64             `db:"account_id"`
	Type          TransactionType   `db:"transaction_type"`
	Amount        decimal.Decimal   `db:"amount"`
	BalanceBefore decimal.Decimal   `db:"balance_before"`
	BalanceAfter  decimal.Decimal   `db:"balance_after"`
	Method        string            `db:"method"`
	Status        TransactionStatus `db:"status"`
	Reference     string            `db:"reference"`
	CreatedAt     time.Time         `db:"created_at"`
}

// Validate performs basic consistency checks on the transaction
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return errors.New("transaction amount must be positive")
	}

	expected := t.BalanceBefore.Sub(t.Amount)
	if t.Type.IsCredit() {
		expected = t.BalanceBefore.Add(t.Amount)
	}
	if !t.BalanceAfter.Equal(expected) {
		return errors.New("balance calculation is inconsistent")
	}

	return nil
}
