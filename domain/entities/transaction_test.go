package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	t.Run("consistent credit", func(t *testing.T) {
		tx := &Transaction{
			AccountID:     1,
			Type:          TransactionTypePayout,
			Amount:        decimal.NewFromInt(8),
			BalanceBefore: decimal.NewFromInt(6),
			BalanceAfter:  decimal.NewFromInt(14),
		}
		assert.NoError(t, tx.Validate())
	})

	t.Run("consistent debit", func(t *testing.T) {
		tx := &Transaction{
			AccountID:     1,
			Type:          TransactionTypeStake,
			Amount:        decimal.NewFromInt(4),
			BalanceBefore: decimal.NewFromInt(10),
			BalanceAfter:  decimal.NewFromInt(6),
		}
		assert.NoError(t, tx.Validate())
	})

	t.Run("inconsistent arithmetic", func(t *testing.T) {
		tx := &Transaction{
			AccountID:     1,
			Type:          TransactionTypeStake,
			Amount:        decimal.NewFromInt(4),
			BalanceBefore: decimal.NewFromInt(10),
			BalanceAfter:  decimal.NewFromInt(7),
		}
		assert.Error(t, tx.Validate())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		tx := &Transaction{
			AccountID:     1,
			Type:          TransactionTypeDeposit,
			Amount:        decimal.Zero,
			BalanceBefore: decimal.NewFromInt(10),
			BalanceAfter:  decimal.NewFromInt(10),
		}
		assert.Error(t, tx.Validate())
	})
}

func TestTransactionType(t *testing.T) {
	credits := []TransactionType{
		TransactionTypeDeposit,
		TransactionTypeTransferIn,
		TransactionTypePayout,
		TransactionTypeWelcome,
	}
	for _, tt := range credits {
		assert.True(t, tt.IsCredit(), string(tt))
	}

	debits := []TransactionType{
		TransactionTypeWithdraw,
		TransactionTypeTransferOut,
		TransactionTypeStake,
	}
	for _, tt := range debits {
		assert.False(t, tt.IsCredit(), string(tt))
	}

	assert.True(t, TransactionTypeStake.IsGameRelated())
	assert.True(t, TransactionTypePayout.IsGameRelated())
	assert.False(t, TransactionTypeDeposit.IsGameRelated())
}
