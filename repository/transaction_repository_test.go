package repository

import (
	"context"
	"testing"

	"bingohall/domain/entities"
	"bingohall/repository/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	repo := NewTransactionRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.CreateTestAccount(123456, "player")
	require.NoError(t, accountRepo.Create(ctx, account))

	t.Run("record and read back", func(t *testing.T) {
		tx := &entities.Transaction{
			AccountID:     account.ID,
			Type:          entities.TransactionTypeStake,
			Amount:        decimal.NewFromInt(4),
			BalanceBefore: decimal.NewFromInt(10),
			BalanceAfter:  decimal.NewFromInt(6),
			Status:        entities.TransactionStatusCompleted,
			Reference:     "ref-1",
		}
		require.NoError(t, repo.Record(ctx, tx))
		assert.NotZero(t, tx.ID)
		assert.False(t, tx.CreatedAt.IsZero())

		transactions, err := repo.GetByAccount(ctx, account.ID, 10)
		require.NoError(t, err)
		require.Len(t, transactions, 1)

		got := transactions[0]
		assert.Equal(t, entities.TransactionTypeStake, got.Type)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(4)))
		assert.True(t, got.BalanceBefore.Equal(decimal.NewFromInt(10)))
		assert.True(t, got.BalanceAfter.Equal(decimal.NewFromInt(6)))
		assert.Equal(t, "ref-1", got.Reference)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			tx := &entities.Transaction{
				AccountID:     account.ID,
				Type:          entities.TransactionTypeDeposit,
				Amount:        decimal.NewFromInt(1),
				BalanceBefore: decimal.NewFromInt(int64(6 + i)),
				BalanceAfter:  decimal.NewFromInt(int64(7 + i)),
				Status:        entities.TransactionStatusCompleted,
			}
			require.NoError(t, repo.Record(ctx, tx))
		}

		transactions, err := repo.GetByAccount(ctx, account.ID, 2)
		require.NoError(t, err)
		assert.Len(t, transactions, 2)
	})

	t.Run("non-positive amount rejected by schema", func(t *testing.T) {
		tx := &entities.Transaction{
			AccountID:     account.ID,
			Type:          entities.TransactionTypeDeposit,
			Amount:        decimal.Zero,
			BalanceBefore: decimal.NewFromInt(10),
			BalanceAfter:  decimal.NewFromInt(10),
			Status:        entities.TransactionStatusCompleted,
		}
		assert.Error(t, repo.Record(ctx, tx))
	})
}
