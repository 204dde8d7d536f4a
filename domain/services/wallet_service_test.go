package services

import (
	"context"
	"errors"
	"testing"

	"bingohall/domain/entities"
	"bingohall/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWalletService(mocks *TestMocks) *walletService {
	return NewWalletService(mocks.AccountRepo, mocks.TransactionRepo, mocks.EventPublisher).(*walletService)
}

func TestWalletService_Deposit(t *testing.T) {
	ctx := context.Background()

	t.Run("credits balance and records completed transaction", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		helper.ExpectLockedAccount(TestTelegramID, testAccount(decimal.NewFromInt(10)))
		helper.ExpectBalanceUpdate(TestAccountID, decimal.NewFromInt(35))
		mocks.TransactionRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
			return tx.Type == entities.TransactionTypeDeposit &&
				tx.Status == entities.TransactionStatusCompleted &&
				tx.Method == "telebirr" &&
				tx.Reference != ""
		})).Return(nil)
		helper.ExpectEventPublish(events.EventTypeBalanceChange)

		transaction, err := svc.Deposit(ctx, TestTelegramID, decimal.NewFromInt(25), "telebirr")
		require.NoError(t, err)
		assert.True(t, transaction.BalanceAfter.Equal(decimal.NewFromInt(35)))

		mocks.AssertAllExpectations(t)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestWalletService(mocks)

		_, err := svc.Deposit(ctx, TestTelegramID, decimal.Zero, "telebirr")
		assert.True(t, errors.Is(err, entities.ErrInvalidRequest))
	})
}

func TestWalletService_Withdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("debits balance and records pending transaction", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		helper.ExpectLockedAccount(TestTelegramID, testAccount(decimal.NewFromInt(50)))
		helper.ExpectBalanceUpdate(TestAccountID, decimal.NewFromInt(30))
		mocks.TransactionRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
			return tx.Type == entities.TransactionTypeWithdraw &&
				tx.Status == entities.TransactionStatusPending
		})).Return(nil)
		helper.ExpectEventPublish(events.EventTypeBalanceChange)

		transaction, err := svc.Withdraw(ctx, TestTelegramID, decimal.NewFromInt(20), "cbe")
		require.NoError(t, err)
		assert.Equal(t, entities.TransactionStatusPending, transaction.Status)

		mocks.AssertAllExpectations(t)
	})

	t.Run("rejects insufficient funds", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		helper.ExpectLockedAccount(TestTelegramID, testAccount(decimal.NewFromInt(5)))

		_, err := svc.Withdraw(ctx, TestTelegramID, decimal.NewFromInt(20), "cbe")
		assert.True(t, errors.Is(err, entities.ErrInsufficientFunds))

		mocks.AccountRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWalletService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves funds as a double entry", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		sender := testAccount(decimal.NewFromInt(50))
		recipient := &entities.Account{
			ID:         TestAccountID + 1,
			TelegramID: TestTelegramID + 1,
			Username:   "friend",
			Phone:      "+19999999999",
			Balance:    decimal.NewFromInt(5),
		}

		helper.ExpectAccount(TestTelegramID, sender)
		mocks.AccountRepo.On("GetByPhone", mock.Anything, recipient.Phone).Return(recipient, nil)
		mocks.AccountRepo.On("GetByIDForUpdate", mock.Anything, sender.ID).Return(sender, nil)
		mocks.AccountRepo.On("GetByIDForUpdate", mock.Anything, recipient.ID).Return(recipient, nil)
		helper.ExpectBalanceUpdate(sender.ID, decimal.NewFromInt(30))
		helper.ExpectBalanceUpdate(recipient.ID, decimal.NewFromInt(25))
		mocks.TransactionRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
			return tx.AccountID == sender.ID &&
				tx.Type == entities.TransactionTypeTransferOut &&
				tx.Method == "to_+19999999999"
		})).Return(nil)
		mocks.TransactionRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
			return tx.AccountID == recipient.ID &&
				tx.Type == entities.TransactionTypeTransferIn &&
				tx.Method == "from_+10000000000"
		})).Return(nil)
		mocks.EventPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
			return e.Type() == events.EventTypeBalanceChange
		})).Return(nil).Times(2)

		err := svc.Transfer(ctx, TestTelegramID, recipient.Phone, decimal.NewFromInt(20))
		require.NoError(t, err)

		mocks.AssertAllExpectations(t)
	})

	t.Run("locks both rows in ascending id order", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		sender := testAccount(decimal.NewFromInt(50))
		recipient := &entities.Account{
			ID:         TestAccountID - 60,
			TelegramID: TestTelegramID + 1,
			Username:   "friend",
			Phone:      "+19999999999",
			Balance:    decimal.NewFromInt(5),
		}

		var lockOrder []int64
		helper.ExpectAccount(TestTelegramID, sender)
		mocks.AccountRepo.On("GetByPhone", mock.Anything, recipient.Phone).Return(recipient, nil)
		mocks.AccountRepo.On("GetByIDForUpdate", mock.Anything, sender.ID).Run(func(args mock.Arguments) {
			lockOrder = append(lockOrder, args.Get(1).(int64))
		}).Return(sender, nil)
		mocks.AccountRepo.On("GetByIDForUpdate", mock.Anything, recipient.ID).Run(func(args mock.Arguments) {
			lockOrder = append(lockOrder, args.Get(1).(int64))
		}).Return(recipient, nil)
		helper.ExpectBalanceUpdate(sender.ID, decimal.NewFromInt(30))
		helper.ExpectBalanceUpdate(recipient.ID, decimal.NewFromInt(25))
		helper.ExpectTransactionRecord(sender.ID, entities.TransactionTypeTransferOut)
		helper.ExpectTransactionRecord(recipient.ID, entities.TransactionTypeTransferIn)
		mocks.EventPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
			return e.Type() == events.EventTypeBalanceChange
		})).Return(nil).Times(2)

		// The recipient row has the lower id and must be locked first
		err := svc.Transfer(ctx, TestTelegramID, recipient.Phone, decimal.NewFromInt(20))
		require.NoError(t, err)
		assert.Equal(t, []int64{recipient.ID, sender.ID}, lockOrder)
	})

	t.Run("rejects transfer to self", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		sender := testAccount(decimal.NewFromInt(50))
		helper.ExpectAccount(TestTelegramID, sender)
		mocks.AccountRepo.On("GetByPhone", mock.Anything, sender.Phone).Return(sender, nil)

		err := svc.Transfer(ctx, TestTelegramID, sender.Phone, decimal.NewFromInt(20))
		assert.True(t, errors.Is(err, entities.ErrInvalidRequest))
	})

	t.Run("rejects insufficient funds before recipient lookup", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		helper.ExpectAccount(TestTelegramID, testAccount(decimal.NewFromInt(5)))

		err := svc.Transfer(ctx, TestTelegramID, "+19999999999", decimal.NewFromInt(20))
		assert.True(t, errors.Is(err, entities.ErrInsufficientFunds))

		mocks.AccountRepo.AssertNotCalled(t, "GetByPhone", mock.Anything, mock.Anything)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		helper.ExpectAccount(TestTelegramID, testAccount(decimal.NewFromInt(50)))
		mocks.AccountRepo.On("GetByPhone", mock.Anything, "+19999999999").Return(nil, nil)

		err := svc.Transfer(ctx, TestTelegramID, "+19999999999", decimal.NewFromInt(20))
		assert.True(t, errors.Is(err, entities.ErrNotFound))
	})
}

func TestWalletService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("returns recent activity with the default limit", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		transactions := []*entities.Transaction{
			{AccountID: TestAccountID, Type: entities.TransactionTypePayout},
			{AccountID: TestAccountID, Type: entities.TransactionTypeDeposit},
		}
		helper.ExpectAccount(TestTelegramID, testAccount(decimal.NewFromInt(10)))
		mocks.TransactionRepo.On("GetByAccount", mock.Anything, TestAccountID, 20).Return(transactions, nil)

		got, err := svc.History(ctx, TestTelegramID, 0, false)
		require.NoError(t, err)
		assert.Equal(t, transactions, got)
	})

	t.Run("filters to game entries", func(t *testing.T) {
		mocks := NewTestMocks()
		helper := NewMockHelper(mocks)
		svc := newTestWalletService(mocks)

		transactions := []*entities.Transaction{
			{AccountID: TestAccountID, Type: entities.TransactionTypeStake},
			{AccountID: TestAccountID, Type: entities.TransactionTypeDeposit},
			{AccountID: TestAccountID, Type: entities.TransactionTypePayout},
		}
		helper.ExpectAccount(TestTelegramID, testAccount(decimal.NewFromInt(10)))
		mocks.TransactionRepo.On("GetByAccount", mock.Anything, TestAccountID, 5).Return(transactions, nil)

		got, err := svc.History(ctx, TestTelegramID, 5, true)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, entities.TransactionTypeStake, got[0].Type)
		assert.Equal(t, entities.TransactionTypePayout, got[1].Type)
	})

	t.Run("unknown account", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestWalletService(mocks)

		mocks.AccountRepo.On("GetByTelegramID", mock.Anything, TestTelegramID).Return(nil, nil)

		_, err := svc.History(ctx, TestTelegramID, 0, false)
		assert.True(t, errors.Is(err, entities.ErrNotFound))
	})
}

func TestWalletService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults the limit to 50", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestWalletService(mocks)

		accounts := []*entities.Account{testAccount(decimal.NewFromInt(100))}
		mocks.AccountRepo.On("GetTopByBalance", mock.Anything, 50).Return(accounts, nil)

		got, err := svc.Leaderboard(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, accounts, got)
	})

	t.Run("passes an explicit limit through", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestWalletService(mocks)

		mocks.AccountRepo.On("GetTopByBalance", mock.Anything, 10).Return([]*entities.Account{}, nil)

		_, err := svc.Leaderboard(ctx, 10)
		require.NoError(t, err)
	})

	t.Run("omits empty wallets", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestWalletService(mocks)

		funded := testAccount(decimal.NewFromInt(100))
		broke := &entities.Account{ID: TestAccountID + 1, Username: "broke", Balance: decimal.Zero}
		mocks.AccountRepo.On("GetTopByBalance", mock.Anything, 50).Return([]*entities.Account{funded, broke}, nil)

		got, err := svc.Leaderboard(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, funded, got[0])
	})
}
