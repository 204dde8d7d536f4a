package services

import (
	"context"
	"fmt"

	"bingohall/domain/entities"
	"bingohall/domain/interfaces"

	"github.com/shopspring/decimal"
)

type walletService struct {
	accountRepo     interfaces.AccountRepository
	transactionRepo interfaces.TransactionRepository
	eventPublisher  interfaces.EventPublisher
}

// NewWalletService creates a new wallet service
func NewWalletService(accountRepo interfaces.AccountRepository, transactionRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher) interfaces.WalletService {
	return &walletService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
	}
}

// Deposit credits an account and records a completed transaction
func (s *walletService) Deposit(ctx context.Context, telegramID int64, amount decimal.Decimal, method string) (*entities.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", entities.ErrInvalidRequest)
	}

	account, err := s.accountRepo.GetByTelegramIDForUpdate(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, telegramID)
	}

	newBalance := account.CalculateNewBalance(amount)
	if err := s.accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to credit deposit: %w", err)
	}

	transaction := &entities.Transaction{
		AccountID:     account.ID,
		Type:          entities.TransactionTypeDeposit,
		Amount:        amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Method:        method,
		Status:        entities.TransactionStatusCompleted,
	}
	if err := recordBalanceChange(ctx, s.transactionRepo, s.eventPublisher, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// Withdraw debits an account and records a pending transaction. The funds
// leave the balance immediately; the payout itself settles out of band.
func (s *walletService) Withdraw(ctx context.Context, telegramID int64, amount decimal.Decimal, method string) (*entities.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", entities.ErrInvalidRequest)
	}

	account, err := s.accountRepo.GetByTelegramIDForUpdate(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, telegramID)
	}
	if err := account.ValidateAmount(amount); err != nil {
		return nil, err
	}

	newBalance := account.Balance.Sub(amount)
	if err := s.accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to debit withdrawal: %w", err)
	}

	transaction := &entities.Transaction{
		AccountID:     account.ID,
		Type:          entities.TransactionTypeWithdraw,
		Amount:        amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Method:        method,
		Status:        entities.TransactionStatusPending,
	}
	if err := recordBalanceChange(ctx, s.transactionRepo, s.eventPublisher, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// Transfer moves funds between two accounts as one atomic double entry.
// Both rows are locked in ascending id order; two opposing transfers
// acquire their locks in the same order instead of deadlocking.
func (s *walletService) Transfer(ctx context.Context, fromTelegramID int64, toPhone string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: transfer amount must be positive", entities.ErrInvalidRequest)
	}

	sender, err := s.accountRepo.GetByTelegramID(ctx, fromTelegramID)
	if err != nil {
		return fmt.Errorf("failed to get sender: %w", err)
	}
	if sender == nil {
		return fmt.Errorf("%w: sender %d", entities.ErrNotFound, fromTelegramID)
	}
	if !sender.CanAfford(amount) {
		return fmt.Errorf("%w: balance %s, transfer %s", entities.ErrInsufficientFunds, sender.Balance, amount)
	}

	recipient, err := s.accountRepo.GetByPhone(ctx, toPhone)
	if err != nil {
		return fmt.Errorf("failed to get recipient: %w", err)
	}
	if recipient == nil {
		return fmt.Errorf("%w: recipient phone %s", entities.ErrNotFound, toPhone)
	}
	if recipient.ID == sender.ID {
		return fmt.Errorf("%w: cannot transfer to yourself", entities.ErrInvalidRequest)
	}

	sender, recipient, err = s.lockPair(ctx, sender.ID, recipient.ID)
	if err != nil {
		return err
	}

	// Re-validate against the locked balance; it may have moved since the read above
	if err := sender.ValidateAmount(amount); err != nil {
		return err
	}

	senderBalance := sender.Balance.Sub(amount)
	if err := s.accountRepo.UpdateBalance(ctx, sender.ID, senderBalance); err != nil {
		return fmt.Errorf("failed to debit sender: %w", err)
	}
	recipientBalance := recipient.CalculateNewBalance(amount)
	if err := s.accountRepo.UpdateBalance(ctx, recipient.ID, recipientBalance); err != nil {
		return fmt.Errorf("failed to credit recipient: %w", err)
	}

	if err := recordBalanceChange(ctx, s.transactionRepo, s.eventPublisher, &entities.Transaction{
		AccountID:     sender.ID,
		Type:          entities.TransactionTypeTransferOut,
		Amount:        amount,
		BalanceBefore: sender.Balance,
		BalanceAfter:  senderBalance,
		Method:        fmt.Sprintf("to_%s", toPhone),
	}); err != nil {
		return err
	}
	if err := recordBalanceChange(ctx, s.transactionRepo, s.eventPublisher, &entities.Transaction{
		AccountID:     recipient.ID,
		Type:          entities.TransactionTypeTransferIn,
		Amount:        amount,
		BalanceBefore: recipient.Balance,
		BalanceAfter:  recipientBalance,
		Method:        fmt.Sprintf("from_%s", sender.Phone),
	}); err != nil {
		return err
	}

	return nil
}

// lockPair locks two account rows in ascending id order and returns them
// in the order the ids were passed.
func (s *walletService) lockPair(ctx context.Context, firstID, secondID int64) (*entities.Account, *entities.Account, error) {
	lowID, highID := firstID, secondID
	if lowID > highID {
		lowID, highID = highID, lowID
	}

	low, err := s.accountRepo.GetByIDForUpdate(ctx, lowID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock account %d: %w", lowID, err)
	}
	if low == nil {
		return nil, nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, lowID)
	}
	high, err := s.accountRepo.GetByIDForUpdate(ctx, highID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock account %d: %w", highID, err)
	}
	if high == nil {
		return nil, nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, highID)
	}

	if low.ID == firstID {
		return low, high, nil
	}
	return high, low, nil
}

// History returns recent transactions for an account, newest first. With
// gameOnly set, only stake and payout entries are returned.
func (s *walletService) History(ctx context.Context, telegramID int64, limit int, gameOnly bool) ([]*entities.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	account, err := s.accountRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, telegramID)
	}

	transactions, err := s.transactionRepo.GetByAccount(ctx, account.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	if !gameOnly {
		return transactions, nil
	}

	filtered := make([]*entities.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if transaction.Type.IsGameRelated() {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}

// Leaderboard returns the top accounts by balance. Empty wallets carry no
// rank and are omitted.
func (s *walletService) Leaderboard(ctx context.Context, limit int) ([]*entities.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.GetTopByBalance(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	ranked := make([]*entities.Account, 0, len(accounts))
	for _, account := range accounts {
		if account.HasPositiveBalance() {
			ranked = append(ranked, account)
		}
	}
	return ranked, nil
}
