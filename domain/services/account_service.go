package services

import (
	"context"
	"fmt"

	"bingohall/config"
	"bingohall/domain/entities"
	"bingohall/domain/interfaces"
	"bingohall/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService struct {
	accountRepo     interfaces.AccountRepository
	transactionRepo interfaces.TransactionRepository
	eventPublisher  interfaces.EventPublisher
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo interfaces.AccountRepository, transactionRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher) interfaces.AccountService {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
	}
}

// Register creates a new account credited with the welcome bonus
func (s *accountService) Register(ctx context.Context, telegramID int64, username, phone, name string) (*entities.Account, error) {
	if telegramID == 0 || username == "" || phone == "" {
		return nil, fmt.Errorf("%w: telegram id, username and phone are required", entities.ErrInvalidRequest)
	}
	if name == "" {
		name = username
	}

	existing, err := s.accountRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: telegram id %d", entities.ErrAlreadyRegistered, telegramID)
	}

	bonus := config.Get().WelcomeBonus
	account := &entities.Account{
		TelegramID:   telegramID,
		Username:     username,
		Phone:        phone,
		Name:         name,
		Language:     "en",
		Balance:      bonus,
		ReferralCode: fmt.Sprintf("ref_%d_%s", telegramID, uuid.NewString()[:8]),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if bonus.IsPositive() {
		if err := recordBalanceChange(ctx, s.transactionRepo, s.eventPublisher, &entities.Transaction{
			AccountID:     account.ID,
			Type:          entities.TransactionTypeWelcome,
			Amount:        bonus,
			BalanceBefore: decimal.Zero,
			BalanceAfter:  bonus,
		}); err != nil {
			return nil, err
		}
	}

	if err := s.eventPublisher.Publish(events.AccountCreatedEvent{
		AccountID:      account.ID,
		TelegramID:     telegramID,
		Username:       username,
		InitialBalance: bonus,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish account created event: %w", err)
	}

	return account, nil
}

// GetByTelegramID retrieves an account profile
func (s *accountService) GetByTelegramID(ctx context.Context, telegramID int64) (*entities.Account, error) {
	account, err := s.accountRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, telegramID)
	}
	return account, nil
}

// UpdateProfile updates the provided fields, leaving nil fields untouched
func (s *accountService) UpdateProfile(ctx context.Context, telegramID int64, name, phone, language *string) (*entities.Account, error) {
	account, err := s.accountRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, telegramID)
	}

	if name != nil {
		account.Name = *name
	}
	if phone != nil {
		account.Phone = *phone
	}
	if language != nil {
		account.Language = *language
	}

	if err := s.accountRepo.UpdateProfile(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}
