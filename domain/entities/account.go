package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a registered player and their wallet balances
type Account struct {
	ID           int64           `db:"id"`
	TelegramID   int64           `db:"telegram_id"`
	Username     string          `db:"username"`
	Phone        string          `db:"phone"`
	Name         string          `db:"name"`
	Language     string          `db:"language"`
	Balance      decimal.Decimal `db:"balance"`
	BonusBalance decimal.Decimal `db:"bonus_balance"`
	ReferralCode string          `db:"referral_code"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// CanAfford checks if the account has sufficient balance for an amount
func (a *Account) CanAfford(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// HasPositiveBalance checks if the account has a positive balance
func (a *Account) HasPositiveBalance() bool {
	return a.Balance.IsPositive()
}

// ValidateAmount checks if an amount is valid (positive and affordable)
func (a *Account) ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	if !a.CanAfford(amount) {
		return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, a.Balance, amount)
	}
	return nil
}

// CalculateNewBalance calculates what the balance would be after a change
func (a *Account) CalculateNewBalance(changeAmount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(changeAmount)
}
