package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_ValidateAmount(t *testing.T) {
	account := &Account{Balance: decimal.NewFromInt(10)}

	t.Run("accepts an affordable amount", func(t *testing.T) {
		assert.NoError(t, account.ValidateAmount(decimal.NewFromInt(10)))
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		err := account.ValidateAmount(decimal.Zero)
		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("rejects an amount over the balance", func(t *testing.T) {
		err := account.ValidateAmount(decimal.NewFromInt(11))
		assert.True(t, errors.Is(err, ErrInsufficientFunds))
	})
}

func TestAccount_BalanceHelpers(t *testing.T) {
	account := &Account{Balance: decimal.NewFromInt(10)}

	assert.True(t, account.HasPositiveBalance())
	assert.True(t, account.CanAfford(decimal.NewFromInt(10)))
	assert.False(t, account.CanAfford(decimal.NewFromInt(11)))
	assert.True(t, account.CalculateNewBalance(decimal.NewFromInt(-4)).Equal(decimal.NewFromInt(6)))

	broke := &Account{Balance: decimal.Zero}
	assert.False(t, broke.HasPositiveBalance())
}
