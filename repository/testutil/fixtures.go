package testutil

import (
	"fmt"

	"bingohall/domain/entities"

	"github.com/shopspring/decimal"
)

// CreateTestAccount returns an account fixture ready to be persisted
func CreateTestAccount(telegramID int64, username string) *entities.Account {
	return &entities.Account{
		TelegramID:   telegramID,
		Username:     username,
		Phone:        fmt.Sprintf("+1%010d", telegramID),
		Name:         username,
		Language:     "en",
		Balance:      decimal.NewFromInt(10),
		ReferralCode: fmt.Sprintf("ref_%d_test", telegramID),
	}
}

// CreateTestSession returns a session fixture for the given account
func CreateTestSession(accountID int64, stake decimal.Decimal) *entities.GameSession {
	return &entities.GameSession{
		AccountID:     accountID,
		StakeAmount:   stake,
		Status:        entities.GameSessionStatusCreated,
		CalledNumbers: []int{},
	}
}

// CreateTestCard returns a card fixture covering numbers 1..25
func CreateTestCard(sessionID int64, slot int) *entities.Card {
	numbers := make([]int, entities.CardSize)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return &entities.Card{
		GameSessionID: sessionID,
		SlotIndex:     slot,
		Numbers:       numbers,
		Marked:        []int{},
	}
}
