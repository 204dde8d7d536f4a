package services

import (
	"context"
	"testing"

	"bingohall/config"
	"bingohall/domain/entities"
	"bingohall/domain/testhelpers"
	"bingohall/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Test constants for consistent test data
const (
	TestAccountID  = int64(100)
	TestTelegramID = int64(5551234)
	TestSessionID  = int64(1)
	TestCardID     = int64(10)
)

// TestMocks aggregates all repository mocks for testing
type TestMocks struct {
	AccountRepo      *testhelpers.MockAccountRepository
	SessionRepo      *testhelpers.MockGameSessionRepository
	CardRepo         *testhelpers.MockCardRepository
	CalledNumberRepo *testhelpers.MockCalledNumberRepository
	TransactionRepo  *testhelpers.MockTransactionRepository
	EventPublisher   *testhelpers.MockEventPublisher
}

// NewTestMocks creates a new set of mocks
func NewTestMocks() *TestMocks {
	return &TestMocks{
		AccountRepo:      &testhelpers.MockAccountRepository{},
		SessionRepo:      &testhelpers.MockGameSessionRepository{},
		CardRepo:         &testhelpers.MockCardRepository{},
		CalledNumberRepo: &testhelpers.MockCalledNumberRepository{},
		TransactionRepo:  &testhelpers.MockTransactionRepository{},
		EventPublisher:   &testhelpers.MockEventPublisher{},
	}
}

// AssertAllExpectations verifies all mock expectations were met
func (m *TestMocks) AssertAllExpectations(t *testing.T) {
	m.AccountRepo.AssertExpectations(t)
	m.SessionRepo.AssertExpectations(t)
	m.CardRepo.AssertExpectations(t)
	m.CalledNumberRepo.AssertExpectations(t)
	m.TransactionRepo.AssertExpectations(t)
	m.EventPublisher.AssertExpectations(t)
}

// MockHelper provides common mock setup patterns
type MockHelper struct {
	mocks *TestMocks
	ctx   context.Context
}

// NewMockHelper creates a new mock helper
func NewMockHelper(mocks *TestMocks) *MockHelper {
	return &MockHelper{
		mocks: mocks,
		ctx:   context.Background(),
	}
}

// ExpectAccount sets up an unlocked account lookup by telegram id
func (h *MockHelper) ExpectAccount(telegramID int64, account *entities.Account) {
	h.mocks.AccountRepo.On("GetByTelegramID", mock.Anything, telegramID).Return(account, nil)
}

// ExpectLockedAccount sets up a locked account lookup by telegram id
func (h *MockHelper) ExpectLockedAccount(telegramID int64, account *entities.Account) {
	h.mocks.AccountRepo.On("GetByTelegramIDForUpdate", mock.Anything, telegramID).Return(account, nil)
}

// ExpectLockedSession sets up a locked session lookup
func (h *MockHelper) ExpectLockedSession(sessionID int64, session *entities.GameSession) {
	h.mocks.SessionRepo.On("GetByIDForUpdate", mock.Anything, sessionID).Return(session, nil)
}

// ExpectBalanceUpdate sets up an account balance update expectation
func (h *MockHelper) ExpectBalanceUpdate(accountID int64, newBalance decimal.Decimal) {
	h.mocks.AccountRepo.On("UpdateBalance", mock.Anything, accountID, mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(newBalance)
	})).Return(nil)
}

// ExpectTransactionRecord sets up a transaction record expectation by type
func (h *MockHelper) ExpectTransactionRecord(accountID int64, transactionType entities.TransactionType) {
	h.mocks.TransactionRepo.On("Record", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.AccountID == accountID && tx.Type == transactionType
	})).Return(nil)
}

// ExpectEventPublish sets up an event publisher expectation by event type
func (h *MockHelper) ExpectEventPublish(eventType events.EventType) {
	h.mocks.EventPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		return e.Type() == eventType
	})).Return(nil)
}

// SetupTestConfig configures the test environment
func SetupTestConfig(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)
}

// testAccount returns an account with the given balance
func testAccount(balance decimal.Decimal) *entities.Account {
	return &entities.Account{
		ID:         TestAccountID,
		TelegramID: TestTelegramID,
		Username:   "player",
		Phone:      "+10000000000",
		Name:       "Player",
		Language:   "en",
		Balance:    balance,
	}
}

// testPlayingSession returns a playing session with the given stake
func testPlayingSession(stake decimal.Decimal) *entities.GameSession {
	return &entities.GameSession{
		ID:            TestSessionID,
		AccountID:     TestAccountID,
		StakeAmount:   stake,
		Status:        entities.GameSessionStatusPlaying,
		CalledNumbers: []int{},
	}
}

// testCard returns a card covering numbers 1..25 with the given marks
func testCard(marked []int) *entities.Card {
	numbers := make([]int, entities.CardSize)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return &entities.Card{
		ID:            TestCardID,
		GameSessionID: TestSessionID,
		SlotIndex:     1,
		Numbers:       numbers,
		Marked:        marked,
	}
}
