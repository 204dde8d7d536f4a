package repository

import (
	"context"
	"testing"
	"time"

	"bingohall/domain/entities"
	"bingohall/repository/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameSessionRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	repo := NewGameSessionRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.CreateTestAccount(123456, "player")
	require.NoError(t, accountRepo.Create(ctx, account))

	t.Run("session not found", func(t *testing.T) {
		session, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("round trip with empty call history", func(t *testing.T) {
		created := testutil.CreateTestSession(account.ID, decimal.NewFromInt(4))
		require.NoError(t, repo.Create(ctx, created))
		assert.NotZero(t, created.ID)

		session, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, session)

		assert.Equal(t, account.ID, session.AccountID)
		assert.True(t, session.StakeAmount.Equal(decimal.NewFromInt(4)))
		assert.Equal(t, entities.GameSessionStatusCreated, session.Status)
		assert.Empty(t, session.CalledNumbers)
		assert.Nil(t, session.WinnerID)
		assert.Nil(t, session.EndedAt)
	})

	t.Run("non-positive stake rejected by schema", func(t *testing.T) {
		session := testutil.CreateTestSession(account.ID, decimal.Zero)
		assert.Error(t, repo.Create(ctx, session))
	})
}

func TestGameSessionRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	repo := NewGameSessionRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.CreateTestAccount(123456, "player")
	require.NoError(t, accountRepo.Create(ctx, account))

	session := testutil.CreateTestSession(account.ID, decimal.NewFromInt(4))
	require.NoError(t, repo.Create(ctx, session))

	t.Run("persists call history and settlement", func(t *testing.T) {
		session.Status = entities.GameSessionStatusWon
		session.CalledNumbers = []int{7, 12, 40}
		session.WinnerID = &account.ID
		now := time.Now().UTC()
		session.EndedAt = &now

		require.NoError(t, repo.Update(ctx, session))

		updated, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.GameSessionStatusWon, updated.Status)
		assert.Equal(t, []int{7, 12, 40}, updated.CalledNumbers)
		require.NotNil(t, updated.WinnerID)
		assert.Equal(t, account.ID, *updated.WinnerID)
		assert.NotNil(t, updated.EndedAt)
	})

	t.Run("unknown session", func(t *testing.T) {
		missing := &entities.GameSession{ID: 999999, Status: entities.GameSessionStatusPlaying}
		assert.Error(t, repo.Update(ctx, missing))
	})
}

func TestGameSessionRepository_GetActiveByAccount(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	accountRepo := NewAccountRepository(testDB.DB)
	repo := NewGameSessionRepository(testDB.DB)
	ctx := context.Background()

	account := testutil.CreateTestAccount(123456, "player")
	require.NoError(t, accountRepo.Create(ctx, account))

	active := testutil.CreateTestSession(account.ID, decimal.NewFromInt(2))
	require.NoError(t, repo.Create(ctx, active))

	settled := testutil.CreateTestSession(account.ID, decimal.NewFromInt(3))
	require.NoError(t, repo.Create(ctx, settled))
	settled.Status = entities.GameSessionStatusAbandoned
	now := time.Now().UTC()
	settled.EndedAt = &now
	require.NoError(t, repo.Update(ctx, settled))

	sessions, err := repo.GetActiveByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, active.ID, sessions[0].ID)
}
