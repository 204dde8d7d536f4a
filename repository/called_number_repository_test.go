package repository

import (
	"context"
	"testing"

	"bingohall/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalledNumberRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCalledNumberRepository(testDB.DB)
	ctx := context.Background()
	sessionID := setupSession(t, testDB)

	t.Run("append preserves call order", func(t *testing.T) {
		for _, n := range []int{42, 7, 19} {
			require.NoError(t, repo.Append(ctx, sessionID, n))
		}

		calls, err := repo.GetBySession(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, calls, 3)

		assert.Equal(t, 42, calls[0].Number)
		assert.Equal(t, 7, calls[1].Number)
		assert.Equal(t, 19, calls[2].Number)
		for _, call := range calls {
			assert.Equal(t, sessionID, call.GameSessionID)
			assert.False(t, call.CalledAt.IsZero())
		}
	})

	t.Run("duplicate number rejected", func(t *testing.T) {
		assert.Error(t, repo.Append(ctx, sessionID, 42))
	})

	t.Run("out-of-range number rejected", func(t *testing.T) {
		assert.Error(t, repo.Append(ctx, sessionID, 76))
		assert.Error(t, repo.Append(ctx, sessionID, 0))
	})

	t.Run("empty log", func(t *testing.T) {
		calls, err := repo.GetBySession(ctx, 999999)
		require.NoError(t, err)
		assert.Empty(t, calls)
	})
}
