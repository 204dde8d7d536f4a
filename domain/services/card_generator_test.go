package services

import (
	"errors"
	"math/rand"
	"testing"

	"bingohall/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardGenerator_Generate(t *testing.T) {
	gen := NewCardGenerator(rand.New(rand.NewSource(42)))

	t.Run("produces 25 distinct numbers in range", func(t *testing.T) {
		card, err := gen.Generate(1)
		require.NoError(t, err)

		assert.Len(t, card.Numbers, entities.CardSize)
		assert.Equal(t, 1, card.SlotIndex)
		assert.Empty(t, card.Marked)

		seen := make(map[int]struct{})
		for _, n := range card.Numbers {
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, entities.NumberUniverseSize)
			_, dup := seen[n]
			assert.False(t, dup, "number %d appears twice", n)
			seen[n] = struct{}{}
		}
	})

	t.Run("independent cards may overlap but are independently random", func(t *testing.T) {
		first, err := gen.Generate(1)
		require.NoError(t, err)
		second, err := gen.Generate(2)
		require.NoError(t, err)

		assert.NotEqual(t, first.Numbers, second.Numbers)
		assert.Equal(t, 2, second.SlotIndex)
	})

	t.Run("grid is 5x5 in generation order", func(t *testing.T) {
		card, err := gen.Generate(1)
		require.NoError(t, err)

		grid := card.Grid()
		require.Len(t, grid, 5)
		for row := 0; row < 5; row++ {
			require.Len(t, grid[row], 5)
			assert.Equal(t, card.Numbers[row*5:(row+1)*5], grid[row])
		}
	})

	t.Run("rejects invalid slot", func(t *testing.T) {
		for _, slot := range []int{0, 3, -1} {
			_, err := gen.Generate(slot)
			assert.True(t, errors.Is(err, entities.ErrInvalidRequest), "slot %d", slot)
		}
	})

	t.Run("deterministic for a seeded source", func(t *testing.T) {
		a, err := NewCardGenerator(rand.New(rand.NewSource(7))).Generate(1)
		require.NoError(t, err)
		b, err := NewCardGenerator(rand.New(rand.NewSource(7))).Generate(1)
		require.NoError(t, err)
		assert.Equal(t, a.Numbers, b.Numbers)
	})
}
