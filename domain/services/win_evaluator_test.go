package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullCard() []int {
	numbers := make([]int, 25)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}

func TestWinEvaluator_IsBingo(t *testing.T) {
	evaluator := NewWinEvaluator()

	t.Run("fully marked card wins", func(t *testing.T) {
		numbers := fullCard()
		assert.True(t, evaluator.IsBingo(numbers, numbers))
	})

	t.Run("order does not matter", func(t *testing.T) {
		numbers := fullCard()
		marked := make([]int, 25)
		for i, n := range numbers {
			marked[24-i] = n
		}
		assert.True(t, evaluator.IsBingo(numbers, marked))
	})

	t.Run("24 marks is not a win", func(t *testing.T) {
		numbers := fullCard()
		assert.False(t, evaluator.IsBingo(numbers, numbers[:24]))
	})

	t.Run("empty marks is not a win", func(t *testing.T) {
		assert.False(t, evaluator.IsBingo(fullCard(), nil))
	})

	t.Run("duplicate marks do not inflate the count", func(t *testing.T) {
		numbers := fullCard()
		marked := append([]int{}, numbers[:24]...)
		marked = append(marked, numbers[0])
		assert.False(t, evaluator.IsBingo(numbers, marked))
	})

	t.Run("marks outside the card do not win", func(t *testing.T) {
		numbers := fullCard()
		marked := append([]int{}, numbers[:24]...)
		marked = append(marked, 70)
		assert.False(t, evaluator.IsBingo(numbers, marked))
	})

	t.Run("malformed card never wins", func(t *testing.T) {
		short := fullCard()[:10]
		assert.False(t, evaluator.IsBingo(short, short))
	})
}
