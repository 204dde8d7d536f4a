package services

import (
	"fmt"

	"bingohall/domain/entities"
	"bingohall/domain/interfaces"
)

// CardGenerator produces randomized bingo cards: 25 distinct numbers drawn
// uniformly from 1-75, kept in generation order for 5x5 display.
type CardGenerator struct {
	src interfaces.NumberSource
}

// NewCardGenerator creates a card generator backed by the given source
func NewCardGenerator(src interfaces.NumberSource) *CardGenerator {
	return &CardGenerator{src: src}
}

// Generate produces a new card for the given slot (1 or 2)
func (g *CardGenerator) Generate(slotIndex int) (*entities.Card, error) {
	if slotIndex < 1 || slotIndex > 2 {
		return nil, fmt.Errorf("%w: card slot must be 1 or 2, got %d", entities.ErrInvalidRequest, slotIndex)
	}

	// A prefix of a random permutation is a uniform sample without replacement
	perm := g.src.Perm(entities.NumberUniverseSize)
	numbers := make([]int, entities.CardSize)
	for i := 0; i < entities.CardSize; i++ {
		numbers[i] = perm[i] + 1
	}

	return &entities.Card{
		SlotIndex: slotIndex,
		Numbers:   numbers,
		Marked:    []int{},
	}, nil
}
