package services

import (
	"bingohall/domain/entities"
	"bingohall/domain/interfaces"
)

// DrawSequencer selects the next number to call for a session: uniform over
// the 1-75 universe minus the numbers already called.
type DrawSequencer struct {
	src interfaces.NumberSource
}

// NewDrawSequencer creates a sequencer backed by the given source
func NewDrawSequencer(src interfaces.NumberSource) *DrawSequencer {
	return &DrawSequencer{src: src}
}

// Next returns the next number for a session given its call history.
// Returns ErrDrawExhausted once all 75 numbers have been called.
func (s *DrawSequencer) Next(called []int) (int, error) {
	if len(called) >= entities.NumberUniverseSize {
		return 0, entities.ErrDrawExhausted
	}

	drawn := make(map[int]struct{}, len(called))
	for _, n := range called {
		drawn[n] = struct{}{}
	}

	remaining := make([]int, 0, entities.NumberUniverseSize-len(drawn))
	for n := 1; n <= entities.NumberUniverseSize; n++ {
		if _, ok := drawn[n]; !ok {
			remaining = append(remaining, n)
		}
	}
	if len(remaining) == 0 {
		// Possible when the history holds 75 values with duplicates filtered
		return 0, entities.ErrDrawExhausted
	}

	return remaining[s.src.Intn(len(remaining))], nil
}
