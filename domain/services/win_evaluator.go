package services

import "bingohall/domain/entities"

// WinEvaluator contains pure win-detection logic for full-card bingo
type WinEvaluator struct{}

// NewWinEvaluator creates a new WinEvaluator
func NewWinEvaluator() *WinEvaluator {
	return &WinEvaluator{}
}

// IsBingo returns true iff the marked set equals the card's full number set.
// Containment is verified in both directions rather than assuming the
// marked-subset invariant was enforced upstream.
func (e *WinEvaluator) IsBingo(cardNumbers, marked []int) bool {
	if len(cardNumbers) != entities.CardSize {
		return false
	}

	markedSet := make(map[int]struct{}, len(marked))
	for _, n := range marked {
		markedSet[n] = struct{}{}
	}
	if len(markedSet) != len(cardNumbers) {
		return false
	}

	cardSet := make(map[int]struct{}, len(cardNumbers))
	for _, n := range cardNumbers {
		if _, ok := markedSet[n]; !ok {
			return false
		}
		cardSet[n] = struct{}{}
	}
	for n := range markedSet {
		if _, ok := cardSet[n]; !ok {
			return false
		}
	}

	return true
}
