package entities

import "github.com/shopspring/decimal"

// DrawResult is the outcome of one draw request
type DrawResult struct {
	Number        int
	CalledNumbers []int
	Remaining     int
}

// BingoResult is the outcome of a bingo check. Winnings and NewBalance are
// only meaningful when IsBingo is true.
type BingoResult struct {
	IsBingo    bool
	Winnings   decimal.Decimal
	NewBalance decimal.Decimal
	Session    *GameSession
}

// GameSessionDetail bundles a session with its cards for read access
type GameSessionDetail struct {
	Session *GameSession
	Cards   []*Card
}
