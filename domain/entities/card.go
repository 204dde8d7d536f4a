package entities

// CardSize is the number of cells on one card (5x5 grid).
const CardSize = 25

// Card represents one bingo card attached to a game session. Numbers is the
// immutable generated layout; Marked is always a subset of Numbers.
type Card struct {
	ID            int64  `db:"id"`
	GameSessionID int64  `db:"game_session_id"`
	SlotIndex     int    `db:"slot_index"`
	Numbers       []int  `db:"numbers"`
	Marked        []int  `db:"marked_numbers"`
	IsWinner      bool   `db:"is_winner"`
}

// HasNumber reports whether a number is on the card's layout
func (c *Card) HasNumber(number int) bool {
	for _, n := range c.Numbers {
		if n == number {
			return true
		}
	}
	return false
}

// IsMarked reports whether a number has already been marked
func (c *Card) IsMarked(number int) bool {
	for _, n := range c.Marked {
		if n == number {
			return true
		}
	}
	return false
}

// Mark marks a number on the card. Marking an already-marked number is a
// no-op; marking a number absent from the layout is rejected. Returns true
// when the marked set actually changed.
func (c *Card) Mark(number int) (bool, error) {
	if !c.HasNumber(number) {
		return false, ErrNumberNotOnCard
	}
	if c.IsMarked(number) {
		return false, nil
	}
	c.Marked = append(c.Marked, number)
	return true, nil
}

// IsFullyMarked returns true when every layout number is marked
func (c *Card) IsFullyMarked() bool {
	if len(c.Marked) != len(c.Numbers) {
		return false
	}
	for _, n := range c.Numbers {
		if !c.IsMarked(n) {
			return false
		}
	}
	return true
}

// Grid returns the layout as a 5x5 grid in row-major generation order
func (c *Card) Grid() [][]int {
	grid := make([][]int, 0, 5)
	for row := 0; row < 5; row++ {
		grid = append(grid, c.Numbers[row*5:(row+1)*5])
	}
	return grid
}
