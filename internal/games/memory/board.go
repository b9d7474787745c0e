package memory

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

// margin is the empty border around the board in game units.
const margin = 5.0

// Board places a shuffled deck of card pairs on a grid of slots.
// Slots are numbered row-major from the top-left.
type Board struct {
	Cols, Rows int
	Symbols    []int // Symbol per slot; every symbol appears twice
}

// NewBoard shuffles pairs*2 cards onto the smallest square-ish grid.
func NewBoard(pairs int, rng *rand.Rand) Board {
	n := pairs * 2
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	symbols := make([]int, n)
	for i := range symbols {
		symbols[i] = i / 2
	}
	rng.Shuffle(n, func(i, j int) { symbols[i], symbols[j] = symbols[j], symbols[i] })

	return Board{Cols: cols, Rows: rows, Symbols: symbols}
}

// Len returns the number of slots holding a card.
func (b Board) Len() int { return len(b.Symbols) }

// cell returns the size of one slot in game units.
func (b Board) cell() (w, h float64) {
	span := core.FieldSize - 2*margin
	return span / float64(b.Cols), span / float64(b.Rows)
}

// Center returns the game-space centre of a slot.
func (b Board) Center(slot int) core.Vec {
	w, h := b.cell()
	col, row := slot%b.Cols, slot/b.Cols
	return core.V(margin+(float64(col)+0.5)*w, margin+(float64(row)+0.5)*h)
}

// CardSize returns the card dimensions; cards never touch.
func (b Board) CardSize() (w, h float64) {
	w, h = b.cell()
	return w * 0.8, h * 0.8
}

// Move returns the slot one step from slot in the given direction, staying
// on the board.
func (b Board) Move(slot int, dir core.IntentKind) int {
	col, row := slot%b.Cols, slot/b.Cols
	switch dir {
	case core.IntentLeft:
		col--
	case core.IntentRight:
		col++
	case core.IntentUp:
		row--
	case core.IntentDown:
		row++
	}
	col = core.Clamp(col, 0, b.Cols-1)
	row = core.Clamp(row, 0, b.Rows-1)
	return min(row*b.Cols+col, b.Len()-1)
}
