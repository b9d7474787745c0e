package snake

import "github.com/vovakirdan/arcade-engine/internal/core"

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite reports whether two directions point opposite ways.
func (d Direction) Opposite(o Direction) bool {
	return (d == DirUp && o == DirDown) ||
		(d == DirDown && o == DirUp) ||
		(d == DirLeft && o == DirRight) ||
		(d == DirRight && o == DirLeft)
}

// fromIntent maps a directional intent to a Direction.
func fromIntent(k core.IntentKind) (Direction, bool) {
	switch k {
	case core.IntentUp:
		return DirUp, true
	case core.IntentDown:
		return DirDown, true
	case core.IntentLeft:
		return DirLeft, true
	case core.IntentRight:
		return DirRight, true
	default:
		return 0, false
	}
}

// Point is a grid cell.
type Point struct {
	X, Y int
}

// Grid is a square torus of cells laid over the playfield.
type Grid struct {
	Cells int
}

// CellSize returns the side of one cell in game units.
func (g Grid) CellSize() float64 {
	return core.FieldSize / float64(g.Cells)
}

// Center returns the game-space centre of a cell.
func (g Grid) Center(p Point) core.Vec {
	size := g.CellSize()
	return core.V((float64(p.X)+0.5)*size, (float64(p.Y)+0.5)*size)
}

// Next returns the neighbouring cell in direction d, wrapping at the edges.
func (g Grid) Next(p Point, d Direction) Point {
	switch d {
	case DirUp:
		p.Y--
	case DirDown:
		p.Y++
	case DirLeft:
		p.X--
	case DirRight:
		p.X++
	}
	p.X = (p.X%g.Cells + g.Cells) % g.Cells
	p.Y = (p.Y%g.Cells + g.Cells) % g.Cells
	return p
}
