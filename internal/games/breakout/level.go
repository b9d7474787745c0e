// Package breakout implements a brick breaker: a paddle, a ball and a grid
// of bricks that grows by one row per level.
package breakout

import "strings"

// BrickType represents different types of bricks.
type BrickType int

const (
	BrickEmpty  BrickType = iota // No brick
	BrickNormal                  // Destroyed in one hit
	BrickSolid                   // Indestructible wall
)

// Brick is one cell of a layout.
type Brick struct {
	Type   BrickType
	Points int // Points awarded when destroyed; 0 uses the default
}

// Layout is a brick grid indexed [row][col].
type Layout [][]Brick

// Rows returns the number of rows.
func (l Layout) Rows() int { return len(l) }

// Cols returns the width of the widest row.
func (l Layout) Cols() int {
	cols := 0
	for _, row := range l {
		cols = max(cols, len(row))
	}
	return cols
}

// CountBreakable returns the number of bricks that must be cleared.
func (l Layout) CountBreakable() int {
	count := 0
	for _, row := range l {
		for _, b := range row {
			if b.Type == BrickNormal {
				count++
			}
		}
	}
	return count
}

// ParseLayout creates a Layout from an ASCII map.
// Characters:
//
//	'#' = normal brick (default points)
//	'.' = empty
//	'1'-'9' = brick with custom points (10 * digit)
//	'X' = solid/indestructible brick
func ParseLayout(lines []string) Layout {
	cols := 0
	for _, line := range lines {
		cols = max(cols, len(line))
	}

	layout := make(Layout, len(lines))
	for row, line := range lines {
		layout[row] = make([]Brick, cols)
		for col := range cols {
			var ch byte = '.'
			if col < len(line) {
				ch = line[col]
			}

			switch {
			case ch == '#':
				layout[row][col] = Brick{Type: BrickNormal}
			case ch >= '1' && ch <= '9':
				layout[row][col] = Brick{Type: BrickNormal, Points: int(ch-'0') * 10}
			case ch == 'X' || ch == 'x':
				layout[row][col] = Brick{Type: BrickSolid}
			default:
				layout[row][col] = Brick{Type: BrickEmpty}
			}
		}
	}
	return layout
}

// GridLayout returns a full rows x cols grid. From level 3 on, every other
// level places a solid brick at each end of the middle row.
func GridLayout(rows, cols, level int) Layout {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat("#", cols)
	}
	if level >= 3 && level%2 == 1 && rows > 2 && cols > 2 {
		mid := rows / 2
		lines[mid] = "X" + strings.Repeat("#", cols-2) + "X"
	}
	return ParseLayout(lines)
}
