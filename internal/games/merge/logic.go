package merge

// Direction represents a slide direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Board is a square grid of tile values indexed [y][x]; 0 is empty.
type Board [][]int

// NewBoard creates an empty size×size board.
func NewBoard(size int) Board {
	b := make(Board, size)
	for y := range b {
		b[y] = make([]int, size)
	}
	return b
}

// Size returns the side length.
func (b Board) Size() int { return len(b) }

// Clone returns a deep copy.
func (b Board) Clone() Board {
	c := make(Board, len(b))
	for y, row := range b {
		c[y] = append([]int(nil), row...)
	}
	return c
}

// Equal reports whether two boards hold the same tiles.
func (b Board) Equal(o Board) bool {
	if len(b) != len(o) {
		return false
	}
	for y := range b {
		for x := range b[y] {
			if b[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// slideRow slides and merges a single row toward index 0.
// A tile merges at most once per slide.
func slideRow(row []int) (result []int, score int) {
	result = make([]int, len(row))
	writePos := 0
	merged := false

	for _, v := range row {
		if v == 0 {
			continue
		}
		if writePos > 0 && !merged && result[writePos-1] == v {
			result[writePos-1] *= 2
			score += result[writePos-1]
			merged = true
			continue
		}
		result[writePos] = v
		writePos++
		merged = false
	}
	return result, score
}

// line returns the cells of row or column i in slide order for dir.
func (b Board) line(i int, dir Direction) []int {
	n := b.Size()
	out := make([]int, n)
	for j := range n {
		switch dir {
		case DirLeft:
			out[j] = b[i][j]
		case DirRight:
			out[j] = b[i][n-1-j]
		case DirUp:
			out[j] = b[j][i]
		case DirDown:
			out[j] = b[n-1-j][i]
		}
	}
	return out
}

func (b Board) setLine(i int, dir Direction, vals []int) {
	n := b.Size()
	for j, v := range vals {
		switch dir {
		case DirLeft:
			b[i][j] = v
		case DirRight:
			b[i][n-1-j] = v
		case DirUp:
			b[j][i] = v
		case DirDown:
			b[n-1-j][i] = v
		}
	}
}

// Slide performs a move in the given direction.
// Returns the new board, score gained, and whether the board changed.
func Slide(board Board, dir Direction) (Board, int, bool) {
	next := NewBoard(board.Size())
	total := 0
	for i := range board.Size() {
		row, score := slideRow(board.line(i, dir))
		next.setLine(i, dir, row)
		total += score
	}
	return next, total, !next.Equal(board)
}

// Cell is a board coordinate.
type Cell struct {
	X, Y int
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for y, row := range board {
		for x, v := range row {
			if v == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func HasPossibleMerge(board Board) bool {
	n := board.Size()
	for y := range n {
		for x := range n {
			val := board[y][x]
			if x < n-1 && board[y][x+1] == val {
				return true
			}
			if y < n-1 && board[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(board Board) bool {
	return len(EmptyCells(board)) > 0 || HasPossibleMerge(board)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for _, row := range board {
		for _, v := range row {
			maxVal = max(maxVal, v)
		}
	}
	return maxVal
}
