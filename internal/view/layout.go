package view

import "github.com/hailam/minichess/internal/board"

// CellAt returns the square shown at a screen grid position. Unflipped, rank 8
// is the top row and file a the left column; flipped is the 180° rotation.
func CellAt(row, col int, flipped bool) board.Square {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return board.NoSquare
	}
	if flipped {
		return board.NewSquare(7-col, row)
	}
	return board.NewSquare(col, 7-row)
}

// Position returns the screen grid position of sq. It is the inverse of CellAt.
func Position(sq board.Square, flipped bool) (row, col int) {
	if flipped {
		return sq.Rank(), 7 - sq.File()
	}
	return 7 - sq.Rank(), sq.File()
}

// Layout places the grid on a pixel surface.
type Layout struct {
	X, Y       int // top-left corner of the board
	SquareSize int
}

// CellAt returns the square at a grid position.
func (l Layout) CellAt(row, col int, flipped bool) board.Square {
	return CellAt(row, col, flipped)
}

// Position returns the grid position of sq.
func (l Layout) Position(sq board.Square, flipped bool) (row, col int) {
	return Position(sq, flipped)
}

// Size returns the board edge length in pixels.
func (l Layout) Size() int {
	return 8 * l.SquareSize
}

// SquareAt converts pixel coordinates to a square, or board.NoSquare when
// the point lies outside the board.
func (l Layout) SquareAt(x, y int, flipped bool) board.Square {
	if l.SquareSize <= 0 || x < l.X || y < l.Y || x >= l.X+l.Size() || y >= l.Y+l.Size() {
		return board.NoSquare
	}
	return CellAt((y-l.Y)/l.SquareSize, (x-l.X)/l.SquareSize, flipped)
}

// Origin returns the top-left pixel of sq.
func (l Layout) Origin(sq board.Square, flipped bool) (x, y int) {
	row, col := Position(sq, flipped)
	return l.X + col*l.SquareSize, l.Y + row*l.SquareSize
}
