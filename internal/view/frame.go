// Package view turns a board snapshot into a renderable frame.
//
// Everything here is pure: a Frame is rebuilt from scratch on every change
// and surfaces only draw what it describes.
package view

import (
	"github.com/hailam/minichess/internal/board"
)

// Mark is the highlight state of a cell.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkSelected
	MarkLegalMove
	MarkLegalCapture
)

// String returns the style name of the mark.
func (m Mark) String() string {
	switch m {
	case MarkSelected:
		return "selected"
	case MarkLegalMove:
		return "legal-move"
	case MarkLegalCapture:
		return "legal-capture"
	default:
		return "none"
	}
}

// Cell is one square as it appears on screen.
type Cell struct {
	Square  board.Square
	Row     int // screen row, 0 is the top
	Col     int // screen column, 0 is the left
	Light   bool
	Piece   board.Piece
	Icon    string // icon path, empty on an empty square
	InCheck bool
	Mark    Mark
}

// Frame is a full board in screen order: Cells[row*8+col].
type Frame struct {
	Flipped bool
	Cells   [64]Cell
}

// Render builds the frame for a snapshot. A king is marked in check when its
// color's flag is set.
func Render(snap board.Snapshot, checks board.CheckFlags, flipped bool) Frame {
	f := Frame{Flipped: flipped}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := CellAt(row, col, flipped)
			p := snap.At(sq)
			f.Cells[row*8+col] = Cell{
				Square:  sq,
				Row:     row,
				Col:     col,
				Light:   (sq.Rank()+sq.File())%2 != 0,
				Piece:   p,
				Icon:    IconPath(p),
				InCheck: p.Type() == board.King && checks.ColorInCheck(p.Color()),
			}
		}
	}
	return f
}

// Highlight returns a copy of f with the selection and its legal
// destinations marked. Occupied destinations are marked as captures.
func (f Frame) Highlight(selected board.Square, legal board.SquareSet) Frame {
	for i := range f.Cells {
		c := &f.Cells[i]
		switch {
		case c.Square == selected:
			c.Mark = MarkSelected
		case legal.Has(c.Square) && c.Piece != board.NoPiece:
			c.Mark = MarkLegalCapture
		case legal.Has(c.Square):
			c.Mark = MarkLegalMove
		default:
			c.Mark = MarkNone
		}
	}
	return f
}

// At returns the cell at a screen position.
func (f *Frame) At(row, col int) Cell {
	return f.Cells[row*8+col]
}

// Cell returns the cell showing sq.
func (f *Frame) Cell(sq board.Square) Cell {
	row, col := Position(sq, f.Flipped)
	return f.At(row, col)
}
