package console

import (
	"fmt"
	"strings"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/view"
)

// FormatFrame draws a frame as text, top row first. Selected squares are
// bracketed, legal destinations shown as "o" or a parenthesized capture,
// and a king in check is wrapped in "!".
func FormatFrame(f view.Frame) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d ", f.At(row, 0).Square.Rank()+1)
		for col := 0; col < 8; col++ {
			sb.WriteString(formatCell(f.At(row, col)))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for col := 0; col < 8; col++ {
		fmt.Fprintf(&sb, " %c ", 'a'+f.At(7, col).Square.File())
	}
	sb.WriteByte('\n')
	return sb.String()
}

func formatCell(c view.Cell) string {
	ch := "."
	if c.Piece != board.NoPiece {
		ch = c.Piece.String()
	}
	switch {
	case c.Mark == view.MarkSelected:
		return "[" + ch + "]"
	case c.Mark == view.MarkLegalCapture:
		return "(" + ch + ")"
	case c.Mark == view.MarkLegalMove:
		return " o "
	case c.InCheck:
		return "!" + ch + "!"
	default:
		return " " + ch + " "
	}
}

// FormatMoves draws the move list, one numbered row per line.
func FormatMoves(rows []view.MoveRow) string {
	if len(rows) == 0 {
		return "no moves\n"
	}
	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%3d. %-8s %s\n", r.Number, r.White, r.Black)
	}
	return sb.String()
}
