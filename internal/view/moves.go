package view

import "github.com/hailam/minichess/internal/board"

// MoveRow is one numbered line of the move list.
type MoveRow struct {
	Number int
	White  string
	Black  string // empty while Black has not replied
}

// MoveRows pairs played moves into numbered rows.
func MoveRows(moves []string) []MoveRow {
	rows := make([]MoveRow, 0, (len(moves)+1)/2)
	for i := 0; i < len(moves); i += 2 {
		row := MoveRow{Number: i/2 + 1, White: moves[i]}
		if i+1 < len(moves) {
			row.Black = moves[i+1]
		}
		rows = append(rows, row)
	}
	return rows
}

// Status returns the status line for the side to move.
func Status(side board.Color, checks board.CheckFlags) string {
	s := side.String() + " to move"
	if checks.InCheck || checks.ColorInCheck(side) {
		s += " (check)"
	}
	return s
}
