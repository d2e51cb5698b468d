package arbiter

import (
	"fmt"

	"github.com/hailam/minichess/internal/board"
)

// boardResponse is the body of GET /api/board and of a successful POST /api/move.
type boardResponse struct {
	Cells        [][]*pieceJSON `json:"cells"`
	SideToMove   string         `json:"sideToMove"`
	InCheck      bool           `json:"inCheck"`
	WhiteInCheck bool           `json:"whiteInCheck"`
	BlackInCheck bool           `json:"blackInCheck"`
}

type pieceJSON struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type movesResponse struct {
	From  string         `json:"from"`
	Moves []board.Square `json:"moves"`
}

type moveRequest struct {
	From board.Square `json:"from"`
	To   board.Square `json:"to"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toUpdate validates the response as a whole. A partially valid body yields
// an error so nothing incomplete is ever applied.
func (r *boardResponse) toUpdate() (board.Update, error) {
	var u board.Update

	if len(r.Cells) != 8 {
		return u, fmt.Errorf("cells: need 8 ranks, got %d", len(r.Cells))
	}
	for rank, row := range r.Cells {
		if len(row) != 8 {
			return u, fmt.Errorf("cells[%d]: need 8 files, got %d", rank, len(row))
		}
		for file, cell := range row {
			if cell == nil {
				continue
			}
			pt, err := board.ParsePieceType(cell.Type)
			if err != nil {
				return u, fmt.Errorf("cells[%d][%d]: %w", rank, file, err)
			}
			c, err := board.ParseColor(cell.Color)
			if err != nil {
				return u, fmt.Errorf("cells[%d][%d]: %w", rank, file, err)
			}
			u.Snapshot[rank][file] = board.NewPiece(pt, c)
		}
	}

	side, err := board.ParseColor(r.SideToMove)
	if err != nil {
		return u, fmt.Errorf("sideToMove: %w", err)
	}
	u.SideToMove = side
	u.Checks = board.CheckFlags{
		InCheck:      r.InCheck,
		WhiteInCheck: r.WhiteInCheck,
		BlackInCheck: r.BlackInCheck,
	}
	return u, nil
}
