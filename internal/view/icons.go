package view

import "github.com/hailam/minichess/internal/board"

// PieceIcons maps asset keys to icon paths on the arbiter.
var PieceIcons = map[string]string{
	"WHITE_KING":   "/images/piece/cburnett/wK.svg",
	"WHITE_QUEEN":  "/images/piece/cburnett/wQ.svg",
	"WHITE_ROOK":   "/images/piece/cburnett/wR.svg",
	"WHITE_BISHOP": "/images/piece/cburnett/wB.svg",
	"WHITE_KNIGHT": "/images/piece/cburnett/wN.svg",
	"WHITE_PAWN":   "/images/piece/cburnett/wP.svg",
	"BLACK_KING":   "/images/piece/cburnett/bK.svg",
	"BLACK_QUEEN":  "/images/piece/cburnett/bQ.svg",
	"BLACK_ROOK":   "/images/piece/cburnett/bR.svg",
	"BLACK_BISHOP": "/images/piece/cburnett/bB.svg",
	"BLACK_KNIGHT": "/images/piece/cburnett/bN.svg",
	"BLACK_PAWN":   "/images/piece/cburnett/bP.svg",
}

// IconPath returns the icon path for p, or "" for NoPiece.
func IconPath(p board.Piece) string {
	return PieceIcons[p.AssetKey()]
}
