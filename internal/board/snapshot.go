package board

import (
	"fmt"
	"strings"
)

// StartPlacement is the FEN piece placement of the standard starting position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// Snapshot is the arbiter's board: cells indexed [rank][file] where rank 0 is
// rank "1" and file 0 is file "a". Orientation never changes this indexing.
// The zero value is an empty board.
type Snapshot [8][8]Piece

// CheckFlags mirrors the check information of the last arbiter response.
type CheckFlags struct {
	InCheck      bool // side to move is in check
	WhiteInCheck bool
	BlackInCheck bool
}

// ColorInCheck returns the flag for the given color.
func (cf CheckFlags) ColorInCheck(c Color) bool {
	switch c {
	case White:
		return cf.WhiteInCheck
	case Black:
		return cf.BlackInCheck
	default:
		return false
	}
}

// At returns the piece on sq, or NoPiece.
func (s *Snapshot) At(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return s[sq.Rank()][sq.File()]
}

// Set places p on sq.
func (s *Snapshot) Set(sq Square, p Piece) {
	if !sq.IsValid() {
		return
	}
	s[sq.Rank()][sq.File()] = p
}

// Count returns the number of occupied squares.
func (s *Snapshot) Count() int {
	n := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if s[rank][file] != NoPiece {
				n++
			}
		}
	}
	return n
}

// ParsePlacement parses the piece placement field of a FEN string into a Snapshot.
func ParsePlacement(placement string) (Snapshot, error) {
	var snap Snapshot

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return snap, fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return snap, fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return snap, fmt.Errorf("invalid piece character: %c", c)
			}
			snap[rank][file] = piece
			file++
		}

		if file != 8 {
			return snap, fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return snap, nil
}

// MustParsePlacement is ParsePlacement that panics on error. Intended for
// fixed placements in tests and defaults.
func MustParsePlacement(placement string) Snapshot {
	snap, err := ParsePlacement(placement)
	if err != nil {
		panic(err)
	}
	return snap
}

// Placement encodes the snapshot as a FEN piece placement field.
func (s *Snapshot) Placement() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := s[rank][file]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Update is one authoritative board report from the arbiter.
type Update struct {
	Snapshot   Snapshot
	SideToMove Color
	Checks     CheckFlags
}
