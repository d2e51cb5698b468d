// Package state holds the per-session view state of the board: the client-local
// selection and orientation, and the last authoritative report from the arbiter.
//
// BoardState performs no I/O. Asynchronous results are applied through tickets:
// a ticket records the generation of its category when the request was issued,
// and the result is applied only if that generation is still current.
package state

import (
	"errors"

	"github.com/hailam/minichess/internal/board"
)

// Kind is a generation category. Each category advances independently so a
// refresh of one kind never invalidates a request of another.
type Kind int

const (
	KindSelection Kind = iota
	KindBoard
	KindMoveList
	numKinds
)

// String returns the category name.
func (k Kind) String() string {
	switch k {
	case KindSelection:
		return "selection"
	case KindBoard:
		return "board"
	case KindMoveList:
		return "move-list"
	default:
		return "unknown"
	}
}

// Ticket identifies an outstanding request by category and generation.
type Ticket struct {
	Kind       Kind
	Generation uint64
}

// ErrNotSelectable is returned when a selection targets an empty square or a
// piece that does not belong to the side to move.
var ErrNotSelectable = errors.New("square does not hold a piece of the side to move")

// BoardState is the single view state of a session.
type BoardState struct {
	snapshot   board.Snapshot
	sideToMove board.Color
	checks     board.CheckFlags
	history    []string

	selected board.Square
	legal    board.SquareSet
	flipped  bool

	gens [numKinds]uint64
}

// New returns an empty state: no selection, White to move, no checks.
func New() *BoardState {
	return &BoardState{
		selected:   board.NoSquare,
		sideToMove: board.White,
	}
}

// Reset reinitializes the state for a new game. Orientation is kept and every
// generation advances, so responses issued before the reset are stale.
func (s *BoardState) Reset() {
	s.snapshot = board.Snapshot{}
	s.sideToMove = board.White
	s.checks = board.CheckFlags{}
	s.history = nil
	s.selected = board.NoSquare
	s.legal = 0
	for k := range s.gens {
		s.gens[k]++
	}
}

// Snapshot returns a copy of the last authoritative board.
func (s *BoardState) Snapshot() board.Snapshot {
	return s.snapshot
}

// PieceAt returns the piece on sq in the last authoritative board.
func (s *BoardState) PieceAt(sq board.Square) board.Piece {
	return s.snapshot.At(sq)
}

// SideToMove returns the color to move according to the arbiter.
func (s *BoardState) SideToMove() board.Color {
	return s.sideToMove
}

// Checks returns the check flags of the last arbiter response.
func (s *BoardState) Checks() board.CheckFlags {
	return s.checks
}

// History returns a copy of the move notations.
func (s *BoardState) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Selected returns the selected square, or board.NoSquare when idle.
func (s *BoardState) Selected() board.Square {
	return s.selected
}

// HasSelection reports whether a square is selected.
func (s *BoardState) HasSelection() bool {
	return s.selected != board.NoSquare
}

// LegalMoves returns the destinations fetched for the current selection.
func (s *BoardState) LegalMoves() board.SquareSet {
	return s.legal
}

// Flipped reports whether the board is shown from Black's side.
func (s *BoardState) Flipped() bool {
	return s.flipped
}

// ToggleFlip flips the orientation and returns the new value.
func (s *BoardState) ToggleFlip() bool {
	s.flipped = !s.flipped
	return s.flipped
}

// SetFlipped sets the orientation.
func (s *BoardState) SetFlipped(flipped bool) {
	s.flipped = flipped
}

// Generation returns the current generation of a category.
func (s *BoardState) Generation(k Kind) uint64 {
	return s.gens[k]
}

// Current reports whether a ticket's generation is still the current one.
func (s *BoardState) Current(t Ticket) bool {
	return t.Kind >= 0 && t.Kind < numKinds && s.gens[t.Kind] == t.Generation
}

func (s *BoardState) advance(k Kind) Ticket {
	s.gens[k]++
	return Ticket{Kind: k, Generation: s.gens[k]}
}

// Select selects sq and returns the ticket its legal-moves request must carry.
// Any previous legal moves are discarded.
func (s *BoardState) Select(sq board.Square) (Ticket, error) {
	p := s.snapshot.At(sq)
	if p == board.NoPiece || p.Color() != s.sideToMove {
		return Ticket{}, ErrNotSelectable
	}
	t := s.advance(KindSelection)
	s.selected = sq
	s.legal = 0
	return t, nil
}

// ClearSelection returns to idle. Pending legal-moves responses become stale.
func (s *BoardState) ClearSelection() {
	s.advance(KindSelection)
	s.selected = board.NoSquare
	s.legal = 0
}

// ApplyLegalMoves stores the legal destinations for the selection the ticket
// was issued for. It returns false if the ticket is stale.
func (s *BoardState) ApplyLegalMoves(t Ticket, moves board.SquareSet) bool {
	if t.Kind != KindSelection || !s.Current(t) || s.selected == board.NoSquare {
		return false
	}
	s.legal = moves
	return true
}

// BeginBoard returns a ticket for a request whose response carries a board.
// Earlier board requests become stale.
func (s *BoardState) BeginBoard() Ticket {
	return s.advance(KindBoard)
}

// ApplyBoard adopts an authoritative board report and clears the selection.
// It returns false if the ticket is stale.
func (s *BoardState) ApplyBoard(t Ticket, u board.Update) bool {
	if t.Kind != KindBoard || !s.Current(t) {
		return false
	}
	s.snapshot = u.Snapshot
	s.sideToMove = u.SideToMove
	s.checks = u.Checks
	s.ClearSelection()
	return true
}

// BeginMoveList returns a ticket for a move-list request. Earlier move-list
// requests become stale.
func (s *BoardState) BeginMoveList() Ticket {
	return s.advance(KindMoveList)
}

// ApplyMoveList stores the move history. It returns false if the ticket is stale.
func (s *BoardState) ApplyMoveList(t Ticket, moves []string) bool {
	if t.Kind != KindMoveList || !s.Current(t) {
		return false
	}
	s.history = append([]string(nil), moves...)
	return true
}
