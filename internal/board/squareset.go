package board

import (
	"math/bits"
	"strings"
)

// SquareSet is a set of squares stored as a bitboard.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
type SquareSet uint64

// NewSquareSet builds a set from the given squares. Invalid squares are skipped.
func NewSquareSet(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s = s.Add(sq)
	}
	return s
}

// Add returns the set with sq included.
func (s SquareSet) Add(sq Square) SquareSet {
	if !sq.IsValid() {
		return s
	}
	return s | (1 << sq)
}

// Remove returns the set with sq excluded.
func (s SquareSet) Remove(sq Square) SquareSet {
	if !sq.IsValid() {
		return s
	}
	return s &^ (1 << sq)
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return sq.IsValid() && s&(1<<sq) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Empty returns true if no squares are in the set.
func (s SquareSet) Empty() bool {
	return s == 0
}

// ForEach calls f for each square in ascending order.
func (s SquareSet) ForEach(f func(Square)) {
	for s != 0 {
		sq := Square(bits.TrailingZeros64(uint64(s)))
		s &= s - 1
		f(sq)
	}
}

// Squares returns the squares in ascending order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	s.ForEach(func(sq Square) {
		out = append(out, sq)
	})
	return out
}

// String returns the square names separated by spaces (e.g., "e3 e4").
func (s SquareSet) String() string {
	names := make([]string, 0, s.Len())
	s.ForEach(func(sq Square) {
		names = append(names, sq.String())
	})
	return strings.Join(names, " ")
}
