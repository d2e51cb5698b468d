// Package board holds the value types shared by every layer of the client:
// squares, pieces, square sets and the arbiter's board snapshot.
package board

import (
	"fmt"
	"strconv"
)

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file index of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank index of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the display name of the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return SquareName(sq.File(), sq.Rank())
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// NewSquare creates a square from file and rank indices (0-indexed).
// Out-of-range indices yield NoSquare.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// SquareName maps grid indices to a display name: chr('a'+file) + (rank+1).
func SquareName(file, rank int) string {
	return string(rune('a'+file)) + strconv.Itoa(rank+1)
}

// FileFromName recovers the file index from a square name, or -1 if the name
// is not a valid square.
func FileFromName(name string) int {
	sq, err := ParseSquare(name)
	if err != nil {
		return -1
	}
	return sq.File()
}

// RankFromName recovers the rank index from a square name, or -1 if the name
// is not a valid square.
func RankFromName(name string) int {
	sq, err := ParseSquare(name)
	if err != nil {
		return -1
	}
	return sq.Rank()
}

// ParseSquare parses a square name (e.g., "e4") into a Square.
// file = name[0]-'a', rank = name[1:]-1.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return NewSquare(file, rank), nil
}

// MarshalText encodes the square as its name.
func (sq Square) MarshalText() ([]byte, error) {
	if !sq.IsValid() {
		return nil, fmt.Errorf("cannot encode square %d", uint8(sq))
	}
	return []byte(sq.String()), nil
}

// UnmarshalText decodes a square name.
func (sq *Square) UnmarshalText(text []byte) error {
	parsed, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*sq = parsed
	return nil
}
