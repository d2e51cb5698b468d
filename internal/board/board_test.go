package board

import (
	"testing"
)

func TestSquareNameRoundTrip(t *testing.T) {
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			name := SquareName(file, rank)
			got := SquareName(FileFromName(name), RankFromName(name))
			if got != name {
				t.Errorf("round trip of %s gave %s", name, got)
			}

			sq, err := ParseSquare(name)
			if err != nil {
				t.Fatalf("ParseSquare(%q): %v", name, err)
			}
			if sq.File() != file || sq.Rank() != rank {
				t.Errorf("ParseSquare(%q) = file %d rank %d, want %d %d", name, sq.File(), sq.Rank(), file, rank)
			}
			if sq.String() != name {
				t.Errorf("String() = %s, want %s", sq.String(), name)
			}
		}
	}
}

func TestSquareNames(t *testing.T) {
	tests := []struct {
		sq   Square
		name string
	}{
		{A1, "a1"},
		{H1, "h1"},
		{E2, "e2"},
		{E4, "e4"},
		{A8, "a8"},
		{H8, "h8"},
	}

	for _, tc := range tests {
		if tc.sq.String() != tc.name {
			t.Errorf("%d.String() = %s, want %s", tc.sq, tc.sq.String(), tc.name)
		}
	}

	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %s", NoSquare.String())
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, s := range []string{"", "e", "i1", "a9", "a0", "E2", "e22", "invalid", "1e"} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) should fail", s)
		}
		if FileFromName(s) != -1 || RankFromName(s) != -1 {
			t.Errorf("FileFromName/RankFromName(%q) should return -1", s)
		}
	}
}

func TestNewSquareOutOfRange(t *testing.T) {
	if NewSquare(8, 0) != NoSquare || NewSquare(0, -1) != NoSquare {
		t.Error("out-of-range indices should yield NoSquare")
	}
}

func TestSquareText(t *testing.T) {
	var sq Square
	if err := sq.UnmarshalText([]byte("g7")); err != nil {
		t.Fatal(err)
	}
	if sq != G7 {
		t.Errorf("got %v, want g7", sq)
	}
	b, err := sq.MarshalText()
	if err != nil || string(b) != "g7" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
	if err := sq.UnmarshalText([]byte("z9")); err == nil {
		t.Error("expected error for z9")
	}
}

func TestPieceEncoding(t *testing.T) {
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			p := NewPiece(pt, c)
			if p == NoPiece {
				t.Fatalf("NewPiece(%v, %v) = NoPiece", pt, c)
			}
			if p.Type() != pt || p.Color() != c {
				t.Errorf("piece %v: type %v color %v, want %v %v", p, p.Type(), p.Color(), pt, c)
			}
		}
	}

	if NoPiece.Color() != NoColor || NoPiece.Type() != NoPieceType {
		t.Error("NoPiece should have no color and no type")
	}
	if NewPiece(NoPieceType, White) != NoPiece {
		t.Error("NewPiece with no type should be NoPiece")
	}
}

func TestAssetKey(t *testing.T) {
	tests := map[Piece]string{
		WhiteKing:   "WHITE_KING",
		WhiteKnight: "WHITE_KNIGHT",
		BlackPawn:   "BLACK_PAWN",
		BlackQueen:  "BLACK_QUEEN",
		NoPiece:     "",
	}
	for p, want := range tests {
		if got := p.AssetKey(); got != want {
			t.Errorf("%v.AssetKey() = %q, want %q", p, got, want)
		}
	}
}

func TestWireNames(t *testing.T) {
	for pt := Pawn; pt <= King; pt++ {
		parsed, err := ParsePieceType(pt.WireName())
		if err != nil || parsed != pt {
			t.Errorf("ParsePieceType(%q) = %v, %v", pt.WireName(), parsed, err)
		}
	}
	for c := White; c <= Black; c++ {
		parsed, err := ParseColor(c.WireName())
		if err != nil || parsed != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.WireName(), parsed, err)
		}
	}
	if _, err := ParseColor("white"); err == nil {
		t.Error("color names are upper case")
	}
	if _, err := ParsePieceType("DRAGON"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestSquareSet(t *testing.T) {
	s := NewSquareSet(E4, E3, NoSquare)
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if !s.Has(E3) || !s.Has(E4) || s.Has(E2) || s.Has(NoSquare) {
		t.Error("membership mismatch")
	}
	if s.String() != "e3 e4" {
		t.Errorf("String = %q", s.String())
	}
	s = s.Remove(E3)
	if s.Has(E3) || s.Len() != 1 {
		t.Error("Remove failed")
	}

	var empty SquareSet
	if !empty.Empty() || len(empty.Squares()) != 0 {
		t.Error("zero SquareSet should be empty")
	}
}

func TestPlacement(t *testing.T) {
	snap, err := ParsePlacement(StartPlacement)
	if err != nil {
		t.Fatal(err)
	}

	if snap.Count() != 32 {
		t.Errorf("starting position should have 32 pieces, got %d", snap.Count())
	}
	if snap[0][0] != WhiteRook || snap.At(A1) != WhiteRook {
		t.Errorf("a1 = %v, want white rook", snap.At(A1))
	}
	if snap.At(E1) != WhiteKing || snap.At(E8) != BlackKing {
		t.Error("kings should be on e1/e8")
	}
	for file := 0; file < 8; file++ {
		if snap[1][file] != WhitePawn || snap[6][file] != BlackPawn {
			t.Errorf("pawn missing on file %d", file)
		}
	}

	if got := snap.Placement(); got != StartPlacement {
		t.Errorf("Placement() = %s", got)
	}

	var empty Snapshot
	if empty.Count() != 0 || empty.Placement() != "8/8/8/8/8/8/8/8" {
		t.Error("zero snapshot should be empty")
	}

	for _, bad := range []string{"8/8/8", "9/8/8/8/8/8/8/8", "x7/8/8/8/8/8/8/8", "7/8/8/8/8/8/8/8"} {
		if _, err := ParsePlacement(bad); err == nil {
			t.Errorf("ParsePlacement(%q) should fail", bad)
		}
	}
}

func TestCheckFlags(t *testing.T) {
	cf := CheckFlags{BlackInCheck: true}
	if cf.ColorInCheck(White) || !cf.ColorInCheck(Black) || cf.ColorInCheck(NoColor) {
		t.Error("ColorInCheck mismatch")
	}
}
