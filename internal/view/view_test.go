package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hailam/minichess/internal/board"
)

var start = board.MustParsePlacement(board.StartPlacement)

func TestLayoutRoundTrip(t *testing.T) {
	for _, flipped := range []bool{false, true} {
		for sq := board.A1; sq <= board.H8; sq++ {
			row, col := Position(sq, flipped)
			if got := CellAt(row, col, flipped); got != sq {
				t.Errorf("flipped=%v: %v -> (%d,%d) -> %v", flipped, sq, row, col, got)
			}
		}
	}
}

func TestLayoutCorners(t *testing.T) {
	tests := []struct {
		row, col int
		flipped  bool
		want     board.Square
	}{
		{0, 0, false, board.A8},
		{7, 0, false, board.A1},
		{7, 7, false, board.H1},
		{0, 0, true, board.H1},
		{7, 7, true, board.A8},
		{7, 0, true, board.H8},
		{8, 0, false, board.NoSquare},
		{0, -1, true, board.NoSquare},
	}
	for _, tt := range tests {
		if got := CellAt(tt.row, tt.col, tt.flipped); got != tt.want {
			t.Errorf("CellAt(%d,%d,%v) = %v, want %v", tt.row, tt.col, tt.flipped, got, tt.want)
		}
	}
}

func TestLayoutPixels(t *testing.T) {
	l := Layout{X: 10, Y: 20, SquareSize: 50}

	if got := l.SquareAt(10, 20, false); got != board.A8 {
		t.Errorf("top-left = %v", got)
	}
	if got := l.SquareAt(10+399, 20+399, false); got != board.H1 {
		t.Errorf("bottom-right = %v", got)
	}
	if got := l.SquareAt(9, 20, false); got != board.NoSquare {
		t.Errorf("left of board = %v", got)
	}
	if got := l.SquareAt(410, 20, false); got != board.NoSquare {
		t.Errorf("right of board = %v", got)
	}

	for _, flipped := range []bool{false, true} {
		x, y := l.Origin(board.E2, flipped)
		if got := l.SquareAt(x+25, y+25, flipped); got != board.E2 {
			t.Errorf("flipped=%v: origin of e2 resolves to %v", flipped, got)
		}
	}
}

func TestRenderStart(t *testing.T) {
	f := Render(start, board.CheckFlags{}, false)

	pieces := 0
	for _, c := range f.Cells {
		if c.Piece == board.NoPiece {
			if c.Icon != "" {
				t.Errorf("%v: empty square has icon %q", c.Square, c.Icon)
			}
			continue
		}
		pieces++
		if c.Piece.Type() == board.Pawn {
			if r := c.Square.Rank(); (c.Piece.Color() == board.White && r != 1) || (c.Piece.Color() == board.Black && r != 6) {
				t.Errorf("pawn on %v", c.Square)
			}
		}
	}
	if pieces != 32 {
		t.Errorf("pieces = %d, want 32", pieces)
	}

	if c := f.Cell(board.E1); c.Piece != board.WhiteKing || c.Icon != "/images/piece/cburnett/wK.svg" {
		t.Errorf("e1 = %+v", c)
	}
	if c := f.Cell(board.E8); c.Piece != board.BlackKing || c.Icon != "/images/piece/cburnett/bK.svg" {
		t.Errorf("e8 = %+v", c)
	}
	if f.Cells[0].Square != board.A8 || f.Cells[63].Square != board.H1 {
		t.Error("unflipped frame should start at a8 and end at h1")
	}
}

func TestRenderColors(t *testing.T) {
	f := Render(board.Snapshot{}, board.CheckFlags{}, false)
	if f.Cell(board.A1).Light {
		t.Error("a1 is dark")
	}
	if !f.Cell(board.H1).Light {
		t.Error("h1 is light")
	}
}

func TestRenderFlipKeepsIdentity(t *testing.T) {
	normal := Render(start, board.CheckFlags{}, false)
	flipped := Render(start, board.CheckFlags{}, true)

	for sq := board.A1; sq <= board.H8; sq++ {
		a, b := normal.Cell(sq), flipped.Cell(sq)
		if a.Piece != b.Piece || a.Light != b.Light || a.Square != b.Square {
			t.Errorf("%v differs between orientations", sq)
		}
		if a.Row != 7-b.Row || a.Col != 7-b.Col {
			t.Errorf("%v: flip is not a 180° rotation", sq)
		}
	}
	if flipped.Cells[0].Square != board.H1 {
		t.Error("flipped frame should start at h1")
	}
}

func TestRenderCheck(t *testing.T) {
	f := Render(start, board.CheckFlags{InCheck: true, BlackInCheck: true}, false)
	for _, c := range f.Cells {
		want := c.Square == board.E8
		if c.InCheck != want {
			t.Errorf("%v InCheck = %v", c.Square, c.InCheck)
		}
	}
}

func TestHighlight(t *testing.T) {
	snap := start
	snap.Set(board.D3, board.BlackPawn)

	f := Render(snap, board.CheckFlags{}, false).Highlight(board.E2, board.NewSquareSet(board.E3, board.E4, board.D3))

	want := map[board.Square]Mark{
		board.E2: MarkSelected,
		board.E3: MarkLegalMove,
		board.E4: MarkLegalMove,
		board.D3: MarkLegalCapture,
	}
	got := map[board.Square]Mark{}
	for _, c := range f.Cells {
		if c.Mark != MarkNone {
			got[c.Square] = c.Mark
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("marks (-want +got):\n%s", diff)
	}

	cleared := f.Highlight(board.NoSquare, 0)
	for _, c := range cleared.Cells {
		if c.Mark != MarkNone {
			t.Errorf("%v still marked %v", c.Square, c.Mark)
		}
	}
}

func TestMoveRows(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		want  []MoveRow
	}{
		{"Empty", nil, []MoveRow{}},
		{"One", []string{"e2-e4"}, []MoveRow{{1, "e2-e4", ""}}},
		{"Two", []string{"e2-e4", "e7-e5"}, []MoveRow{{1, "e2-e4", "e7-e5"}}},
		{"Three", []string{"e2-e4", "e7-e5", "g1-f3"}, []MoveRow{
			{1, "e2-e4", "e7-e5"},
			{2, "g1-f3", ""},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveRows(tt.moves)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("rows (-want +got):\n%s", diff)
			}
			if len(got) != (len(tt.moves)+1)/2 {
				t.Errorf("row count = %d", len(got))
			}
		})
	}
}

func TestStatus(t *testing.T) {
	if got := Status(board.White, board.CheckFlags{}); got != "White to move" {
		t.Errorf("got %q", got)
	}
	if got := Status(board.Black, board.CheckFlags{InCheck: true, BlackInCheck: true}); got != "Black to move (check)" {
		t.Errorf("got %q", got)
	}
}

func TestPieceIcons(t *testing.T) {
	if len(PieceIcons) != 12 {
		t.Fatalf("icons = %d, want 12", len(PieceIcons))
	}
	for p := board.WhitePawn; p <= board.BlackKing; p++ {
		if IconPath(p) == "" {
			t.Errorf("no icon for %v", p.AssetKey())
		}
	}
	if IconPath(board.NoPiece) != "" {
		t.Error("NoPiece has no icon")
	}
}
