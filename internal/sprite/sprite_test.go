package sprite

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hailam/minichess/internal/arbiter"
	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/view"
	"github.com/rs/zerolog"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10" viewBox="0 0 10 10">
<rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
</svg>`

func isRed(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.R > 200 && c.G < 50 && c.B < 50 && c.A > 200
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize([]byte(redSquare), 32)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if !isRed(img, 16, 16) {
		t.Errorf("center pixel = %v", img.RGBAAt(16, 16))
	}

	if _, err := Rasterize([]byte(redSquare), 0); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestFallback(t *testing.T) {
	const size = 64
	white := Fallback(board.WhitePawn, size)
	black := Fallback(board.BlackPawn, size)

	if white.RGBAAt(0, 0).A != 0 {
		t.Error("corner should be transparent")
	}
	// Inside the disc, above the letter.
	if c := white.RGBAAt(size/2, 14); c.R < 200 || c.A != 255 {
		t.Errorf("white disc = %v", c)
	}
	if c := black.RGBAAt(size/2, 14); c.R > 60 || c.A != 255 {
		t.Errorf("black disc = %v", c)
	}

	if empty := Fallback(board.NoPiece, size); empty.RGBAAt(size/2, size/2).A != 0 {
		t.Error("NoPiece should be blank")
	}
}

func TestFallbacks(t *testing.T) {
	set := Fallbacks(16)
	if len(set) != 12 {
		t.Fatalf("len = %d", len(set))
	}
	for _, p := range Pieces() {
		if set[p] == nil {
			t.Errorf("missing %v", p)
		}
	}
}

func TestLoadAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == view.IconPath(board.WhiteKing) {
			w.Header().Set("Content-Type", "image/svg+xml")
			w.Write([]byte(redSquare))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	const size = 32
	set := LoadAll(context.Background(), arbiter.New(srv.URL), size, zerolog.Nop())

	if len(set) != 12 {
		t.Fatalf("len = %d", len(set))
	}
	if !isRed(set[board.WhiteKing], size/2, size/2) {
		t.Error("white king should use the served icon")
	}
	for _, p := range Pieces() {
		if p == board.WhiteKing {
			continue
		}
		if isRed(set[p], size/2, size/2) {
			t.Errorf("%v should use its fallback", p)
		}
	}
}
