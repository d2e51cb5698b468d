// Package sprite rasterizes piece icons. Icons are SVG documents served by the
// arbiter; a piece whose icon cannot be fetched or parsed is drawn as a disc
// with its letter instead.
package sprite

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/view"
	"github.com/rs/zerolog"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
)

// maxFetches bounds concurrent icon requests.
const maxFetches = 4

// Fetcher retrieves an asset by path.
type Fetcher interface {
	Asset(ctx context.Context, path string) ([]byte, error)
}

// Set holds one image per piece.
type Set map[board.Piece]*image.RGBA

// Pieces lists every piece in encoding order.
func Pieces() []board.Piece {
	pieces := make([]board.Piece, 0, 12)
	for p := board.WhitePawn; p <= board.BlackKing; p++ {
		pieces = append(pieces, p)
	}
	return pieces
}

// Rasterize renders an SVG document into a size×size image.
func Rasterize(data []byte, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

var (
	letterOnce sync.Once
	letterFont *opentype.Font
	letterErr  error
)

func loadLetterFont() (*opentype.Font, error) {
	letterOnce.Do(func() {
		letterFont, letterErr = opentype.Parse(gobold.TTF)
	})
	return letterFont, letterErr
}

// Fallback draws p as a disc in its side's color with the piece letter on top.
func Fallback(p board.Piece, size int) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	if p == board.NoPiece || size <= 0 {
		return rgba
	}

	fill, ink := color.RGBA{245, 245, 240, 255}, color.RGBA{30, 30, 30, 255}
	if p.Color() == board.Black {
		fill, ink = ink, fill
	}

	c := float64(size) / 2
	r := float64(size) * 0.38
	disc(rgba, c, r, ink)
	disc(rgba, c, r-float64(size)*0.04, fill)

	f, err := loadLetterFont()
	if err != nil {
		return rgba
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size) * 0.45,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return rgba
	}
	defer face.Close()

	letter := strings.ToUpper(string(p.Type().Char()))
	d := &font.Drawer{Dst: rgba, Src: image.NewUniform(ink), Face: face}
	m := face.Metrics()
	w := d.MeasureString(letter)
	d.Dot = fixed.Point26_6{
		X: fixed.I(size/2) - w/2,
		Y: fixed.I(size/2) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(letter)
	return rgba
}

func disc(dst *image.RGBA, c, r float64, clr color.Color) {
	size := dst.Bounds().Dx()
	scanner := rasterx.NewScannerGV(size, size, dst, dst.Bounds())
	filler := rasterx.NewFiller(size, size, scanner)
	filler.SetColor(clr)
	rasterx.AddCircle(c, c, r, filler)
	filler.Draw()
}

// Fallbacks returns the fallback image of every piece.
func Fallbacks(size int) Set {
	set := make(Set, 12)
	for _, p := range Pieces() {
		set[p] = Fallback(p, size)
	}
	return set
}

// LoadAll fetches and rasterizes every piece icon. It never fails: a piece
// whose icon is unavailable gets its fallback image.
func LoadAll(ctx context.Context, f Fetcher, size int, log zerolog.Logger) Set {
	var (
		mu  sync.Mutex
		set = make(Set, 12)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFetches)
	for _, p := range Pieces() {
		g.Go(func() error {
			path := view.IconPath(p)
			img, err := load(ctx, f, path, size)
			if err != nil {
				log.Warn().Err(err).Str("icon", path).Msg("using fallback icon")
				img = Fallback(p, size)
			}
			mu.Lock()
			set[p] = img
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return set
}

func load(ctx context.Context, f Fetcher, path string, size int) (*image.RGBA, error) {
	data, err := f.Asset(ctx, path)
	if err != nil {
		return nil, err
	}
	return Rasterize(data, size)
}
