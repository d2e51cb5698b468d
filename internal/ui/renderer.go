package ui

import (
	"image/color"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	CaptureColor   color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	ButtonColor    color.RGBA
	ButtonHover    color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		CaptureColor:   color.RGBA{200, 80, 70, 200},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
		ButtonColor:    color.RGBA{60, 64, 72, 255},
		ButtonHover:    color.RGBA{80, 84, 92, 255},
	}
}

// Renderer draws frames onto the board area.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
	layout  view.Layout
}

// NewRenderer creates a renderer for the given layout.
func NewRenderer(layout view.Layout, sprites *SpriteManager) *Renderer {
	return &Renderer{
		sprites: sprites,
		theme:   DefaultTheme(),
		layout:  layout,
	}
}

// DrawFrame draws every cell of f: square color, check and selection
// overlays, pieces (shaken when animated), then move markers.
func (r *Renderer) DrawFrame(screen *ebiten.Image, f *view.Frame, anims *AnimationManager) {
	size := float32(r.layout.SquareSize)

	for i := range f.Cells {
		cell := &f.Cells[i]
		x, y := r.cellOrigin(cell.Row, cell.Col)

		c := r.theme.DarkSquare
		if cell.Light {
			c = r.theme.LightSquare
		}
		vector.DrawFilledRect(screen, x, y, size, size, c, false)

		if cell.InCheck {
			vector.DrawFilledRect(screen, x, y, size, size, r.theme.CheckColor, false)
		}
		if cell.Mark == view.MarkSelected {
			vector.DrawFilledRect(screen, x, y, size, size, r.theme.SelectedSquare, false)
		}

		if cell.Piece != board.NoPiece {
			px, py := float64(x), float64(y)
			if anims != nil {
				dx, dy := anims.ShakeOffset(cell.Square)
				px += dx
				py += dy
			}
			r.sprites.DrawPieceAt(screen, cell.Piece, px, py)
		}

		switch cell.Mark {
		case view.MarkLegalMove:
			vector.DrawFilledCircle(screen, x+size/2, y+size/2, size*0.15, r.theme.LegalMoveColor, true)
		case view.MarkLegalCapture:
			vector.StrokeCircle(screen, x+size/2, y+size/2, size*0.44, size*0.07, r.theme.CaptureColor, true)
		}
	}

	r.drawCoordinates(screen, f)
}

// drawCoordinates labels the bottom row with files and the left column with
// ranks, in the square's opposite color.
func (r *Renderer) drawCoordinates(screen *ebiten.Image, f *view.Frame) {
	face := SmallFace()
	if face == nil {
		return
	}
	size := float64(r.layout.SquareSize)
	pad := 3.0

	for col := 0; col < 8; col++ {
		cell := f.At(7, col)
		x, y := r.cellOrigin(7, col)
		label := string(rune('a' + cell.Square.File()))
		w, h := MeasureText(label, face)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x)+size-w-pad, float64(y)+size-h-pad)
		op.ColorScale.ScaleWithColor(r.labelColor(cell))
		text.Draw(screen, label, face, op)
	}
	for row := 0; row < 8; row++ {
		cell := f.At(row, 0)
		x, y := r.cellOrigin(row, 0)
		label := string(rune('1' + cell.Square.Rank()))
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x)+pad, float64(y)+pad)
		op.ColorScale.ScaleWithColor(r.labelColor(cell))
		text.Draw(screen, label, face, op)
	}
}

func (r *Renderer) labelColor(c view.Cell) color.RGBA {
	if c.Light {
		return r.theme.DarkSquare
	}
	return r.theme.LightSquare
}

func (r *Renderer) cellOrigin(row, col int) (float32, float32) {
	x := r.layout.X + col*r.layout.SquareSize
	y := r.layout.Y + row*r.layout.SquareSize
	return float32(x), float32(y)
}

// SquareToScreen returns the top-left pixel of sq.
func (r *Renderer) SquareToScreen(sq board.Square, flipped bool) (int, int) {
	return r.layout.Origin(sq, flipped)
}

// ScreenToSquare converts screen coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int, flipped bool) board.Square {
	return r.layout.SquareAt(x, y, flipped)
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.layout.SquareSize
}

// BoardSize returns the board edge in pixels.
func (r *Renderer) BoardSize() int {
	return r.layout.Size()
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
