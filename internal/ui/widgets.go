package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	buttonDisabled  = color.RGBA{44, 46, 52, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	accentBorder    = color.RGBA{116, 215, 160, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusBusy      = color.RGBA{100, 180, 255, 255}
	statusCheck     = color.RGBA{255, 200, 80, 255}
	widgetBg        = color.RGBA{48, 52, 58, 255}
	widgetHoverBg   = color.RGBA{65, 70, 78, 255}
	checkboxCheck   = color.RGBA{76, 175, 120, 255}
)

// Button is a clickable rectangle. Primary buttons use the accent color.
type Button struct {
	X, Y, W, H int
	Label      string
	Primary    bool
	Disabled   bool
	OnClick    func()
	hovered    bool
	pressed    bool
}

// NewButton creates a button.
func NewButton(x, y, w, h int, label string, primary bool, onClick func()) *Button {
	return &Button{X: x, Y: y, W: w, H: h, Label: label, Primary: primary, OnClick: onClick}
}

// Contains reports whether the point lies on the button.
func (b *Button) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Update tracks hover state and fires OnClick. It reports whether the click
// was consumed.
func (b *Button) Update(input *InputHandler) bool {
	b.hovered = b.Contains(input.MousePosition())
	b.pressed = input.IsLeftPressed() && b.hovered
	if b.Disabled {
		return input.IsLeftJustPressed() && b.hovered
	}
	if input.IsLeftJustPressed() && b.hovered && b.OnClick != nil {
		b.OnClick()
		return true
	}
	return false
}

// Draw renders the button.
func (b *Button) Draw(screen *ebiten.Image) {
	bg, border, fg := buttonBg, buttonBorder, textSecondary
	switch {
	case b.Disabled:
		bg, border, fg = buttonDisabled, buttonBorder, textMuted
	case b.Primary:
		bg, border, fg = accentColor, accentPressed, textPrimary
		if b.pressed {
			bg = accentPressed
		} else if b.hovered {
			bg, border = accentHover, accentBorder
		}
	default:
		if b.pressed {
			bg = buttonPressedBg
		} else if b.hovered {
			bg, border = buttonHoverBg, accentColor
		}
	}

	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, border, false)
	drawTextCentered(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, fg)
}

// Checkbox is a labeled toggle.
type Checkbox struct {
	X, Y     int
	Label    string
	Checked  bool
	OnChange func(checked bool)
	hovered  bool
}

const checkboxSize = 20

// Update toggles the box on click and reports whether the click was consumed.
func (cb *Checkbox) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	cb.hovered = mx >= cb.X && mx < cb.X+200 && my >= cb.Y && my < cb.Y+checkboxSize+4

	if input.IsLeftJustPressed() && cb.hovered {
		cb.Checked = !cb.Checked
		if cb.OnChange != nil {
			cb.OnChange(cb.Checked)
		}
		return true
	}
	return false
}

// Draw renders the checkbox.
func (cb *Checkbox) Draw(screen *ebiten.Image) {
	x, y, size := float32(cb.X), float32(cb.Y), float32(checkboxSize)

	bg, border := widgetBg, buttonBorder
	if cb.hovered {
		bg, border = widgetHoverBg, accentColor
	} else if cb.Checked {
		border = checkboxCheck
	}
	vector.DrawFilledRect(screen, x, y, size, size, bg, false)
	vector.StrokeRect(screen, x, y, size, size, 2, border, false)

	if cb.Checked {
		vector.StrokeLine(screen, x+4, y+10, x+8, y+14, 2, checkboxCheck, false)
		vector.StrokeLine(screen, x+8, y+14, x+16, y+6, 2, checkboxCheck, false)
	}

	fg := textSecondary
	if cb.Checked {
		fg = textPrimary
	}
	drawTextMiddle(screen, cb.Label, cb.X+30, cb.Y+checkboxSize/2, fg)
}

// DrawDivider draws a horizontal divider line.
func DrawDivider(screen *ebiten.Image, x, y, w int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), 1, dividerColor, false)
}

func drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	drawTextFace(screen, s, RegularFace(), float64(x), float64(y), c)
}

// drawTextMiddle draws s left-aligned at x and vertically centered on y.
func drawTextMiddle(screen *ebiten.Image, s string, x, y int, c color.Color) {
	f := RegularFace()
	_, h := MeasureText(s, f)
	drawTextFace(screen, s, f, float64(x), float64(y)-h/2, c)
}

func drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	f := RegularFace()
	w, h := MeasureText(s, f)
	drawTextFace(screen, s, f, float64(centerX)-w/2, float64(centerY)-h/2, c)
}

func drawTextFace(screen *ebiten.Image, s string, f *text.GoTextFace, x, y float64, c color.Color) {
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, f, op)
}
