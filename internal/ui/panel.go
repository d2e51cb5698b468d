package ui

import (
	"fmt"

	"github.com/hailam/minichess/internal/controller"
	"github.com/hailam/minichess/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 28
	ButtonHeight   = 40
	SectionLabelH  = 20
	moveRowHeight  = 22
	statusBarH     = 70
)

// Panel is the side panel with the controls, move history and status.
type Panel struct {
	game *Game

	newGameBtn *Button
	flipBtn    *Button
	sound      *Checkbox

	scrollY    int
	maxScrollY int
	lastRows   int
}

// NewPanel creates the panel for g.
func NewPanel(g *Game, soundOn bool) *Panel {
	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2

	newGameY := PanelPadding + 8
	flipY := newGameY + ButtonHeight + 8
	soundY := flipY + ButtonHeight - 6 + 14

	return &Panel{
		game:       g,
		newGameBtn: NewButton(contentX, newGameY, contentW, ButtonHeight, "New Game", true, g.requestNewGame),
		flipBtn:    NewButton(contentX, flipY, contentW, ButtonHeight-6, "Flip Board", false, g.requestFlip),
		sound: &Checkbox{
			X: contentX, Y: soundY,
			Label:    "Sound",
			Checked:  soundOn,
			OnChange: g.setSound,
		},
	}
}

func (p *Panel) historyStartY() int {
	return p.sound.Y + checkboxSize + SectionSpacing
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	_, wheelY := ebiten.Wheel()
	if wheelY != 0 && mx >= BoardSize && my >= p.historyStartY() && my < ScreenHeight-statusBarH {
		p.scrollY -= int(wheelY * 30)
		p.clampScroll()
	}

	if p.newGameBtn.Update(input) {
		return true
	}
	if p.flipBtn.Update(input) {
		return true
	}
	return p.sound.Update(input)
}

func (p *Panel) clampScroll() {
	if p.scrollY > p.maxScrollY {
		p.scrollY = p.maxScrollY
	}
	if p.scrollY < 0 {
		p.scrollY = 0
	}
}

// Draw renders the panel for scene.
func (p *Panel) Draw(screen *ebiten.Image, scene *controller.Scene) {
	vector.DrawFilledRect(screen, float32(BoardSize), 0, float32(PanelWidth), float32(ScreenHeight), panelBg, false)

	p.newGameBtn.Disabled = scene.ConfirmOpen
	p.newGameBtn.Draw(screen)
	p.flipBtn.Draw(screen)
	p.sound.Draw(screen)

	historyY := p.historyStartY()
	drawText(screen, "Moves", BoardSize+PanelPadding, historyY, textMuted)
	p.drawMoveHistory(screen, scene.Moves, historyY+SectionLabelH+4)

	p.drawStatusBar(screen, scene)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, rows []view.MoveRow, startY int) {
	x := BoardSize + PanelPadding
	if len(rows) == 0 {
		p.lastRows = 0
		p.scrollY, p.maxScrollY = 0, 0
		drawText(screen, "No moves yet", x, startY+5, textMuted)
		return
	}

	maxY := ScreenHeight - statusBarH
	visible := maxY - startY
	content := len(rows) * moveRowHeight
	p.maxScrollY = max(content-visible, 0)

	// Follow the newest move when the list grows.
	if len(rows) > p.lastRows {
		p.scrollY = p.maxScrollY
	}
	p.lastRows = len(rows)
	p.clampScroll()

	first := p.scrollY / moveRowHeight
	y := startY - p.scrollY%moveRowHeight
	for i := first; i < len(rows) && y <= maxY-moveRowHeight; i++ {
		if y >= startY {
			if i%2 == 1 {
				vector.DrawFilledRect(screen, float32(x-4), float32(y-2),
					float32(PanelWidth-PanelPadding*2+8), float32(moveRowHeight), moveRowAlt, false)
			}
			r := rows[i]
			drawText(screen, fmt.Sprintf("%d.", r.Number), x, y, textMuted)
			drawText(screen, r.White, x+40, y, textPrimary)
			drawText(screen, r.Black, x+140, y, textPrimary)
		}
		y += moveRowHeight
	}

	if p.maxScrollY > 0 {
		pct := float32(p.scrollY) / float32(p.maxScrollY)
		h := max(float32(visible)*float32(visible)/float32(content), 20)
		iy := float32(startY) + pct*(float32(visible)-h)
		vector.DrawFilledRect(screen, float32(BoardSize+PanelWidth-8), iy, 4, h, textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image, scene *controller.Scene) {
	statusY := ScreenHeight - statusBarH
	x := BoardSize + PanelPadding

	DrawDivider(screen, x, statusY-10, PanelWidth-PanelPadding*2)

	c := textPrimary
	if scene.Checks.ColorInCheck(scene.SideToMove) {
		c = statusCheck
	}
	drawText(screen, scene.Status, x, statusY, c)

	if scene.Busy {
		drawText(screen, "Waiting for arbiter...", x, statusY+22, statusBusy)
	}
}
