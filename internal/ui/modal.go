package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Modal dimensions
const (
	ModalWidth   = 380
	ModalHeight  = 200
	ModalPadX    = 24
	ModalPadY    = 20
	modalHeaderH = 44
	modalButtonW = 100
	modalButtonH = 38
)

var (
	modalTint   = color.RGBA{0, 0, 0, 100}
	modalBg     = color.RGBA{38, 40, 45, 255}
	modalHeader = color.RGBA{48, 52, 58, 255}
	modalBorder = color.RGBA{58, 62, 68, 255}
)

// Modal is a centered dialog with a title, a message and a row of buttons.
// While visible it consumes all input.
type Modal struct {
	visible bool
	title   string
	message string

	x, y int

	buttons []*Button

	// Enter triggers onAccept, Escape triggers onEscape or, when unset,
	// onDismiss. A click outside the dialog triggers onDismiss when
	// backdropDismisses is set.
	onAccept          func()
	onDismiss         func()
	onEscape          func()
	backdropDismisses bool
}

func newModal(title string) *Modal {
	return &Modal{
		title: title,
		x:     (ScreenWidth - ModalWidth) / 2,
		y:     (ScreenHeight - ModalHeight) / 2,
	}
}

// addButtons lays out buttons right-aligned along the bottom edge, in order.
func (m *Modal) addButtons(buttons ...*Button) {
	const spacing = 12
	y := m.y + ModalHeight - ModalPadY - modalButtonH
	x := m.x + ModalWidth - ModalPadX - len(buttons)*modalButtonW - (len(buttons)-1)*spacing
	for _, b := range buttons {
		b.X, b.Y, b.W, b.H = x, y, modalButtonW, modalButtonH
		x += modalButtonW + spacing
	}
	m.buttons = buttons
}

// IsVisible returns true if the modal is visible.
func (m *Modal) IsVisible() bool {
	return m.visible
}

func (m *Modal) contains(x, y int) bool {
	return x >= m.x && x < m.x+ModalWidth && y >= m.y && y < m.y+ModalHeight
}

// Update handles input for the modal. It returns true while the modal is
// visible.
func (m *Modal) Update(input *InputHandler) bool {
	if !m.visible {
		return false
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		fn := m.onEscape
		if fn == nil {
			fn = m.onDismiss
		}
		if fn != nil {
			fn()
		}
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if m.onAccept != nil {
			m.onAccept()
		}
		return true
	}

	for _, b := range m.buttons {
		if b.Update(input) {
			return true
		}
	}

	if m.backdropDismisses && input.IsLeftJustPressed() && !m.contains(input.MousePosition()) {
		if m.onDismiss != nil {
			m.onDismiss()
		}
	}
	return true
}

// Draw renders the modal over a blurred backdrop.
func (m *Modal) Draw(screen *ebiten.Image, backdrop *Backdrop) {
	if !m.visible {
		return
	}

	if backdrop != nil {
		backdrop.Draw(screen, modalTint)
	}

	x, y := float32(m.x), float32(m.y)
	vector.DrawFilledRect(screen, x, y, ModalWidth, ModalHeight, modalBg, false)
	vector.StrokeRect(screen, x, y, ModalWidth, ModalHeight, 2, modalBorder, false)
	vector.DrawFilledRect(screen, x, y, ModalWidth, modalHeaderH, modalHeader, false)

	f := BoldFace()
	w, h := MeasureText(m.title, f)
	drawTextFace(screen, m.title, f, float64(m.x)+ModalWidth/2-w/2, float64(m.y)+modalHeaderH/2-h/2, textPrimary)

	lineY := m.y + modalHeaderH + ModalPadY
	for _, line := range wrapText(m.message, ModalWidth-ModalPadX*2) {
		drawText(screen, line, m.x+ModalPadX, lineY, textSecondary)
		lineY += 20
	}

	for _, b := range m.buttons {
		b.Draw(screen)
	}
}

// wrapText breaks s into lines no wider than width pixels.
func wrapText(s string, width int) []string {
	f := RegularFace()
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if w, _ := MeasureText(candidate, f); w > float64(width) && line != "" {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// ConfirmModal asks whether to abandon the current game.
type ConfirmModal struct {
	*Modal
	startBtn *Button
}

// NewConfirmModal creates the new-game confirmation. onConfirm runs for the
// Start button or Enter, onDismiss for Cancel or a backdrop click. Escape runs
// onCancel, which also drops the board selection.
func NewConfirmModal(onConfirm, onDismiss, onCancel func()) *ConfirmModal {
	m := newModal("New Game")
	m.message = "Start a new game? The current game will be lost."
	m.onAccept = onConfirm
	m.onDismiss = onDismiss
	m.onEscape = onCancel
	m.backdropDismisses = true

	startBtn := NewButton(0, 0, 0, 0, "Start", true, onConfirm)
	m.addButtons(NewButton(0, 0, 0, 0, "Cancel", false, onDismiss), startBtn)
	return &ConfirmModal{Modal: m, startBtn: startBtn}
}

// Sync shows or hides the modal. While busy the Start button is disabled.
func (cm *ConfirmModal) Sync(open, busy bool) {
	cm.visible = open
	cm.startBtn.Disabled = busy
	if busy {
		cm.startBtn.Label = "Starting..."
	} else {
		cm.startBtn.Label = "Start"
	}
}

// AlertModal reports failures one at a time until each is acknowledged.
type AlertModal struct {
	*Modal
	queue []string
}

// NewAlertModal creates the alert dialog.
func NewAlertModal() *AlertModal {
	am := &AlertModal{Modal: newModal("Error")}
	am.onAccept = am.acknowledge
	am.onDismiss = am.acknowledge
	am.addButtons(NewButton(0, 0, 0, 0, "OK", true, am.acknowledge))
	return am
}

// Push queues msg and shows it if nothing else is pending.
func (am *AlertModal) Push(msg string) {
	am.queue = append(am.queue, msg)
	am.show()
}

func (am *AlertModal) show() {
	am.visible = len(am.queue) > 0
	if am.visible {
		am.message = am.queue[0]
	}
}

func (am *AlertModal) acknowledge() {
	if len(am.queue) > 0 {
		am.queue = am.queue[1:]
	}
	am.show()
}
