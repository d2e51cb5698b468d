package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler snapshots mouse state once per frame.
type InputHandler struct {
	mouseX, mouseY  int
	leftPressed     bool
	leftJustPressed bool
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update updates the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	// Layout returns a fixed logical size, so the cursor is already in
	// logical coordinates.
	ih.mouseX, ih.mouseY = ebiten.CursorPosition()
	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	// A tap counts as a click.
	if touches := inpututil.AppendJustPressedTouchIDs(nil); len(touches) > 0 {
		ih.mouseX, ih.mouseY = ebiten.TouchPosition(touches[0])
		ih.leftJustPressed = true
	}
}

// MousePosition returns the current mouse position in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// IsLeftPressed returns true if the left mouse button is currently pressed.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// KeyAction is a keyboard shortcut.
type KeyAction int

const (
	KeyNone KeyAction = iota
	KeyCancel
	KeyFlip
	KeyNewGame
	KeyToggleSound
)

var keyBindings = []struct {
	key    ebiten.Key
	action KeyAction
}{
	{ebiten.KeyEscape, KeyCancel},
	{ebiten.KeyF, KeyFlip},
	{ebiten.KeyN, KeyNewGame},
	{ebiten.KeyM, KeyToggleSound},
}

// JustPressedAction returns the shortcut pressed this frame, if any.
func JustPressedAction() KeyAction {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			return b.action
		}
	}
	return KeyNone
}
