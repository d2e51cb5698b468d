package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hailam/minichess/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jonboulle/clockwork"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// Toast represents a notification message.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager manages toast notifications.
type ToastManager struct {
	clock    clockwork.Clock
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager(clock clockwork.Clock) *ToastManager {
	return &ToastManager{
		clock:    clock,
		maxStack: 3,
	}
}

// Show displays a new toast notification.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: tm.clock.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := tm.clock.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

func toastColors(t ToastType, alpha float64) (bg, fg color.RGBA) {
	a := func(v float64) uint8 { return uint8(v * alpha) }
	switch t {
	case ToastWarning:
		return color.RGBA{180, 140, 20, a(220)}, color.RGBA{40, 30, 0, a(255)}
	case ToastError:
		return color.RGBA{180, 50, 50, a(220)}, color.RGBA{255, 255, 255, a(255)}
	case ToastSuccess:
		return color.RGBA{50, 150, 50, a(220)}, color.RGBA{255, 255, 255, a(255)}
	default:
		return color.RGBA{50, 100, 150, a(220)}, color.RGBA{255, 255, 255, a(255)}
	}
}

// Draw renders the active toasts centered above the board.
func (tm *ToastManager) Draw(screen *ebiten.Image, centerX float64) {
	f := RegularFace()
	if f == nil {
		return
	}

	now := tm.clock.Now()
	y := 50.0
	for _, t := range tm.toasts {
		elapsed := now.Sub(t.StartTime).Seconds()
		duration := t.Duration.Seconds()

		alpha := 1.0
		const fade = 0.2
		if elapsed < fade {
			alpha = elapsed / fade
		} else if elapsed > duration-fade {
			alpha = (duration - elapsed) / fade
		}
		alpha = math.Max(0, math.Min(1, alpha))
		bg, fg := toastColors(t.Type, alpha)

		w, h := MeasureText(t.Message, f)
		const padding = 12.0
		boxW, boxH := w+padding*2, h+padding*2
		x := centerX - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+padding, y+padding)
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(screen, t.Message, f, op)

		y += boxH + 8
	}
}

// ShakeAnimation represents a piece shake effect.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation represents a square flash effect.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager manages visual animations.
type AnimationManager struct {
	clock   clockwork.Clock
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager(clock clockwork.Clock) *AnimationManager {
	return &AnimationManager{clock: clock}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: am.clock.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 8.0,
	})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: am.clock.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := am.clock.Now()

	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// ShakeOffset returns the current shake offset for a square.
func (am *AnimationManager) ShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := am.clock.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1.0 {
			return 0, 0
		}
		// Damped sine
		amplitude := s.Intensity * math.Exp(-5*progress)
		return amplitude * math.Sin(40*progress), 0
	}
	return 0, 0
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer, flipped bool) {
	size := float32(r.SquareSize())
	for _, f := range am.flashes {
		progress := am.clock.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}
		alpha := 1.0 - progress
		c := color.RGBA{f.Color.R, f.Color.G, f.Color.B, uint8(float64(f.Color.A) * alpha)}

		x, y := r.SquareToScreen(f.Square, flipped)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
	}
}

// FeedbackManager coordinates toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager(clock clockwork.Clock, audio *AudioManager) *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(clock),
		animations: NewAnimationManager(clock),
		audio:      audio,
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders flashes over the board and toasts above it.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer, flipped bool) {
	fm.animations.DrawFlashes(screen, r, flipped)
	fm.toasts.Draw(screen, float64(r.BoardSize())/2)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Audio returns the audio manager.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// OnMoveRejected shakes the moved piece and flashes the destination.
func (fm *FeedbackManager) OnMoveRejected(from, to board.Square) {
	fm.animations.StartShake(from)
	fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
	fm.audio.Play(SoundInvalid)
}

// OnError reports a failure that is not tied to a move.
func (fm *FeedbackManager) OnError() {
	fm.audio.Play(SoundInvalid)
}

// OnMovePlayed plays the move or capture sound.
func (fm *FeedbackManager) OnMovePlayed(capture bool) {
	if capture {
		fm.audio.Play(SoundCapture)
	} else {
		fm.audio.Play(SoundMove)
	}
}

// OnNotice shows an informational toast.
func (fm *FeedbackManager) OnNotice(msg string) {
	fm.toasts.Show(msg, ToastSuccess, 2*time.Second)
	fm.audio.Play(SoundNotify)
}
