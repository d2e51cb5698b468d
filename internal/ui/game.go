// Package ui implements the windowed client surface using Ebitengine.
package ui

import (
	"context"
	"time"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/controller"
	"github.com/hailam/minichess/internal/sprite"
	"github.com/hailam/minichess/internal/storage"
	"github.com/hailam/minichess/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// Session is the part of the controller the window drives.
type Session interface {
	controller.Gestures
	Start()
	Poll() int
	Close()
}

// Config holds the window's dependencies. Storage may be nil, in which case
// preferences are not persisted.
type Config struct {
	Logger  zerolog.Logger
	Clock   clockwork.Clock
	Storage *storage.Storage
	Prefs   *storage.Preferences
	// SoundAllowed is the configured master switch; the panel toggle only
	// applies while it is set.
	SoundAllowed bool
	// Icons serves piece icons. Nil keeps the fallback discs.
	Icons sprite.Fetcher
}

// Game implements ebiten.Game and controller.Surface.
type Game struct {
	log     zerolog.Logger
	storage *storage.Storage
	prefs   *storage.Preferences

	session Session
	scene   controller.Scene

	renderer *Renderer
	sprites  *SpriteManager
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	confirm  *ConfirmModal
	alert    *AlertModal
	backdrop *Backdrop

	soundAllowed bool

	ctx    context.Context
	cancel context.CancelFunc
}

var _ controller.Surface = (*Game)(nil)

// NewGame creates the window surface. Attach a session before running it.
func NewGame(cfg Config) *Game {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Prefs == nil {
		cfg.Prefs = storage.DefaultPreferences()
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		log:          cfg.Logger,
		storage:      cfg.Storage,
		prefs:        cfg.Prefs,
		input:        NewInputHandler(),
		backdrop:     NewBackdrop(),
		alert:        NewAlertModal(),
		soundAllowed: cfg.SoundAllowed,
		ctx:          ctx,
		cancel:       cancel,
	}
	g.scene.Selected = board.NoSquare

	g.sprites = NewSpriteManager(SquareSize, cfg.Logger)
	if cfg.Icons != nil {
		g.sprites.Load(ctx, cfg.Icons)
	}
	g.renderer = NewRenderer(view.Layout{SquareSize: SquareSize}, g.sprites)

	audio := NewAudioManager(g.soundAllowed && g.prefs.SoundEnabled)
	g.feedback = NewFeedbackManager(cfg.Clock, audio)
	g.panel = NewPanel(g, g.prefs.SoundEnabled)
	g.confirm = NewConfirmModal(g.confirmNewGame, g.dismissNewGame, g.requestCancel)

	g.checkFirstLaunch()
	return g
}

// checkFirstLaunch greets a user who has never run the client.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}
	first, err := g.storage.IsFirstLaunch()
	if err != nil {
		g.log.Warn().Err(err).Msg("failed to check first launch")
		return
	}
	if !first {
		return
	}
	g.feedback.toasts.Show("Welcome! Click a piece to see where it can go.", ToastInfo, 4*time.Second)
	if err := g.storage.MarkFirstLaunchComplete(); err != nil {
		g.log.Warn().Err(err).Msg("failed to record first launch")
	}
}

// Attach connects the session and starts it.
func (g *Game) Attach(s Session) {
	g.session = s
	s.Start()
}

// Close stops the session and any icon download.
func (g *Game) Close() {
	g.cancel()
	if g.session != nil {
		g.session.Close()
	}
}

// Present implements controller.Surface.
func (g *Game) Present(scene controller.Scene) {
	g.scene = scene
	g.confirm.Sync(scene.ConfirmOpen, scene.Busy)
}

// Alert implements controller.Surface.
func (g *Game) Alert(msg string) {
	g.feedback.OnError()
	g.alert.Push(msg)
}

// Notify implements controller.Surface.
func (g *Game) Notify(msg string) {
	g.feedback.OnNotice(msg)
}

// MovePlayed implements controller.Surface.
func (g *Game) MovePlayed(from, to board.Square, capture bool) {
	g.feedback.OnMovePlayed(capture)
}

// MoveFailed implements controller.Surface.
func (g *Game) MoveFailed(from, to board.Square, msg string) {
	g.feedback.OnMoveRejected(from, to)
	g.alert.Push(msg)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()
	g.sprites.Update()

	if g.session == nil {
		return nil
	}
	g.session.Poll()

	// Modals block everything beneath them; alerts sit on top.
	if g.alert.Update(g.input) {
		return nil
	}
	if g.confirm.Update(g.input) {
		return nil
	}

	switch JustPressedAction() {
	case KeyCancel:
		g.requestCancel()
	case KeyFlip:
		g.requestFlip()
	case KeyNewGame:
		g.requestNewGame()
	case KeyToggleSound:
		g.panel.sound.Checked = !g.panel.sound.Checked
		g.setSound(g.panel.sound.Checked)
	}

	if g.panel.HandleInput(g.input) {
		return nil
	}

	if g.input.IsLeftJustPressed() {
		mx, my := g.input.MousePosition()
		if sq := g.renderer.ScreenToSquare(mx, my, g.scene.Flipped); sq.IsValid() {
			g.activate(sq)
		}
	}
	g.updateCursor()
	return nil
}

func (g *Game) updateCursor() {
	mx, my := g.input.MousePosition()
	shape := ebiten.CursorShapeDefault
	if sq := g.renderer.ScreenToSquare(mx, my, g.scene.Flipped); sq.IsValid() {
		if c := g.scene.Frame.Cell(sq); c.Piece != board.NoPiece || c.Mark != view.MarkNone {
			shape = ebiten.CursorShapePointer
		}
	}
	ebiten.SetCursorShape(shape)
}

func (g *Game) requestNewGame() {
	if g.session != nil {
		g.session.NewGameRequested()
	}
}

func (g *Game) confirmNewGame() {
	if g.session != nil {
		g.session.NewGameConfirmed()
	}
}

func (g *Game) dismissNewGame() {
	if g.session != nil {
		g.session.NewGameDismissed()
	}
}

// requestCancel clears the selection and closes any confirmation.
func (g *Game) requestCancel() {
	if g.session != nil {
		g.session.CancelRequested()
	}
}

func (g *Game) requestFlip() {
	if g.session != nil {
		g.session.FlipRequested()
	}
}

func (g *Game) setSound(on bool) {
	g.prefs.SoundEnabled = on
	g.feedback.Audio().SetEnabled(g.soundAllowed && on)
	g.savePreferences(func(p *storage.Preferences) { p.SoundEnabled = on })
}

// OrientationChanged persists the board orientation.
func (g *Game) OrientationChanged(flipped bool) {
	g.prefs.Flipped = flipped
	g.savePreferences(func(p *storage.Preferences) { p.Flipped = flipped })
}

func (g *Game) savePreferences(fn func(*storage.Preferences)) {
	if g.storage == nil {
		return
	}
	if err := g.storage.UpdatePreferences(fn); err != nil {
		g.log.Warn().Err(err).Msg("failed to save preferences")
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawFrame(screen, &g.scene.Frame, g.feedback.Animations())
	g.feedback.Draw(screen, g.renderer, g.scene.Flipped)
	g.panel.Draw(screen, &g.scene)

	g.confirm.Draw(screen, g.backdrop)
	g.alert.Draw(screen, g.backdrop)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
