// Package controller drives a game session: it turns gestures into arbiter
// requests and applies the responses to the board state.
//
// A Controller is not safe for concurrent use. Gestures, Poll and Await must
// all be called from the same goroutine (the frame loop or the console loop).
// Arbiter calls run on their own goroutines and hand their results back over
// a channel, so state is only ever touched by that one goroutine.
package controller

import (
	"context"
	"errors"

	"github.com/hailam/minichess/internal/arbiter"
	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/state"
	"github.com/hailam/minichess/internal/view"
	"github.com/rs/zerolog"
)

// Arbiter is the remote authority the controller talks to.
type Arbiter interface {
	GetBoard(ctx context.Context) (board.Update, error)
	GetLegalMoves(ctx context.Context, from board.Square) board.SquareSet
	MakeMove(ctx context.Context, from, to board.Square) (board.Update, error)
	GetMoveList(ctx context.Context) []string
	ResetGame(ctx context.Context) error
}

// Gestures are the user intentions a surface delivers.
type Gestures interface {
	SquareActivated(sq board.Square)
	NewGameRequested()
	NewGameConfirmed()
	NewGameDismissed()
	FlipRequested()
	CancelRequested()
}

// Surface presents the session.
type Surface interface {
	// Present shows a new scene. It is called after every change.
	Present(scene Scene)
	// Alert reports a failure the user must acknowledge.
	Alert(msg string)
	// Notify shows a transient message.
	Notify(msg string)
	// MovePlayed is called once the arbiter accepted a move.
	MovePlayed(from, to board.Square, capture bool)
	// MoveFailed reports a submitted move that was not played.
	MoveFailed(from, to board.Square, msg string)
}

// Scene is everything a surface needs to draw one state of the session.
type Scene struct {
	Frame       view.Frame
	Moves       []view.MoveRow
	SideToMove  board.Color
	Checks      board.CheckFlags
	Status      string
	Selected    board.Square
	Busy        bool
	ConfirmOpen bool
	Flipped     bool
}

// User-facing messages.
const (
	MsgBoardFailed = "Failed to load board"
	MsgMoveFailed  = "Failed to make move"
	MsgResetFailed = "Failed to start a new game"
	MsgNewGame     = "New game started"
)

// completionBuffer is the capacity of the completion channel.
const completionBuffer = 32

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithFlipped sets the initial orientation.
func WithFlipped(flipped bool) Option {
	return func(c *Controller) { c.state.SetFlipped(flipped) }
}

// OnFlip registers a callback run whenever the orientation changes.
func OnFlip(fn func(flipped bool)) Option {
	return func(c *Controller) { c.onFlip = fn }
}

// Controller is the board controller of one session.
type Controller struct {
	arbiter Arbiter
	surface Surface
	log     zerolog.Logger
	state   *state.BoardState

	ctx         context.Context
	cancel      context.CancelFunc
	completions chan func()

	pending     int // outstanding arbiter calls
	mutating    int // outstanding move or reset calls
	confirmOpen bool

	onFlip func(bool)
}

var _ Gestures = (*Controller)(nil)

// New creates a controller. Call Start to load the board.
func New(a Arbiter, s Surface, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		arbiter:     a,
		surface:     s,
		log:         zerolog.Nop(),
		state:       state.New(),
		ctx:         ctx,
		cancel:      cancel,
		completions: make(chan func(), completionBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start presents the empty board and loads the arbiter's board.
func (c *Controller) Start() {
	c.present()
	c.LoadBoard()
}

// Close abandons outstanding calls. Their results are never applied.
func (c *Controller) Close() {
	c.cancel()
}

// State returns the board state. Callers must not mutate it.
func (c *Controller) State() *state.BoardState {
	return c.state
}

// Busy reports whether any arbiter call is outstanding.
func (c *Controller) Busy() bool {
	return c.pending > 0
}

// Pending returns the number of outstanding arbiter calls.
func (c *Controller) Pending() int {
	return c.pending
}

// ConfirmOpen reports whether the new-game confirmation is shown.
func (c *Controller) ConfirmOpen() bool {
	return c.confirmOpen
}

// Scene returns the scene for the current state.
func (c *Controller) Scene() Scene {
	s := c.state
	frame := view.Render(s.Snapshot(), s.Checks(), s.Flipped()).Highlight(s.Selected(), s.LegalMoves())
	return Scene{
		Frame:       frame,
		Moves:       view.MoveRows(s.History()),
		SideToMove:  s.SideToMove(),
		Checks:      s.Checks(),
		Status:      view.Status(s.SideToMove(), s.Checks()),
		Selected:    s.Selected(),
		Busy:        c.Busy(),
		ConfirmOpen: c.confirmOpen,
		Flipped:     s.Flipped(),
	}
}

func (c *Controller) present() {
	c.surface.Present(c.Scene())
}

// Poll applies all completed calls without blocking and returns how many
// were applied.
func (c *Controller) Poll() int {
	n := 0
	for {
		select {
		case done := <-c.completions:
			done()
			n++
		default:
			return n
		}
	}
}

// Await blocks until one call completes and applies it.
func (c *Controller) Await(ctx context.Context) error {
	select {
	case done := <-c.completions:
		done()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Settle applies completions until no call is outstanding.
func (c *Controller) Settle(ctx context.Context) error {
	for c.pending > 0 {
		if err := c.Await(ctx); err != nil {
			return err
		}
	}
	return nil
}

// call runs fn on its own goroutine. The closure fn returns is applied on the
// controller goroutine by Poll or Await, after which the scene is presented.
func (c *Controller) call(fn func(ctx context.Context) func()) {
	c.pending++
	go func() {
		apply := fn(c.ctx)
		done := func() {
			c.pending--
			apply()
			c.present()
		}
		select {
		case c.completions <- done:
		case <-c.ctx.Done():
		}
	}()
}

// LoadBoard fetches the board and, once adopted, the move list.
func (c *Controller) LoadBoard() {
	t := c.state.BeginBoard()
	c.call(func(ctx context.Context) func() {
		u, err := c.arbiter.GetBoard(ctx)
		return func() {
			if !c.state.Current(t) {
				c.log.Debug().Uint64("generation", t.Generation).Msg("dropping stale board")
				return
			}
			if err != nil {
				c.log.Error().Err(err).Msg("failed to load board")
				c.surface.Alert(MsgBoardFailed)
				return
			}
			c.state.ApplyBoard(t, u)
			c.loadMoveList()
		}
	})
}

func (c *Controller) loadMoveList() {
	t := c.state.BeginMoveList()
	c.call(func(ctx context.Context) func() {
		moves := c.arbiter.GetMoveList(ctx)
		return func() {
			if !c.state.ApplyMoveList(t, moves) {
				c.log.Debug().Uint64("generation", t.Generation).Msg("dropping stale move list")
			}
		}
	})
}

func (c *Controller) loadLegalMoves(t state.Ticket, from board.Square) {
	c.call(func(ctx context.Context) func() {
		moves := c.arbiter.GetLegalMoves(ctx, from)
		return func() {
			if !c.state.ApplyLegalMoves(t, moves) {
				c.log.Debug().Str("from", from.String()).Msg("dropping stale legal moves")
			}
		}
	})
}

// SquareActivated handles a click or tap on a square.
func (c *Controller) SquareActivated(sq board.Square) {
	if !sq.IsValid() {
		return
	}
	if c.mutating > 0 {
		c.log.Debug().Str("square", sq.String()).Msg("ignoring square while a move is in flight")
		return
	}
	if c.confirmOpen {
		return
	}

	selected := c.state.Selected()
	switch {
	case selected == sq:
		c.state.ClearSelection()
	case c.state.HasSelection() && c.state.LegalMoves().Has(sq):
		c.submitMove(selected, sq)
	default:
		t, err := c.state.Select(sq)
		if err != nil {
			c.state.ClearSelection()
			break
		}
		c.loadLegalMoves(t, sq)
	}
	c.present()
}

// submitMove sends a move. The selection is cleared whatever the outcome.
func (c *Controller) submitMove(from, to board.Square) {
	capture := c.state.PieceAt(to) != board.NoPiece
	c.state.ClearSelection()
	t := c.state.BeginBoard()

	c.mutating++
	c.call(func(ctx context.Context) func() {
		u, err := c.arbiter.MakeMove(ctx, from, to)
		return func() {
			c.mutating--
			if !c.state.Current(t) {
				c.log.Debug().Str("from", from.String()).Str("to", to.String()).Msg("dropping stale move result")
				return
			}
			if err != nil {
				var rejected *arbiter.MoveRejected
				if errors.As(err, &rejected) {
					c.log.Warn().Str("from", from.String()).Str("to", to.String()).Str("reason", rejected.Reason).Msg("move rejected")
					c.surface.MoveFailed(from, to, rejected.Reason)
				} else {
					c.log.Error().Err(err).Str("from", from.String()).Str("to", to.String()).Msg("failed to make move")
					c.surface.MoveFailed(from, to, MsgMoveFailed)
				}
				return
			}
			c.state.ApplyBoard(t, u)
			c.log.Info().Str("from", from.String()).Str("to", to.String()).Msg("move played")
			c.surface.MovePlayed(from, to, capture)
			c.loadMoveList()
		}
	})
}

// NewGameRequested opens the new-game confirmation.
func (c *Controller) NewGameRequested() {
	c.confirmOpen = true
	c.present()
}

// NewGameDismissed closes the new-game confirmation.
func (c *Controller) NewGameDismissed() {
	c.confirmOpen = false
	c.present()
}

// NewGameConfirmed resets the game on the arbiter. On failure the
// confirmation stays open.
func (c *Controller) NewGameConfirmed() {
	if !c.confirmOpen {
		return
	}
	if c.mutating > 0 {
		c.log.Debug().Msg("ignoring new game while a request is in flight")
		return
	}

	c.state.BeginBoard()
	c.mutating++
	c.call(func(ctx context.Context) func() {
		err := c.arbiter.ResetGame(ctx)
		return func() {
			c.mutating--
			if err != nil {
				c.log.Error().Err(err).Msg("failed to reset game")
				c.surface.Alert(MsgResetFailed)
				return
			}
			c.state.Reset()
			c.confirmOpen = false
			c.log.Info().Msg("new game started")
			c.surface.Notify(MsgNewGame)
			c.LoadBoard()
		}
	})
	c.present()
}

// FlipRequested toggles the board orientation.
func (c *Controller) FlipRequested() {
	flipped := c.state.ToggleFlip()
	if c.onFlip != nil {
		c.onFlip(flipped)
	}
	c.present()
}

// CancelRequested clears the selection and closes the confirmation.
func (c *Controller) CancelRequested() {
	c.state.ClearSelection()
	c.confirmOpen = false
	c.present()
}
