// Package console implements a line-oriented text surface for the client.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/controller"
	"github.com/rs/zerolog"
)

// Session is the part of the controller the console drives.
type Session interface {
	controller.Gestures
	Start()
	Settle(ctx context.Context) error
}

const helpText = `commands:
  click <square>  select a piece, move the selection, or deselect
  flip            flip the board
  new             start a new game (asks for confirmation)
  yes / no        answer the confirmation
  esc             clear the selection and close the confirmation
  board           show the board
  moves           show the move list
  help            show this help
  quit            exit
`

// Console reads commands from in and writes the board to out.
type Console struct {
	in      io.Reader
	out     io.Writer
	log     zerolog.Logger
	timeout time.Duration

	scene   controller.Scene
	changed bool
}

var _ controller.Surface = (*Console)(nil)

// New creates a console. timeout bounds how long a command waits for the
// arbiter before the prompt returns.
func New(in io.Reader, out io.Writer, logger zerolog.Logger, timeout time.Duration) *Console {
	return &Console{
		in:      in,
		out:     out,
		log:     logger,
		timeout: timeout,
	}
}

// Present records the scene; it is printed once the command settles.
func (c *Console) Present(scene controller.Scene) {
	c.scene = scene
	c.changed = true
}

// Alert prints a failure.
func (c *Console) Alert(msg string) {
	fmt.Fprintf(c.out, "error: %s\n", msg)
}

// Notify prints a message.
func (c *Console) Notify(msg string) {
	fmt.Fprintln(c.out, msg)
}

// MovePlayed prints the accepted move.
func (c *Console) MovePlayed(from, to board.Square, capture bool) {
	sep := "-"
	if capture {
		sep = "x"
	}
	fmt.Fprintf(c.out, "played %s%s%s\n", from, sep, to)
}

// MoveFailed prints why a move was not played.
func (c *Console) MoveFailed(from, to board.Square, msg string) {
	c.Alert(msg)
}

// Run loads the board and processes commands until quit or end of input.
func (c *Console) Run(ctx context.Context, s Session) error {
	s.Start()
	if err := c.settle(ctx, s); err != nil {
		return err
	}
	c.printBoard()

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		c.changed = false
		switch cmd {
		case "click", "c":
			c.handleClick(s, args)
		case "flip":
			s.FlipRequested()
		case "new":
			s.NewGameRequested()
			fmt.Fprintln(c.out, "Start a new game? (yes/no)")
			continue
		case "yes", "y":
			s.NewGameConfirmed()
		case "no", "n":
			s.NewGameDismissed()
			continue
		case "esc":
			s.CancelRequested()
		case "board", "b":
			c.changed = true
		case "moves", "m":
			fmt.Fprint(c.out, FormatMoves(c.scene.Moves))
			continue
		case "help", "?":
			fmt.Fprint(c.out, helpText)
			continue
		case "quit", "exit", "q":
			return nil
		default:
			fmt.Fprintf(c.out, "unknown command: %s (try help)\n", cmd)
			continue
		}

		if err := c.settle(ctx, s); err != nil {
			return err
		}
		if c.changed {
			c.printBoard()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func (c *Console) handleClick(s Session, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: click <square>")
		return
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "invalid square: %s\n", args[0])
		return
	}
	s.SquareActivated(sq)
}

// settle waits for outstanding calls. A timeout is reported but not fatal.
func (c *Console) settle(ctx context.Context, s Session) error {
	wait, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := s.Settle(wait); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Msg("arbiter still busy")
		fmt.Fprintln(c.out, "still waiting for the arbiter...")
	}
	return nil
}

func (c *Console) printBoard() {
	fmt.Fprint(c.out, FormatFrame(c.scene.Frame))
	fmt.Fprintln(c.out, c.scene.Status)
}
