// Package arbiter is a typed client for the remote game arbiter's HTTP API.
//
// Every call performs exactly one request/response exchange, bounded by the
// client timeout. Nothing is retried and the client keeps no game state.
package arbiter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hailam/minichess/internal/board"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Endpoint paths.
const (
	PathBoard    = "/api/board"
	PathMoves    = "/api/moves"
	PathMove     = "/api/move"
	PathMoveList = "/api/move-list"
	PathReset    = "/api/reset"
)

// DefaultTimeout bounds a single exchange when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// Client talks to one arbiter.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
	clock   clockwork.Clock
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithClock sets the clock used for request timing.
func WithClock(clk clockwork.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// New creates a client for the arbiter at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the arbiter base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetBoard fetches the current board and side-to-move/check state.
func (c *Client) GetBoard(ctx context.Context) (board.Update, error) {
	const op = "GET " + PathBoard

	status, body, err := c.do(ctx, http.MethodGet, PathBoard, nil)
	if err != nil {
		return board.Update{}, err
	}
	if !isSuccess(status) {
		return board.Update{}, &TransportError{Op: op, Status: status}
	}
	return decodeBoard(op, body)
}

// GetLegalMoves fetches the legal destinations from a square. Any failure is
// logged and yields an empty set.
func (c *Client) GetLegalMoves(ctx context.Context, from board.Square) board.SquareSet {
	const op = "GET " + PathMoves

	path := PathMoves + "?from=" + url.QueryEscape(from.String())
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		c.log.Warn().Err(err).Str("from", from.String()).Msg("legal moves unavailable")
		return 0
	}
	if !isSuccess(status) {
		c.log.Warn().Err(&TransportError{Op: op, Status: status}).Str("from", from.String()).Msg("legal moves unavailable")
		return 0
	}

	var resp movesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.Warn().Err(&ParseError{Op: op, Err: err}).Str("from", from.String()).Msg("legal moves unavailable")
		return 0
	}
	return board.NewSquareSet(resp.Moves...)
}

// MakeMove submits a move. A declined move yields *MoveRejected with the
// arbiter's reason; on success the new board is returned.
func (c *Client) MakeMove(ctx context.Context, from, to board.Square) (board.Update, error) {
	const op = "POST " + PathMove

	payload, err := json.Marshal(moveRequest{From: from, To: to})
	if err != nil {
		return board.Update{}, fmt.Errorf("failed to encode move: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, PathMove, payload)
	if err != nil {
		return board.Update{}, err
	}
	if !isSuccess(status) {
		return board.Update{}, &MoveRejected{Reason: rejectionReason(body)}
	}
	return decodeBoard(op, body)
}

// GetMoveList fetches the played moves in order. Any failure is logged and
// yields an empty list.
func (c *Client) GetMoveList(ctx context.Context) []string {
	const op = "GET " + PathMoveList

	status, body, err := c.do(ctx, http.MethodGet, PathMoveList, nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("move list unavailable")
		return []string{}
	}
	if !isSuccess(status) {
		c.log.Warn().Err(&TransportError{Op: op, Status: status}).Msg("move list unavailable")
		return []string{}
	}

	var moves []string
	if err := json.Unmarshal(body, &moves); err != nil {
		c.log.Warn().Err(&ParseError{Op: op, Err: err}).Msg("move list unavailable")
		return []string{}
	}
	if moves == nil {
		moves = []string{}
	}
	return moves
}

// ResetGame asks the arbiter to start a new game.
func (c *Client) ResetGame(ctx context.Context) error {
	const op = "POST " + PathReset

	status, _, err := c.do(ctx, http.MethodPost, PathReset, nil)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return &TransportError{Op: op, Status: status}
	}
	return nil
}

// Asset fetches a static resource (e.g. a piece icon) by absolute path.
func (c *Client) Asset(ctx context.Context, path string) ([]byte, error) {
	op := "GET " + path

	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, &TransportError{Op: op, Status: status}
	}
	return body, nil
}

// do performs a single exchange. Network failures become *TransportError;
// the status is returned for the caller to interpret.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	op := method + " " + stripQuery(path)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.clock.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("request_id", requestID).Str("op", op).Msg("arbiter request failed")
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("no response within %s: %w", c.timeout, err)
		}
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", c.clock.Since(start)).
		Msg("arbiter request")

	return resp.StatusCode, data, nil
}

func decodeBoard(op string, body []byte) (board.Update, error) {
	var resp boardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return board.Update{}, &ParseError{Op: op, Err: err}
	}
	u, err := resp.toUpdate()
	if err != nil {
		return board.Update{}, &ParseError{Op: op, Err: err}
	}
	return u, nil
}

// rejectionReason extracts the arbiter's explanation from an error body.
func rejectionReason(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return resp.Error
	}
	return "Move failed"
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func stripQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
