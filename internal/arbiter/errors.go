package arbiter

import "fmt"

// TransportError reports a network failure or a non-success HTTP status.
type TransportError struct {
	Op     string // endpoint, e.g. "GET /api/board"
	Status int    // HTTP status, 0 for network failures
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: arbiter returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MoveRejected reports that the arbiter declined a submitted move.
type MoveRejected struct {
	Reason string
}

func (e *MoveRejected) Error() string {
	return "move rejected: " + e.Reason
}

// ParseError reports a malformed response body.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
