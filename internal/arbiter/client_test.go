package arbiter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hailam/minichess/internal/board"
)

// boardBody encodes a snapshot the way the arbiter does.
func boardBody(t *testing.T, snap board.Snapshot, side board.Color, checks board.CheckFlags) []byte {
	t.Helper()
	cells := make([][]*pieceJSON, 8)
	for rank := range cells {
		cells[rank] = make([]*pieceJSON, 8)
		for file := range cells[rank] {
			p := snap[rank][file]
			if p == board.NoPiece {
				continue
			}
			cells[rank][file] = &pieceJSON{Type: p.Type().WireName(), Color: p.Color().WireName()}
		}
	}
	data, err := json.Marshal(boardResponse{
		Cells:        cells,
		SideToMove:   side.WireName(),
		InCheck:      checks.InCheck,
		WhiteInCheck: checks.WhiteInCheck,
		BlackInCheck: checks.BlackInCheck,
	})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithTimeout(2*time.Second))
}

func TestGetBoard(t *testing.T) {
	start := board.MustParsePlacement(board.StartPlacement)

	t.Run("Success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != PathBoard {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			if r.Header.Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID header")
			}
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("Accept = %q", r.Header.Get("Accept"))
			}
			w.Write(boardBody(t, start, board.White, board.CheckFlags{}))
		})

		u, err := c.GetBoard(context.Background())
		if err != nil {
			t.Fatalf("GetBoard: %v", err)
		}
		if u.Snapshot != start {
			t.Errorf("snapshot mismatch:\n%s", cmp.Diff(start.Placement(), u.Snapshot.Placement()))
		}
		if u.SideToMove != board.White {
			t.Errorf("side = %v", u.SideToMove)
		}
	})

	t.Run("CheckFlags", func(t *testing.T) {
		checks := board.CheckFlags{InCheck: true, BlackInCheck: true}
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write(boardBody(t, start, board.Black, checks))
		})
		u, err := c.GetBoard(context.Background())
		if err != nil {
			t.Fatalf("GetBoard: %v", err)
		}
		if u.Checks != checks || u.SideToMove != board.Black {
			t.Errorf("got %+v, side %v", u.Checks, u.SideToMove)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		_, err := c.GetBoard(context.Background())
		var te *TransportError
		if !errors.As(err, &te) {
			t.Fatalf("err = %v, want *TransportError", err)
		}
		if te.Status != http.StatusInternalServerError {
			t.Errorf("status = %d", te.Status)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		bodies := map[string]string{
			"NotJSON":     "<html>",
			"ShortCells":  `{"cells":[[]],"sideToMove":"WHITE"}`,
			"BadPiece":    `{"cells":[[{"type":"DRAGON","color":"WHITE"},null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null]],"sideToMove":"WHITE"}`,
			"MissingSide": `{"cells":[[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null],[null,null,null,null,null,null,null,null]]}`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte(body))
				})
				_, err := c.GetBoard(context.Background())
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Errorf("err = %v, want *ParseError", err)
				}
			})
		}
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := New(url).GetBoard(context.Background())
		var te *TransportError
		if !errors.As(err, &te) || te.Status != 0 {
			t.Errorf("err = %v, want network *TransportError", err)
		}
	})

	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := New(srv.URL, WithTimeout(50*time.Millisecond)).GetBoard(context.Background())
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want deadline exceeded", err)
		}
	})
}

func TestGetLegalMoves(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("from"); got != "e2" {
				t.Errorf("from = %q", got)
			}
			w.Write([]byte(`{"from":"e2","moves":["e3","e4"]}`))
		})
		got := c.GetLegalMoves(context.Background(), board.E2)
		if got != board.NewSquareSet(board.E3, board.E4) {
			t.Errorf("moves = %v", got)
		}
	})

	failures := map[string]http.HandlerFunc{
		"ServerError": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		},
		"Malformed": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"moves":["z9"]}`))
		},
	}
	for name, h := range failures {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, h)
			if got := c.GetLegalMoves(context.Background(), board.E2); !got.Empty() {
				t.Errorf("moves = %v, want empty", got)
			}
		})
	}
}

func TestMakeMove(t *testing.T) {
	after := board.MustParsePlacement("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR")

	t.Run("Success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != PathMove {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var req map[string]string
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			if diff := cmp.Diff(map[string]string{"from": "e2", "to": "e4"}, req); diff != "" {
				t.Errorf("request body (-want +got):\n%s", diff)
			}
			w.Write(boardBody(t, after, board.Black, board.CheckFlags{}))
		})

		u, err := c.MakeMove(context.Background(), board.E2, board.E4)
		if err != nil {
			t.Fatalf("MakeMove: %v", err)
		}
		if u.Snapshot.At(board.E4) != board.WhitePawn || u.Snapshot.At(board.E2) != board.NoPiece {
			t.Error("pawn not moved")
		}
		if u.SideToMove != board.Black {
			t.Errorf("side = %v", u.SideToMove)
		}
	})

	t.Run("Rejected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Illegal move"}`))
		})
		_, err := c.MakeMove(context.Background(), board.E2, board.E5)
		var mr *MoveRejected
		if !errors.As(err, &mr) {
			t.Fatalf("err = %v, want *MoveRejected", err)
		}
		if mr.Reason != "Illegal move" {
			t.Errorf("reason = %q", mr.Reason)
		}
	})

	t.Run("RejectedWithoutReason", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})
		_, err := c.MakeMove(context.Background(), board.E2, board.E5)
		var mr *MoveRejected
		if !errors.As(err, &mr) || mr.Reason != "Move failed" {
			t.Errorf("err = %v, want fallback reason", err)
		}
	})

	t.Run("MalformedSuccess", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})
		_, err := c.MakeMove(context.Background(), board.E2, board.E4)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("err = %v, want *ParseError", err)
		}
	})
}

func TestGetMoveList(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`["e2-e4","e7-e5","g1-f3"]`))
		})
		want := []string{"e2-e4", "e7-e5", "g1-f3"}
		if diff := cmp.Diff(want, c.GetMoveList(context.Background())); diff != "" {
			t.Errorf("moves (-want +got):\n%s", diff)
		}
	})

	bodies := map[string]string{"Null": "null", "Garbage": "{", "Object": `{"a":1}`}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			got := c.GetMoveList(context.Background())
			if got == nil || len(got) != 0 {
				t.Errorf("moves = %#v, want empty non-nil", got)
			}
		})
	}

	t.Run("ServerError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		if got := c.GetMoveList(context.Background()); len(got) != 0 {
			t.Errorf("moves = %v", got)
		}
	})
}

func TestResetGame(t *testing.T) {
	t.Run("NoContent", func(t *testing.T) {
		called := false
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = r.Method == http.MethodPost && r.URL.Path == PathReset
			w.WriteHeader(http.StatusNoContent)
		})
		if err := c.ResetGame(context.Background()); err != nil {
			t.Fatalf("ResetGame: %v", err)
		}
		if !called {
			t.Error("reset endpoint not called")
		}
	})

	t.Run("Failure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		err := c.ResetGame(context.Background())
		var te *TransportError
		if !errors.As(err, &te) || te.Status != http.StatusInternalServerError {
			t.Errorf("err = %v", err)
		}
	})
}

func TestAsset(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/piece/cburnett/wK.svg" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<svg/>"))
	})

	data, err := c.Asset(context.Background(), "/images/piece/cburnett/wK.svg")
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("Asset = %q, %v", data, err)
	}
	if _, err := c.Asset(context.Background(), "/images/missing.svg"); err == nil {
		t.Error("missing asset should fail")
	}
}

func TestBaseURLTrimsSlash(t *testing.T) {
	if got := New("http://localhost:8080/").BaseURL(); got != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", got)
	}
}
