package ui

import (
	"context"
	"time"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/sprite"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// renderScale is the oversampling factor of piece images.
const renderScale = 3.0

// iconTimeout bounds the whole icon download.
const iconTimeout = 30 * time.Second

// SpriteManager holds piece images. It starts with fallback discs and swaps
// in the arbiter's icons once they have been fetched.
type SpriteManager struct {
	pieces map[board.Piece]*ebiten.Image
	size   int

	loaded chan sprite.Set
	log    zerolog.Logger
}

// NewSpriteManager creates a sprite manager for squares of the given size.
func NewSpriteManager(size int, log zerolog.Logger) *SpriteManager {
	sm := &SpriteManager{
		pieces: make(map[board.Piece]*ebiten.Image),
		size:   size,
		loaded: make(chan sprite.Set, 1),
		log:    log,
	}
	sm.adopt(sprite.Fallbacks(sm.renderSize()))
	return sm
}

func (sm *SpriteManager) renderSize() int {
	return int(float64(sm.size) * renderScale)
}

// Load fetches the icons in the background. Call Update every frame to pick
// them up.
func (sm *SpriteManager) Load(ctx context.Context, f sprite.Fetcher) {
	go func() {
		ctx, cancel := context.WithTimeout(ctx, iconTimeout)
		defer cancel()
		set := sprite.LoadAll(ctx, f, sm.renderSize(), sm.log)
		select {
		case sm.loaded <- set:
		case <-ctx.Done():
		}
	}()
}

// Update adopts fetched icons, if any arrived.
func (sm *SpriteManager) Update() {
	select {
	case set := <-sm.loaded:
		sm.adopt(set)
		sm.log.Debug().Int("icons", len(set)).Msg("piece icons loaded")
	default:
	}
}

func (sm *SpriteManager) adopt(set sprite.Set) {
	for p, img := range set {
		if old := sm.pieces[p]; old != nil {
			old.Deallocate()
		}
		sm.pieces[p] = ebiten.NewImageFromImage(img)
	}
}

// DrawPieceAt draws a piece with its top-left corner at x, y.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64) {
	img := sm.pieces[p]
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/renderScale, 1/renderScale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// Size returns the display size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
