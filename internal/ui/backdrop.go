package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog/log"
)

// blurShader is one pass of a 9-tap Gaussian blur along Dir.
var blurShader = []byte(`
//kage:unit pixels

package main

var Dir vec2

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	var result vec4
	result += imageSrc0At(srcPos - 4*Dir) * 0.0162
	result += imageSrc0At(srcPos - 3*Dir) * 0.0540
	result += imageSrc0At(srcPos - 2*Dir) * 0.1218
	result += imageSrc0At(srcPos - 1*Dir) * 0.1954
	result += imageSrc0At(srcPos) * 0.2252
	result += imageSrc0At(srcPos + 1*Dir) * 0.1954
	result += imageSrc0At(srcPos + 2*Dir) * 0.1218
	result += imageSrc0At(srcPos + 3*Dir) * 0.0540
	result += imageSrc0At(srcPos + 4*Dir) * 0.0162
	return result
}
`)

// Backdrop blurs and dims whatever is already on screen, behind a modal.
// Without shader support it only dims.
type Backdrop struct {
	blur  *ebiten.Shader
	a, b  *ebiten.Image
	sigma float32
}

// NewBackdrop compiles the blur shader.
func NewBackdrop() *Backdrop {
	bd := &Backdrop{sigma: 2}
	s, err := ebiten.NewShader(blurShader)
	if err != nil {
		log.Warn().Err(err).Msg("blur shader unavailable, modals will only dim the board")
		return bd
	}
	bd.blur = s
	return bd
}

func (bd *Backdrop) ensure(w, h int) {
	if bd.a == nil || bd.a.Bounds().Dx() != w || bd.a.Bounds().Dy() != h {
		bd.a = ebiten.NewImage(w, h)
		bd.b = ebiten.NewImage(w, h)
	}
}

// Draw covers the whole screen with the blurred, tinted backdrop.
func (bd *Backdrop) Draw(screen *ebiten.Image, tint color.RGBA) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	if bd.blur != nil && w > 0 && h > 0 {
		bd.ensure(w, h)
		bd.a.Clear()
		bd.a.DrawImage(screen, nil)

		bd.b.Clear()
		bd.b.DrawRectShader(w, h, bd.blur, &ebiten.DrawRectShaderOptions{
			Uniforms: map[string]any{"Dir": []float32{bd.sigma, 0}},
			Images:   [4]*ebiten.Image{bd.a},
		})
		bd.a.Clear()
		bd.a.DrawRectShader(w, h, bd.blur, &ebiten.DrawRectShaderOptions{
			Uniforms: map[string]any{"Dir": []float32{0, bd.sigma}},
			Images:   [4]*ebiten.Image{bd.b},
		})
		screen.DrawImage(bd.a, nil)
	}

	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), tint, false)
}
