package ui

import (
	"bytes"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
	smallFontSize   = 11.0
)

var (
	fontOnce      sync.Once
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

func loadFonts() {
	fontOnce.Do(func() {
		var err error
		if regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
			log.Error().Err(err).Msg("failed to load regular font")
		}
		if boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
			log.Error().Err(err).Msg("failed to load bold font")
		}
	})
}

func face(src *text.GoTextFaceSource, size float64) *text.GoTextFace {
	if src == nil {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// RegularFace returns the body text face, or nil if fonts failed to load.
func RegularFace() *text.GoTextFace {
	loadFonts()
	return face(regularSource, defaultFontSize)
}

// BoldFace returns the title face.
func BoldFace() *text.GoTextFace {
	loadFonts()
	return face(boldSource, titleFontSize)
}

// SmallFace returns the face for board coordinates.
func SmallFace() *text.GoTextFace {
	loadFonts()
	return face(boldSource, smallFontSize)
}

// MeasureText returns the width and height of the given text.
func MeasureText(s string, f *text.GoTextFace) (width, height float64) {
	if f == nil {
		return 0, 0
	}
	return text.Measure(s, f, 0)
}
