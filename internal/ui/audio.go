package ui

import (
	"github.com/hailam/minichess/internal/sound"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType = sound.Effect

const (
	SoundMove    = sound.Move
	SoundCapture = sound.Capture
	SoundInvalid = sound.Invalid
	SoundNotify  = sound.Notify
)

// AudioManager handles sound effect playback.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates an audio manager with every effect pre-rendered.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sound.SampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: enabled,
		volume:  0.5,
	}
	for _, e := range sound.Effects() {
		am.sounds[e] = sound.Generate(e)
	}
	return am
}

// Play plays a sound effect.
func (am *AudioManager) Play(s SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[s]
	if !ok {
		return
	}
	// A player per play lets sounds overlap.
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
