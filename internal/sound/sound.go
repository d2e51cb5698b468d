// Package sound synthesizes the client's sound effects as 16-bit stereo
// little-endian PCM.
package sound

import "math"

// SampleRate is the rate of every generated clip.
const SampleRate = 44100

// Effect names a sound effect.
type Effect int

const (
	Move Effect = iota
	Capture
	Invalid
	Notify
)

var effectNames = [...]string{"move", "capture", "invalid", "notify"}

func (e Effect) String() string {
	if e < 0 || int(e) >= len(effectNames) {
		return "unknown"
	}
	return effectNames[e]
}

// Effects lists every effect.
func Effects() []Effect {
	return []Effect{Move, Capture, Invalid, Notify}
}

// Generate returns the PCM clip for e, or nil for an unknown effect.
func Generate(e Effect) []byte {
	switch e {
	case Move:
		// wood on wood
		return click(440, 0.08, 0.3)
	case Capture:
		return click(330, 0.12, 0.5)
	case Invalid:
		return buzz(150, 0.1, 0.3)
	case Notify:
		return concat(tone(660, 0.08, 0.3), tone(880, 0.12, 0.3))
	}
	return nil
}

// render samples wave(t, progress) for duration seconds.
func render(duration float64, wave func(t, progress float64) float64) []byte {
	samples := int(SampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / SampleRate
		v := wave(t, t/duration)
		v = math.Max(-1, math.Min(1, v))
		s := int16(v * math.MaxInt16)
		data[i*4] = byte(s)
		data[i*4+1] = byte(s >> 8)
		data[i*4+2] = byte(s)
		data[i*4+3] = byte(s >> 8)
	}
	return data
}

func click(freq, duration, amplitude float64) []byte {
	return render(duration, func(t, _ float64) float64 {
		noise := (math.Sin(t*SampleRate*0.3) + math.Sin(t*SampleRate*0.7)) * 0.3
		return (math.Sin(2*math.Pi*freq*t) + noise) * math.Exp(-t*30) * amplitude
	})
}

func tone(freq, duration, amplitude float64) []byte {
	return render(duration, func(t, p float64) float64 {
		env := 1.0 - (p-0.1)/0.9
		if p < 0.1 {
			env = p / 0.1
		}
		return math.Sin(2*math.Pi*freq*t) * env * amplitude
	})
}

func buzz(freq, duration, amplitude float64) []byte {
	return render(duration, func(t, p float64) float64 {
		wave := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return wave * (1 - p) * amplitude * 0.5
	})
}

func concat(clips ...[]byte) []byte {
	var out []byte
	for _, c := range clips {
		out = append(out, c...)
	}
	return out
}
