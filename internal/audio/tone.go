// Package audio turns session events into short synthesized cues.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

// tone is a fixed-length oscillator with a linear attack and release.
type tone struct {
	rate    beep.SampleRate
	freq    float64
	glide   float64 // Frequency change per second
	wave    Wave
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// Tone returns a streamer playing one note for d.
func Tone(rate beep.SampleRate, wave Wave, freq float64, d time.Duration) beep.Streamer {
	return newTone(rate, wave, freq, 0, d)
}

// Sweep returns a streamer whose frequency moves linearly from "from" to "to" over d.
func Sweep(rate beep.SampleRate, wave Wave, from, to float64, d time.Duration) beep.Streamer {
	glide := 0.0
	if d > 0 {
		glide = (to - from) / d.Seconds()
	}
	return newTone(rate, wave, from, glide, d)
}

func newTone(rate beep.SampleRate, wave Wave, freq, glide float64, d time.Duration) *tone {
	total := rate.N(d)
	attack := rate.N(5 * time.Millisecond)
	release := total / 3
	if attack > total/2 {
		attack = total / 2
	}
	return &tone{
		rate:    rate,
		freq:    freq,
		glide:   glide,
		wave:    wave,
		total:   total,
		attack:  attack,
		release: release,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		v := t.sample() * t.gain()
		samples[i][0] = v
		samples[i][1] = v

		f := t.freq + t.glide*float64(t.pos)/float64(t.rate)
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) sample() float64 {
	switch t.wave {
	case WaveSquare:
		if t.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(t.phase-0.5)
	case WaveSaw:
		return 2*t.phase - 1
	default:
		return math.Sin(2 * math.Pi * t.phase)
	}
}

func (t *tone) gain() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if left := t.total - t.pos; t.release > 0 && left < t.release {
		return float64(left) / float64(t.release)
	}
	return 1
}

// gain scales s by a linear factor. Zero or less is silent.
func gain(s beep.Streamer, g float64) *effects.Volume {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}
