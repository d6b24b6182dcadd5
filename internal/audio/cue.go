package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/coloroid/internal/loop"
	"github.com/tomz197/coloroid/internal/object"
)

const (
	noteA4 = 440.0
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteA5 = 880.0
	noteC6 = 1046.5
	noteE3 = 164.81
	noteA2 = 110.0
)

// CueFor returns the sound for a session event, or nil when the event is silent.
func CueFor(rate beep.SampleRate, e loop.Event) beep.Streamer {
	ms := time.Millisecond
	switch e.Type {
	case loop.EventStarted, loop.EventRestartCompleted:
		return beep.Seq(
			Tone(rate, WaveTriangle, noteC5, 90*ms),
			Tone(rate, WaveTriangle, noteE5, 90*ms),
			Tone(rate, WaveTriangle, noteG5, 140*ms),
		)
	case loop.EventRunning:
		return gain(Tone(rate, WaveSine, noteC6, 120*ms), 0.6)
	case loop.EventPauseChanged:
		if e.Paused {
			return gain(Sweep(rate, WaveSine, noteA5, noteA4, 120*ms), 0.5)
		}
		return gain(Sweep(rate, WaveSine, noteA4, noteA5, 120*ms), 0.5)
	case loop.EventPaletteRotated:
		return gain(Tone(rate, WaveTriangle, noteA5, 60*ms), 0.4)
	case loop.EventCaught:
		return caughtCue(rate, e)
	case loop.EventLifeLost:
		return gain(Sweep(rate, WaveSaw, noteE3, noteA2, 250*ms), 0.5)
	case loop.EventShrinkForced:
		return gain(Tone(rate, WaveSquare, noteA2, 120*ms), 0.3)
	case loop.EventGameOver:
		return gain(beep.Seq(
			Tone(rate, WaveTriangle, noteE5, 160*ms),
			Tone(rate, WaveTriangle, noteC5, 160*ms),
			Tone(rate, WaveTriangle, noteA4, 400*ms),
		), 0.8)
	}
	return nil
}

func caughtCue(rate beep.SampleRate, e loop.Event) beep.Streamer {
	ms := time.Millisecond
	switch e.Outcome {
	case loop.OutcomeGolden:
		return beep.Mix(
			gain(Tone(rate, WaveSine, noteA5, 300*ms), 0.6),
			gain(Tone(rate, WaveSine, 2*noteA5, 300*ms), 0.3),
		)
	case loop.OutcomeHeart:
		return beep.Seq(
			gain(Tone(rate, WaveSine, noteE5, 80*ms), 0.6),
			gain(Tone(rate, WaveSine, noteA5, 160*ms), 0.6),
		)
	case loop.OutcomePowerup:
		return gain(powerupSweep(rate, e.Power), 0.5)
	case loop.OutcomeMatch:
		// Higher shapes score more and ring higher.
		f := noteC5 + float64(e.Score)*20
		return gain(Tone(rate, WaveSine, f, 70*ms), 0.5)
	case loop.OutcomeShielded:
		return gain(Tone(rate, WaveSquare, noteE3, 90*ms), 0.35)
	}
	// Mismatch sounds through EventLifeLost.
	return nil
}

func powerupSweep(rate beep.SampleRate, k object.PowerupKind) beep.Streamer {
	d := 220 * time.Millisecond
	switch k {
	case object.PowerupShield:
		return Sweep(rate, WaveTriangle, noteA4, noteE5, d)
	case object.PowerupSlowTime:
		return Sweep(rate, WaveTriangle, noteE5, noteA4, d)
	default:
		return Sweep(rate, WaveTriangle, noteC5, noteC6, d)
	}
}
