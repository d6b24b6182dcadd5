package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/tomz197/coloroid/internal/loop"
	"github.com/tomz197/coloroid/internal/object"
)

const rate = beep.SampleRate(8000)

// drain streams s to the end and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 256)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never ended")
	return nil
}

func TestToneLengthAndRange(t *testing.T) {
	for _, w := range []Wave{WaveSine, WaveSquare, WaveTriangle, WaveSaw} {
		samples := drain(t, Tone(rate, w, 440, 100*time.Millisecond))
		if len(samples) != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", w, len(samples), rate.N(100*time.Millisecond))
		}
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d: sample %d = %v", w, i, s)
			}
		}
	}
}

func TestToneEnvelope(t *testing.T) {
	samples := drain(t, Tone(rate, WaveSquare, 440, 300*time.Millisecond))
	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, want silence at attack start", samples[0][0])
	}
	if last := samples[len(samples)-1][0]; math.Abs(last) > 0.01 {
		t.Errorf("last sample = %f, want release to near zero", last)
	}
	mid := samples[len(samples)/3][0]
	if math.Abs(mid) != 1 {
		t.Errorf("sustain sample = %f, want full amplitude", mid)
	}
}

func TestSweepChangesPitch(t *testing.T) {
	crossings := func(s [][2]float64) int {
		n := 0
		for i := 1; i < len(s); i++ {
			if (s[i-1][0] < 0) != (s[i][0] < 0) {
				n++
			}
		}
		return n
	}
	samples := drain(t, Sweep(rate, WaveSine, 200, 1000, 400*time.Millisecond))
	half := len(samples) / 2
	if crossings(samples[:half]) >= crossings(samples[half:]) {
		t.Error("rising sweep does not rise")
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name   string
		event  loop.Event
		silent bool
	}{
		{name: "started", event: loop.Event{Type: loop.EventStarted}},
		{name: "restart", event: loop.Event{Type: loop.EventRestartCompleted}},
		{name: "running", event: loop.Event{Type: loop.EventRunning}},
		{name: "pause", event: loop.Event{Type: loop.EventPauseChanged, Paused: true}},
		{name: "resume", event: loop.Event{Type: loop.EventPauseChanged}},
		{name: "rotate", event: loop.Event{Type: loop.EventPaletteRotated}},
		{name: "golden", event: loop.Event{Type: loop.EventCaught, Outcome: loop.OutcomeGolden, Score: 50}},
		{name: "heart", event: loop.Event{Type: loop.EventCaught, Outcome: loop.OutcomeHeart}},
		{name: "powerup", event: loop.Event{Type: loop.EventCaught, Outcome: loop.OutcomePowerup, Power: object.PowerupMagnet}},
		{name: "match", event: loop.Event{Type: loop.EventCaught, Outcome: loop.OutcomeMatch, Score: 10}},
		{name: "shielded", event: loop.Event{Type: loop.EventCaught, Outcome: loop.OutcomeShielded}},
		{name: "mismatch", event: loop.Event{Type: loop.EventCaught, Outcome: loop.OutcomeMismatch}, silent: true},
		{name: "life lost", event: loop.Event{Type: loop.EventLifeLost}},
		{name: "shrink forced", event: loop.Event{Type: loop.EventShrinkForced}},
		{name: "game over", event: loop.Event{Type: loop.EventGameOver, Score: 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue := CueFor(rate, tt.event)
			if tt.silent {
				if cue != nil {
					t.Fatal("expected no cue")
				}
				return
			}
			if cue == nil {
				t.Fatal("expected a cue")
			}
			samples := drain(t, cue)
			if len(samples) == 0 {
				t.Fatal("cue produced no samples")
			}
			if d := rate.D(len(samples)); d > time.Second {
				t.Errorf("cue lasts %v", d)
			}
		})
	}
}

func TestPlayerHandle(t *testing.T) {
	p := newPlayer(Options{Volume: 0.5, SampleRate: rate, Logger: log.New(io.Discard)})

	p.Handle(loop.Event{Type: loop.EventCaught, Outcome: loop.OutcomeMatch, Score: 10})
	p.Handle(loop.Event{Type: loop.EventCaught, Outcome: loop.OutcomeMismatch})
	p.Handle(loop.Event{Type: loop.EventLifeLost})
	if got := p.Pending(); got != 2 {
		t.Fatalf("pending = %d, want 2", got)
	}

	p.Handle(loop.Event{Type: loop.EventPauseChanged, Paused: true})
	if got := p.Pending(); got != 1 {
		t.Fatalf("pending after pause = %d, want only the pause cue", got)
	}

	p.Close()
}

func TestPlayerMuted(t *testing.T) {
	p := newPlayer(Options{Volume: 0, SampleRate: rate, Logger: log.New(io.Discard)})
	p.Handle(loop.Event{Type: loop.EventStarted})

	buf := make([][2]float64, 128)
	if _, ok := p.master.Stream(buf); !ok {
		t.Fatal("master stream ended")
	}
	for i, s := range buf {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("muted sample %d = %v", i, s)
		}
	}
}
