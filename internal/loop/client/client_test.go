package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/tomz197/coloroid/internal/input"
	"github.com/tomz197/coloroid/internal/loop"
	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{name: "small", w: 80, h: 24, rw: 80, rh: 24},
		{name: "max", w: config.MaxTermWidth, h: config.MaxTermHeight, rw: config.MaxTermWidth, rh: config.MaxTermHeight},
		{name: "wide", w: config.MaxTermWidth + 20, h: 30, rw: config.MaxTermWidth, rh: 30, offCol: 10},
		{name: "both", w: config.MaxTermWidth + 3, h: config.MaxTermHeight + 4, rw: config.MaxTermWidth, rh: config.MaxTermHeight, offCol: 1, offRow: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, rh, oc, or := clampTermSize(tt.w, tt.h)
			if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
				t.Fatalf("got %d,%d,%d,%d want %d,%d,%d,%d", rw, rh, oc, or, tt.rw, tt.rh, tt.offCol, tt.offRow)
			}
		})
	}
}

func TestScreenFor(t *testing.T) {
	tests := map[loop.SessionState]Screen{
		loop.StateAwaitingStart: ScreenStart,
		loop.StatePreroll:       ScreenPlaying,
		loop.StateRunning:       ScreenPlaying,
		loop.StatePaused:        ScreenPaused,
		loop.StateGameOver:      ScreenGameOver,
	}
	for state, want := range tests {
		if got := screenFor(state); got != want {
			t.Errorf("screenFor(%s) = %d, want %d", state, got, want)
		}
	}
}

func pointerAt(x float64) pointerFunc {
	return func(col, row int) (float64, float64) { return x, 0 }
}

func TestTranslateInputActions(t *testing.T) {
	tests := []struct {
		name  string
		in    input.Input
		state loop.SessionState
		want  loop.Input
	}{
		{name: "space starts", in: input.Input{Pressed: []byte(" ")}, state: loop.StateAwaitingStart, want: loop.Input{Start: true}},
		{name: "enter starts", in: input.Input{Pressed: []byte("\r")}, state: loop.StateAwaitingStart, want: loop.Input{Start: true}},
		{name: "click starts", in: input.Input{Mouse: input.Mouse{Down: true}}, state: loop.StateAwaitingStart, want: loop.Input{Start: true}},
		{name: "r restarts", in: input.Input{Pressed: []byte("r")}, state: loop.StateGameOver, want: loop.Input{Restart: true}},
		{name: "r ignored while running", in: input.Input{Pressed: []byte("r")}, state: loop.StateRunning},
		{name: "p pauses", in: input.Input{Pressed: []byte("p")}, state: loop.StateRunning, want: loop.Input{TogglePause: true}},
		{name: "esc resumes", in: input.Input{Pressed: []byte("\x1b")}, state: loop.StatePaused, want: loop.Input{TogglePause: true}},
		{name: "double p cancels", in: input.Input{Pressed: []byte("pp")}, state: loop.StateRunning},
		{name: "p ignored in preroll", in: input.Input{Pressed: []byte("p")}, state: loop.StatePreroll},
		{name: "steer left", in: input.Input{Left: true}, state: loop.StateRunning, want: loop.Input{Steer: -1}},
		{name: "steer right", in: input.Input{Right: true}, state: loop.StateRunning, want: loop.Input{Steer: 1}},
		{name: "both keys cancel", in: input.Input{Left: true, Right: true}, state: loop.StateRunning},
		{name: "mouse moves paddle", in: input.Input{Mouse: input.Mouse{Moved: true, Col: 5}}, state: loop.StateRunning, want: loop.Input{PaddleX: 320, HasPaddleX: true}},
		{name: "still mouse sends nothing", in: input.Input{Mouse: input.Mouse{Col: 5}}, state: loop.StateRunning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shrinking := false
			got := translateInput(tt.in, tt.state, &shrinking, pointerAt(320))
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTranslateInputShrink(t *testing.T) {
	shrinking := false
	space := input.Input{Pressed: []byte(" ")}

	if got := translateInput(space, loop.StateRunning, &shrinking, nil); !got.ShrinkBegin || !shrinking {
		t.Fatalf("first space: %+v shrinking=%v", got, shrinking)
	}
	if got := translateInput(space, loop.StateRunning, &shrinking, nil); !got.ShrinkEnd || shrinking {
		t.Fatalf("second space: %+v shrinking=%v", got, shrinking)
	}

	down := input.Input{Mouse: input.Mouse{Moved: true, Down: true}}
	if got := translateInput(down, loop.StateRunning, &shrinking, nil); !got.ShrinkBegin || !shrinking {
		t.Fatalf("mouse down: %+v", got)
	}
	if got := translateInput(input.Input{}, loop.StateRunning, &shrinking, nil); got.ShrinkEnd {
		t.Fatal("held button released without an up event")
	}
	up := input.Input{Mouse: input.Mouse{Moved: true, Up: true}}
	if got := translateInput(up, loop.StateRunning, &shrinking, nil); !got.ShrinkEnd || shrinking {
		t.Fatalf("mouse up: %+v", got)
	}

	shrinking = true
	if got := translateInput(input.Input{}, loop.StateGameOver, &shrinking, nil); !got.ShrinkEnd || shrinking {
		t.Fatalf("shrink not released after game over: %+v", got)
	}
}

func TestFaded(t *testing.T) {
	if got := faded("#ffffff", 1); got != "#ffffff" {
		t.Errorf("full alpha = %s", got)
	}
	if got := faded("#ffffff", 0); got != "#000000" {
		t.Errorf("zero alpha = %s", got)
	}
	if got := faded("bogus", 0.5); got != "bogus" {
		t.Errorf("invalid hex = %s", got)
	}
}

func TestStylesHUDWidgets(t *testing.T) {
	st := newStyles(&bytes.Buffer{}, termenv.Ascii)

	if got := st.hearts(2, 3); got != "♥♥♡" {
		t.Errorf("hearts = %q", got)
	}
	if got := st.manaBar(0.5, 10); got != "█████░░░░░" {
		t.Errorf("mana bar = %q", got)
	}
	sw := st.swatches(object.BasePalette(), "Azure", 0)
	if strings.Count(sw, "[") != 1 || strings.Count(sw, "██") != 6 {
		t.Errorf("swatches = %q", sw)
	}
}
