package client

import (
	"github.com/tomz197/coloroid/internal/input"
	"github.com/tomz197/coloroid/internal/loop"
)

// pointerFunc converts a terminal cell to field coordinates.
type pointerFunc func(col, row int) (x, y float64)

// translateInput turns one frame of raw terminal input into session input.
// Discrete actions fire once per key press; steering follows held keys.
// shrinking tracks the space-bar toggle across frames.
func translateInput(in input.Input, state loop.SessionState, shrinking *bool, pointer pointerFunc) loop.Input {
	var out loop.Input

	switch {
	case in.Left && !in.Right:
		out.Steer = -1
	case in.Right && !in.Left:
		out.Steer = 1
	}

	if in.Mouse.Moved && pointer != nil {
		x, _ := pointer(in.Mouse.Col, in.Mouse.Row)
		out.PaddleX = x
		out.HasPaddleX = true
	}

	for _, b := range in.Pressed {
		switch b {
		case ' ':
			switch state {
			case loop.StateAwaitingStart:
				out.Start = true
			case loop.StateRunning:
				if *shrinking {
					out.ShrinkEnd = true
				} else {
					out.ShrinkBegin = true
				}
				*shrinking = !*shrinking
			}
		case '\r', '\n':
			switch state {
			case loop.StateAwaitingStart:
				out.Start = true
			case loop.StateGameOver:
				out.Restart = true
			}
		case 'r', 'R':
			if state == loop.StateGameOver {
				out.Restart = true
			}
		case 'p', 'P', '\x1b':
			if state == loop.StateRunning || state == loop.StatePaused {
				out.TogglePause = !out.TogglePause
			}
		}
	}

	if in.Mouse.Down {
		switch state {
		case loop.StateAwaitingStart:
			out.Start = true
		case loop.StateGameOver:
			out.Restart = true
		case loop.StateRunning:
			out.ShrinkBegin = true
			*shrinking = true
		}
	}
	if in.Mouse.Up && *shrinking {
		out.ShrinkEnd = true
		*shrinking = false
	}

	if state != loop.StateRunning && state != loop.StatePaused && *shrinking {
		out.ShrinkEnd = true
		*shrinking = false
	}
	return out
}
