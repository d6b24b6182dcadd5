package client

import (
	"time"

	"github.com/tomz197/coloroid/internal/draw"
	"github.com/tomz197/coloroid/internal/input"
	"github.com/tomz197/coloroid/internal/loop"
)

// Screen is what the client is currently showing.
type Screen int

const (
	ScreenStart    Screen = iota // Splash, waiting for the player to start
	ScreenPlaying                // Preroll or running
	ScreenPaused                 // Paused overlay
	ScreenGameOver               // Final score and restart prompt
	ScreenShutdown               // Server is shutting down
)

// screenFor maps a session state to the screen that presents it.
func screenFor(s loop.SessionState) Screen {
	switch s {
	case loop.StatePreroll, loop.StateRunning:
		return ScreenPlaying
	case loop.StatePaused:
		return ScreenPaused
	case loop.StateGameOver:
		return ScreenGameOver
	default:
		return ScreenStart
	}
}

// ClientState holds per-connection presentation state.
type ClientState struct {
	Input         input.Input
	Screen        Screen
	prevScreen    Screen
	Shrinking     bool              // Shrink engaged from this client
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:     ScreenStart,
		prevScreen: ScreenStart,
		Running:    true,
	}
}
