package loop

// SessionState is the phase of a game session.
type SessionState int

const (
	StateAwaitingStart SessionState = iota // Splash gate, fully frozen
	StatePreroll                           // Started, waiting before the first spawn
	StateRunning                           // Normal tick
	StatePaused                            // Frozen until toggled back
	StateGameOver                          // Lives exhausted
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingStart:
		return "awaiting-start"
	case StatePreroll:
		return "preroll"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// validTransitions lists every allowed edge of the session state machine.
var validTransitions = map[SessionState][]SessionState{
	StateAwaitingStart: {StatePreroll},
	StatePreroll:       {StateRunning},
	StateRunning:       {StatePaused, StateGameOver},
	StatePaused:        {StateRunning},
	StateGameOver:      {StatePreroll},
}

// CanTransition reports whether the session may move from one state to another.
func CanTransition(from, to SessionState) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Simulating reports whether Advance does any work in this state.
func (s SessionState) Simulating() bool {
	return s == StatePreroll || s == StateRunning
}
