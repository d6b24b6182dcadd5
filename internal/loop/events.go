package loop

import "github.com/tomz197/coloroid/internal/object"

// EventType identifies a session event.
type EventType int

const (
	EventStarted          EventType = iota // AwaitingStart -> Preroll
	EventRunning                           // Preroll delay elapsed
	EventPauseChanged                      // Paused field carries the new state
	EventRestartCompleted                  // GameOver -> Preroll, state reset
	EventGameOver                          // Score carries the final score
	EventPaletteRotated                    // Color carries the new target
	EventCaught                            // Outcome/Score describe the catch
	EventLifeLost                          // Mismatched catch without shield
	EventShrinkForced                      // Mana ran out while shrunk
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventRunning:
		return "running"
	case EventPauseChanged:
		return "pause-changed"
	case EventRestartCompleted:
		return "restart-completed"
	case EventGameOver:
		return "game-over"
	case EventPaletteRotated:
		return "palette-rotated"
	case EventCaught:
		return "caught"
	case EventLifeLost:
		return "life-lost"
	case EventShrinkForced:
		return "shrink-forced"
	default:
		return "unknown"
	}
}

// Event is a lifecycle or feedback signal for UI and audio collaborators.
// The simulation never depends on anyone consuming them.
type Event struct {
	Type    EventType
	Score   int // Final score for EventGameOver, points gained for EventCaught
	Paused  bool
	Outcome Outcome
	Color   object.ColorEntry
	Power   object.PowerupKind
}
