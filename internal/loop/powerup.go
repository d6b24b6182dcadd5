package loop

import (
	"time"

	"github.com/tomz197/coloroid/internal/object"
)

// PowerupTimers holds the remaining active time per power-up kind. Zero is inactive.
type PowerupTimers [len(object.PowerupKinds)]time.Duration

// Activate sets the timer for k to its full duration.
func (t *PowerupTimers) Activate(k object.PowerupKind, d time.Duration) {
	t[k] = d
}

// Active reports whether k has time left.
func (t *PowerupTimers) Active(k object.PowerupKind) bool {
	return t[k] > 0
}

// Remaining returns the time left on k.
func (t *PowerupTimers) Remaining(k object.PowerupKind) time.Duration {
	return t[k]
}

// Tick counts every running timer down by dt, flooring at zero.
func (t *PowerupTimers) Tick(dt time.Duration) {
	for k := range t {
		if t[k] > 0 {
			t[k] -= dt
			if t[k] < 0 {
				t[k] = 0
			}
		}
	}
}

// Reset deactivates all timers.
func (t *PowerupTimers) Reset() {
	*t = PowerupTimers{}
}
