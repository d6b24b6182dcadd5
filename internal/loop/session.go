package loop

import (
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

// Feedback holds rendering-only countdowns triggered by gameplay.
type Feedback struct {
	Flash        time.Duration // Red screen flash after a life loss
	PaddleBounce time.Duration // Paddle pulse after a matching catch
	ShrinkBounce time.Duration // Paddle wobble after releasing a full shrink
	PalettePulse time.Duration // Swatch pulse after a rotation
}

func (f *Feedback) tick(dt time.Duration) {
	for _, d := range []*time.Duration{&f.Flash, &f.PaddleBounce, &f.ShrinkBounce, &f.PalettePulse} {
		*d -= dt
		if *d < 0 {
			*d = 0
		}
	}
}

// Session is one player's game: every piece of simulation state, owned by a
// single goroutine. Nothing here is safe for concurrent use.
type Session struct {
	tuning config.Tuning
	field  object.Field
	rng    RandomSource

	state     SessionState
	startedAt time.Time // Preroll anchor
	pausedAt  time.Time
	lastFrame time.Time

	score     int
	lives     int
	resources ResourceController
	paddle    object.Paddle
	palette   *Palette
	planner   *SpawnPlanner
	powerups  PowerupTimers
	registry  OrbRegistry
	popups    []*object.ScorePopup
	feedback  Feedback

	elapsed     time.Duration // Simulated time since start, drives difficulty
	lastSpawnAt time.Time
	gameOver    bool // Game-over already signaled

	events []Event
}

// NewSession creates a session waiting for its start signal.
func NewSession(t config.Tuning, r RandomSource, now time.Time) *Session {
	field := object.Field{Width: t.FieldWidth, Height: t.FieldHeight}
	s := &Session{
		tuning:  t,
		field:   field,
		rng:     r,
		state:   StateAwaitingStart,
		planner: NewSpawnPlanner(r),
		palette: &Palette{period: t.PaletteSwap},
	}
	s.reset(now)
	return s
}

// reset reinitializes everything a new game starts from.
func (s *Session) reset(now time.Time) {
	s.score = 0
	s.lives = s.tuning.MaxLives
	s.resources = NewResourceController(s.tuning.MaxMana, s.tuning.StartMana)
	s.paddle = object.NewPaddle(s.field)
	s.palette.Reset(s.rng, now)
	s.planner.Reset()
	s.powerups.Reset()
	s.registry.Clear()
	clear(s.popups)
	s.popups = s.popups[:0]
	s.feedback = Feedback{}
	s.elapsed = 0
	s.startedAt = now
	s.lastSpawnAt = now
	s.lastFrame = now
	s.gameOver = false
}

// transition moves to the given state if the edge is valid.
func (s *Session) transition(to SessionState) bool {
	if !CanTransition(s.state, to) {
		return false
	}
	s.state = to
	return true
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// Start leaves the splash gate and begins the preroll.
func (s *Session) Start(now time.Time) bool {
	if s.state != StateAwaitingStart {
		return false
	}
	s.reset(now)
	s.transition(StatePreroll)
	s.emit(Event{Type: EventStarted})
	return true
}

// Restart begins a fresh game after game over.
func (s *Session) Restart(now time.Time) bool {
	if s.state != StateGameOver {
		return false
	}
	s.reset(now)
	s.transition(StatePreroll)
	s.emit(Event{Type: EventRestartCompleted})
	return true
}

// TogglePause flips between running and paused. All timestamps are shifted by
// the pause length on resume so timers pick up where they stopped.
func (s *Session) TogglePause(now time.Time) bool {
	switch s.state {
	case StateRunning:
		s.transition(StatePaused)
		s.pausedAt = now
		s.emit(Event{Type: EventPauseChanged, Paused: true})
		return true
	case StatePaused:
		if d := now.Sub(s.pausedAt); d > 0 {
			s.shift(d)
		}
		s.transition(StateRunning)
		s.lastFrame = now
		s.emit(Event{Type: EventPauseChanged, Paused: false})
		return true
	default:
		return false
	}
}

// shift moves every wall-clock anchor forward by d.
func (s *Session) shift(d time.Duration) {
	s.palette.shift(d)
	s.planner.shift(d)
	s.registry.shiftSpawnTimes(d)
	s.startedAt = s.startedAt.Add(d)
	s.lastSpawnAt = s.lastSpawnAt.Add(d)
}

// EngageShrink starts the paddle shrink if there is mana for it.
func (s *Session) EngageShrink() bool {
	if !s.state.Simulating() {
		return false
	}
	return s.resources.Engage(&s.paddle)
}

// ReleaseShrink ends the paddle shrink. It is accepted in every state after
// the start screen, Paused included.
func (s *Session) ReleaseShrink() {
	if s.state == StateAwaitingStart {
		return
	}
	if s.resources.Release(&s.paddle) {
		s.feedback.ShrinkBounce = config.ShrinkBounceDuration
	}
}

// SetPaddleTarget centers the paddle on x, clamped to the field.
func (s *Session) SetPaddleTarget(x float64) {
	if !s.state.Simulating() {
		return
	}
	s.paddle.MoveTo(x, s.field)
}

// DrainEvents returns the events produced since the last call and clears the queue.
func (s *Session) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := s.events
	s.events = nil
	return out
}

// State returns the session phase.
func (s *Session) State() SessionState { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Mana returns the current mana pool.
func (s *Session) Mana() float64 { return s.resources.Mana() }

// Field returns the play field.
func (s *Session) Field() object.Field { return s.field }

// Palette returns the palette manager.
func (s *Session) Palette() *Palette { return s.palette }

// Orbs returns the live orbs.
func (s *Session) Orbs() []*object.Orb { return s.registry.Orbs() }

// Popups returns the live score popups.
func (s *Session) Popups() []*object.ScorePopup { return s.popups }

// Paddle returns the paddle.
func (s *Session) Paddle() object.Paddle { return s.paddle }

// Powerups returns the power-up timers.
func (s *Session) Powerups() PowerupTimers { return s.powerups }
