// Package loop provides the game simulation: a Session advanced one frame at a
// time with the standard Input -> Update cycle, and the components it is built from.
package loop

import (
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

// Input is the player's intent for one frame. Signals are sampled once at the
// start of the frame.
type Input struct {
	PaddleX     float64 // Absolute paddle center, used when HasPaddleX
	HasPaddleX  bool
	Steer       int // -1 left, 1 right, 0 none
	Start       bool
	Restart     bool
	TogglePause bool
	ShrinkBegin bool
	ShrinkEnd   bool
}

// Merge folds a later input into in. Discrete signals accumulate (two pause
// toggles cancel out), continuous ones take the latest value. Shrink edges
// keep their order: a press after a release leaves only the press.
func (in Input) Merge(next Input) Input {
	if next.HasPaddleX {
		in.PaddleX = next.PaddleX
		in.HasPaddleX = true
	}
	in.Steer = next.Steer
	in.Start = in.Start || next.Start
	in.Restart = in.Restart || next.Restart
	in.TogglePause = in.TogglePause != next.TogglePause
	switch {
	case next.ShrinkEnd:
		in.ShrinkBegin = in.ShrinkBegin || next.ShrinkBegin
		in.ShrinkEnd = true
	case next.ShrinkBegin:
		in.ShrinkBegin = true
		in.ShrinkEnd = false
	}
	return in
}

// ClampDelta bounds a frame delta so stalls never jump the simulation.
func ClampDelta(dt time.Duration) time.Duration {
	if dt < config.MinFrameDelta {
		return config.MinFrameDelta
	}
	if dt > config.MaxFrameDelta {
		return config.MaxFrameDelta
	}
	return dt
}

// Step applies one frame of input and advances the simulation to now.
func (s *Session) Step(in Input, now time.Time) {
	dt := ClampDelta(now.Sub(s.lastFrame))
	s.lastFrame = now

	if in.Start {
		s.Start(now)
	}
	if in.Restart {
		s.Restart(now)
	}
	if in.TogglePause {
		s.TogglePause(now)
	}
	if in.ShrinkBegin {
		s.EngageShrink()
	}
	if in.ShrinkEnd {
		s.ReleaseShrink()
	}
	if in.HasPaddleX {
		s.SetPaddleTarget(in.PaddleX)
	}
	if in.Steer != 0 && s.state.Simulating() {
		s.paddle.Steer(in.Steer, dt.Seconds(), s.field)
	}

	s.Advance(dt, now)
}

// Advance runs one simulation frame. It is a no-op unless the session is in
// preroll or running.
func (s *Session) Advance(dt time.Duration, now time.Time) {
	if !s.state.Simulating() {
		return
	}
	dt = ClampDelta(dt)
	s.elapsed += dt

	s.powerups.Tick(dt)
	s.feedback.tick(dt)

	if s.palette.Tick(s.rng, now) {
		s.feedback.PalettePulse = config.PalettePulseDuration
		s.emit(Event{Type: EventPaletteRotated, Color: s.palette.Current()})
	}

	if s.state == StatePreroll && now.Sub(s.startedAt) > s.tuning.Preroll {
		s.transition(StateRunning)
		s.emit(Event{Type: EventRunning})
	}
	if s.state == StateRunning {
		s.spawnTick(now)
	}

	s.advanceOrbs(dt, now)
	s.resolveCollisions()
	s.advancePopups(dt, now)

	shrunk := s.paddle.ShrinkActive
	s.resources.Tick(&s.paddle, dt.Seconds())
	if shrunk && !s.paddle.ShrinkActive {
		s.emit(Event{Type: EventShrinkForced})
	}
	s.paddle.Clamp(s.field)
	s.clampPlayer()
}

// spawnTick plans and adds a batch once the spawn interval has passed.
func (s *Session) spawnTick(now time.Time) {
	slow := s.powerups.Active(object.PowerupSlowTime)
	if now.Sub(s.lastSpawnAt) <= spawnInterval(s.elapsed, slow) {
		return
	}
	s.lastSpawnAt = now

	specs := s.planner.Plan(PlanRequest{
		Count:        spawnDensity(s.elapsed),
		Palette:      s.palette.colors,
		CurrentIndex: s.palette.CurrentIndex(),
		FieldWidth:   s.field.Width,
		Lives:        s.lives,
		MaxLives:     s.tuning.MaxLives,
		LiveHearts:   s.registry.Count(object.KindHeart),
		LivePowerups: s.registry.Count(object.KindPowerup),
		Now:          now,
	})
	speed := baseSpeed(s.field, s.elapsed)
	for _, spec := range specs {
		s.registry.Add(newOrb(spec, s.field, speed, now))
	}
}

// advanceOrbs moves every orb under the active power-ups.
func (s *Session) advanceOrbs(dt time.Duration, now time.Time) {
	px, py := s.paddle.Center()
	ctx := object.UpdateContext{
		Delta:    dt,
		Now:      now,
		Field:    s.field,
		SlowTime: s.powerups.Active(object.PowerupSlowTime),
		Magnet:   s.powerups.Active(object.PowerupMagnet),
		Target:   s.palette.Current().Name,
		PaddleX:  px,
		PaddleY:  py,
	}
	if missed := s.registry.Advance(ctx); missed > 0 {
		s.planner.ClearPending()
	}
}

// advancePopups ages score popups and drops expired ones.
func (s *Session) advancePopups(dt time.Duration, now time.Time) {
	ctx := object.UpdateContext{Delta: dt, Now: now, Field: s.field}
	kept := s.popups[:0]
	for _, p := range s.popups {
		if !p.Update(ctx) {
			kept = append(kept, p)
		}
	}
	clear(s.popups[len(kept):])
	s.popups = kept
}
