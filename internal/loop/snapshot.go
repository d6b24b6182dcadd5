package loop

import (
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

// OrbView is the renderable state of one orb.
type OrbView struct {
	ID           uint64
	X, Y         float64
	Radius       float64
	Angle        float64
	BeatScale    float64
	BounceOffset float64
	Kind         object.OrbKind
	Shape        object.ShapeType   // KindNormal only
	Power        object.PowerupKind // KindPowerup only
	Fill         string
}

// PaddleView is the renderable state of the paddle.
type PaddleView struct {
	X, Y         float64 // Center x, top y
	Width        float64
	Height       float64
	WidthFactor  float64
	Shielded     bool
	Bounce       float64 // Catch pulse progress in [0, 1], 0 when idle
	ShrinkBounce float64 // Release wobble progress in [0, 1], 0 when idle
}

// PowerupView is one active power-up.
type PowerupView struct {
	Kind      object.PowerupKind
	Remaining time.Duration
}

// PopupView is one live score popup.
type PopupView struct {
	X, Y float64
	Text string
	Fill string
	Fade float64
}

// Snapshot is an immutable picture of a session for rendering.
type Snapshot struct {
	State        SessionState
	Field        object.Field
	Orbs         []OrbView
	Paddle       PaddleView
	Current      object.ColorEntry
	Next         object.ColorEntry
	Palette      []object.ColorEntry
	Blink        bool // Show Next instead of Current on the paddle
	Score        int
	Lives        int
	MaxLives     int
	Mana         float64
	ManaFraction float64
	TimeToSwap   time.Duration
	Powerups     []PowerupView
	Popups       []PopupView
	Flash        float64 // Screen flash strength in [0, 1]
	PalettePulse float64 // Swatch pulse strength in [0, 1]
	PrerollLeft  time.Duration
	Elapsed      time.Duration
}

// Snapshot captures the session as of now. While paused, timers read as of
// the moment the pause began.
func (s *Session) Snapshot(now time.Time) *Snapshot {
	if s.state == StatePaused {
		now = s.pausedAt
	}

	snap := &Snapshot{
		State:        s.state,
		Field:        s.field,
		Orbs:         make([]OrbView, 0, s.registry.Len()),
		Current:      s.palette.Current(),
		Next:         s.palette.Next(),
		Palette:      s.palette.Colors(),
		Blink:        s.palette.Blinking(now),
		Score:        s.score,
		Lives:        s.lives,
		MaxLives:     s.tuning.MaxLives,
		Mana:         s.resources.Mana(),
		ManaFraction: s.resources.Fraction(),
		TimeToSwap:   s.palette.TimeToSwap(now),
		Flash:        progress(s.feedback.Flash, config.FlashDuration),
		PalettePulse: progress(s.feedback.PalettePulse, config.PalettePulseDuration),
		Elapsed:      s.elapsed,
	}

	for _, o := range s.registry.orbs {
		v := OrbView{
			ID:        o.ID,
			X:         o.X,
			Y:         o.Y,
			Radius:    o.Radius,
			Angle:     o.Angle,
			BeatScale: o.BeatScale,
			Kind:      o.Variant.Kind(),
			Fill:      o.Fill(),
		}
		if o.Bounce.Active {
			v.BounceOffset = o.Bounce.Offset
		}
		switch variant := o.Variant.(type) {
		case object.NormalShape:
			v.Shape = variant.Shape.Type
		case object.PowerUp:
			v.Power = variant.Power
		}
		snap.Orbs = append(snap.Orbs, v)
	}

	snap.Paddle = PaddleView{
		X:            s.paddle.X,
		Y:            s.paddle.Y,
		Width:        s.paddle.Width(),
		Height:       s.paddle.Height,
		WidthFactor:  s.paddle.ShrinkCurrent,
		Shielded:     s.powerups.Active(object.PowerupShield),
		Bounce:       1 - progress(s.feedback.PaddleBounce, config.PaddleBounceDuration),
		ShrinkBounce: 1 - progress(s.feedback.ShrinkBounce, config.ShrinkBounceDuration),
	}
	if s.feedback.PaddleBounce == 0 {
		snap.Paddle.Bounce = 0
	}
	if s.feedback.ShrinkBounce == 0 {
		snap.Paddle.ShrinkBounce = 0
	}

	for _, k := range object.PowerupKinds {
		if s.powerups.Active(k) {
			snap.Powerups = append(snap.Powerups, PowerupView{Kind: k, Remaining: s.powerups.Remaining(k)})
		}
	}

	for _, p := range s.popups {
		snap.Popups = append(snap.Popups, PopupView{X: p.X, Y: p.Y, Text: p.Text, Fill: p.Fill, Fade: p.Fade()})
	}

	if s.state == StatePreroll {
		if left := s.tuning.Preroll - now.Sub(s.startedAt); left > 0 {
			snap.PrerollLeft = left
		}
	}
	return snap
}

// progress returns remaining/total in [0, 1].
func progress(remaining, total time.Duration) float64 {
	if total <= 0 || remaining <= 0 {
		return 0
	}
	return object.Clamp(float64(remaining)/float64(total), 0, 1)
}
