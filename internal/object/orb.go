package object

import (
	"math"
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/physics"
)

// OrbKind is the category tag of an orb.
type OrbKind int

const (
	KindNormal OrbKind = iota
	KindHeart
	KindGolden
	KindPowerup
)

func (k OrbKind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindHeart:
		return "heart"
	case KindGolden:
		return "golden"
	case KindPowerup:
		return "powerup"
	default:
		return "unknown"
	}
}

// Variant is the category-specific payload of an orb.
// Exactly one of NormalShape, Heart, GoldenStar or PowerUp.
type Variant interface {
	Kind() OrbKind
	isVariant()
}

// NormalShape is a colored shape worth its table points when caught on target.
type NormalShape struct {
	Shape Shape
	Color ColorEntry
}

// Heart restores one life.
type Heart struct{}

// GoldenStar is a rare bonus orb.
type GoldenStar struct{}

// PowerUp grants a timed modifier.
type PowerUp struct {
	Power PowerupKind
}

func (NormalShape) Kind() OrbKind { return KindNormal }
func (Heart) Kind() OrbKind       { return KindHeart }
func (GoldenStar) Kind() OrbKind  { return KindGolden }
func (PowerUp) Kind() OrbKind     { return KindPowerup }

func (NormalShape) isVariant() {}
func (Heart) isVariant()       {}
func (GoldenStar) isVariant()  {}
func (PowerUp) isVariant()     {}

// Bounce is the post-catch vertical oscillation.
type Bounce struct {
	Active bool
	Offset float64
	Dir    float64
}

// Orb is a falling entity.
type Orb struct {
	ID            uint64
	X, Y          float64 // Center
	VY            float64 // Fall speed, units per second
	Radius        float64
	Angle         float64 // Radians
	RotationSpeed float64 // Radians per 1/60 s
	SpawnedAt     time.Time
	Beating       bool    // Pulses while alive (specials)
	BeatScale     float64 // 1 when not beating
	Bounce        Bounce
	Variant       Variant
}

// Fill returns the color the orb is drawn with.
func (o *Orb) Fill() string {
	switch v := o.Variant.(type) {
	case NormalShape:
		return v.Color.Fill
	case Heart:
		return FillHeart
	case GoldenStar:
		return FillGolden
	case PowerUp:
		return v.Power.Fill()
	default:
		return FillNeutral
	}
}

// IsPowerup reports whether the orb carries a power-up.
func (o *Orb) IsPowerup() bool {
	_, ok := o.Variant.(PowerUp)
	return ok
}

// StartBounce arms the catch-bounce animation.
func (o *Orb) StartBounce() {
	o.Bounce = Bounce{Active: true, Offset: 0, Dir: 1}
}

// Update moves the orb one frame. Returns true once it has left the field.
func (o *Orb) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()
	isPowerup := o.IsPowerup()

	if isPowerup && o.Y > ctx.Field.Height {
		return true
	}

	speed := o.VY
	if ctx.SlowTime && !isPowerup {
		speed *= config.SlowTimeOrbFactor
	}
	o.Y += speed * dt

	o.BeatScale = 1
	if o.Beating {
		ms := float64(ctx.Now.Sub(o.SpawnedAt)) / float64(time.Millisecond)
		o.BeatScale = 1 + math.Sin(ms/config.BeatPeriodMs)*config.BeatAmplitude
	}

	if ctx.Magnet && o.attractedTo(ctx.Target) && o.Y > ctx.Field.Height*config.MagnetThreshold {
		dx := ctx.PaddleX - o.X
		dy := ctx.PaddleY - o.Y
		if physics.Distance(o.X, o.Y, ctx.PaddleX, ctx.PaddleY) > config.MagnetDeadZone {
			o.X += dx * config.MagnetPullX
			o.Y += dy * config.MagnetPullY
		}
	}

	o.Angle += o.RotationSpeed * dt * 60

	if o.Bounce.Active {
		o.Bounce.Offset += o.Bounce.Dir * config.CatchBounceSpeed * dt
		if o.Bounce.Offset > config.CatchBounceMax {
			o.Bounce.Dir = -1
		}
		if o.Bounce.Offset < 0 {
			o.Bounce = Bounce{}
		}
	}

	return o.Y-o.Radius > ctx.Field.Height
}

// attractedTo reports whether the magnet pulls this orb for the given target color.
func (o *Orb) attractedTo(target string) bool {
	n, ok := o.Variant.(NormalShape)
	return ok && n.Color.Name == target
}

var _ Object = (*Orb)(nil)
