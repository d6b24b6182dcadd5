// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Play field - the logical coordinate space orbs and the paddle live in.
// Rendering scales it to whatever the terminal offers.
const (
	FieldWidth  = 1280
	FieldHeight = 720
)

// Player
const (
	MaxLives     = 3
	MaxMana      = 200.0
	ScoreGolden  = 100
	ManaDrainPct = 10.0 // Percent of MaxMana drained per second while shrunk
)

// Session timing
const (
	PaletteSwapPeriod = 30 * time.Second
	PrerollDelay      = 2000 * time.Millisecond
	MinFrameDelta     = 8 * time.Millisecond
	MaxFrameDelta     = 33 * time.Millisecond
)

// Palette preview
const (
	BlinkWindow   = 3 * time.Second
	BlinkInterval = 200 * time.Millisecond
)

// Power-ups
const (
	PowerupDuration      = 15 * time.Second
	PowerupSpawnCooldown = 5 * time.Second
	SlowTimeOrbFactor    = 0.4
	SlowTimeSpawnFactor  = 2.5
	MagnetThreshold      = 0.3 // Fraction of field height an orb must pass before it is pulled
	MagnetPullX          = 0.13 * 0.3
	MagnetPullY          = 0.11 * 0.3
	MagnetDeadZone       = 2.0
)

// Spawning
const (
	SpawnIntervalBase  = 900 * time.Millisecond
	SpawnIntervalMin   = 220 * time.Millisecond
	SpawnIntervalDecay = 2 * time.Millisecond // Per elapsed second
	OrbsMin            = 3
	OrbsMax            = 10
	DensityRampSeconds = 35.0
	SpawnMargin        = 32.0
	SameShapeSpacing   = 64.0
	PlacementAttempts  = 20
	HeartChance        = 0.1
	PowerupChance      = 0.08
	GoldenChance       = 0.03
)

// Orb motion
const (
	GameSpeedStart   = 1.2
	GameSpeedMax     = 3.0
	GameSpeedRamp    = 0.015 // Per elapsed second
	BaseSpeedFloor   = 200 * GameSpeedStart
	BaseSpeedHeight  = 0.28
	MaxOrbSpeed      = 1000.0
	HeartSpeedFactor = 1.0
	PowerupSpeed     = 1.1
	GoldenSpeed      = 1.4
	BeatPeriodMs     = 240.0
	BeatAmplitude    = 0.18
	CatchBounceSpeed = 18.0
	CatchBounceMax   = 28.0
)

// Paddle
const (
	PaddleMinWidth     = 108.0
	PaddleWidthRatio   = 0.144
	PaddleHeight       = 22.0
	PaddleBottomOffset = 64.0
	PaddleMinSpeed     = 520.0
	PaddleSpeedRatio   = 1.25
	ShrinkTarget       = 0.5
	ShrinkLerpBase     = 0.13
	ShrinkLerpPerSec   = 0.25
	ShrinkSnap         = 0.01
	ShrinkBounceLimit  = 0.51
)

// Feedback timers (rendering only)
const (
	FlashDuration        = 160 * time.Millisecond
	PaddleBounceDuration = 14 * time.Second / 60
	ShrinkBounceDuration = 18 * time.Second / 60
	PalettePulseDuration = 16 * time.Second / 60
	PopupLifetime        = 900 * time.Millisecond
)

// Leaderboard
const (
	TopScoreCount = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 200
	MaxTermHeight         = 60
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)

// Tuning holds the subset of parameters that may be overridden per process.
// Everything else is a compile-time constant above.
type Tuning struct {
	FieldWidth    float64
	FieldHeight   float64
	MaxLives      int
	MaxMana       float64
	StartMana     float64
	PaletteSwap   time.Duration
	Preroll       time.Duration
	PowerupLength time.Duration
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		FieldWidth:    FieldWidth,
		FieldHeight:   FieldHeight,
		MaxLives:      MaxLives,
		MaxMana:       MaxMana,
		StartMana:     MaxMana,
		PaletteSwap:   PaletteSwapPeriod,
		Preroll:       PrerollDelay,
		PowerupLength: PowerupDuration,
	}
}

// ErrInvalidTuning is returned by Validate for unusable parameter sets.
var ErrInvalidTuning = errors.New("invalid tuning")

// Validate reports whether t can drive a session.
func (t Tuning) Validate() error {
	switch {
	case t.FieldWidth <= 2*SpawnMargin || t.FieldHeight <= PaddleBottomOffset:
		return fmt.Errorf("%w: field %.0fx%.0f too small", ErrInvalidTuning, t.FieldWidth, t.FieldHeight)
	case t.MaxLives < 1:
		return fmt.Errorf("%w: max lives %d", ErrInvalidTuning, t.MaxLives)
	case t.MaxMana <= 0:
		return fmt.Errorf("%w: max mana %.1f", ErrInvalidTuning, t.MaxMana)
	case t.StartMana < 0 || t.StartMana > t.MaxMana:
		return fmt.Errorf("%w: start mana %.1f outside [0,%.1f]", ErrInvalidTuning, t.StartMana, t.MaxMana)
	case t.PaletteSwap <= 0:
		return fmt.Errorf("%w: palette swap period %s", ErrInvalidTuning, t.PaletteSwap)
	case t.Preroll < 0:
		return fmt.Errorf("%w: preroll %s", ErrInvalidTuning, t.Preroll)
	case t.PowerupLength <= 0:
		return fmt.Errorf("%w: power-up duration %s", ErrInvalidTuning, t.PowerupLength)
	}
	return nil
}
