package loop

import (
	"math"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

// ResourceController manages the mana pool and the paddle shrink state.
type ResourceController struct {
	mana    float64
	maxMana float64
}

// NewResourceController creates a pool holding start mana out of max.
func NewResourceController(max, start float64) ResourceController {
	rc := ResourceController{maxMana: max}
	rc.Reset(start)
	return rc
}

// Reset refills the pool to start.
func (rc *ResourceController) Reset(start float64) {
	rc.mana = start
	rc.clamp()
}

// Mana returns the current pool.
func (rc *ResourceController) Mana() float64 { return rc.mana }

// MaxMana returns the pool capacity.
func (rc *ResourceController) MaxMana() float64 { return rc.maxMana }

// Fraction returns mana as a fraction of capacity.
func (rc *ResourceController) Fraction() float64 {
	if rc.maxMana <= 0 {
		return 0
	}
	return rc.mana / rc.maxMana
}

// Gain adds v mana, clamped to capacity.
func (rc *ResourceController) Gain(v float64) {
	rc.mana += v
	rc.clamp()
}

// Engage starts shrinking the paddle. Ignored when the pool is empty.
func (rc *ResourceController) Engage(p *object.Paddle) bool {
	if rc.mana <= 0 {
		return false
	}
	p.ShrinkActive = true
	p.ShrinkTarget = config.ShrinkTarget
	return true
}

// Release lets the paddle grow back. Reports whether it was (nearly) fully
// shrunk, which triggers the release bounce.
func (rc *ResourceController) Release(p *object.Paddle) bool {
	p.ShrinkActive = false
	p.ShrinkTarget = 1
	return p.ShrinkCurrent <= config.ShrinkBounceLimit
}

// Tick drains mana while shrunk, force-releasing the paddle when the pool runs
// dry, then eases the paddle width toward its target.
func (rc *ResourceController) Tick(p *object.Paddle, dt float64) {
	if p.ShrinkActive && rc.mana > 0 {
		rc.mana -= dt * config.ManaDrainPct * rc.maxMana / 100
		if rc.mana <= 0 {
			rc.mana = 0
			p.ShrinkActive = false
			p.ShrinkTarget = 1
		}
	}
	rc.clamp()
	animateShrink(p, dt)
}

// animateShrink moves the width factor a step toward its target. The step grows
// slightly with frame time so the easing looks alike across frame rates.
func animateShrink(p *object.Paddle, dt float64) {
	speed := config.ShrinkLerpBase + config.ShrinkLerpPerSec*dt
	p.ShrinkCurrent += (p.ShrinkTarget - p.ShrinkCurrent) * speed
	if math.Abs(p.ShrinkCurrent-p.ShrinkTarget) < config.ShrinkSnap {
		p.ShrinkCurrent = p.ShrinkTarget
	}
}

func (rc *ResourceController) clamp() {
	rc.mana = object.Clamp(rc.mana, 0, rc.maxMana)
}
