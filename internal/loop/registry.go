package loop

import (
	"math"
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

// OrbRegistry is the live collection of falling orbs.
type OrbRegistry struct {
	orbs   []*object.Orb
	nextID uint64
}

// Orbs returns the live orbs. The slice is owned by the registry.
func (r *OrbRegistry) Orbs() []*object.Orb {
	return r.orbs
}

// Len returns the number of live orbs.
func (r *OrbRegistry) Len() int {
	return len(r.orbs)
}

// Count returns how many live orbs are of kind k.
func (r *OrbRegistry) Count(k object.OrbKind) int {
	n := 0
	for _, o := range r.orbs {
		if o.Variant.Kind() == k {
			n++
		}
	}
	return n
}

// Add appends an orb and assigns it an ID.
func (r *OrbRegistry) Add(o *object.Orb) {
	r.nextID++
	o.ID = r.nextID
	r.orbs = append(r.orbs, o)
}

// Clear removes every orb.
func (r *OrbRegistry) Clear() {
	clear(r.orbs)
	r.orbs = r.orbs[:0]
}

// Advance moves every orb and drops those that left the field.
// Returns how many of the dropped orbs were power-ups.
func (r *OrbRegistry) Advance(ctx object.UpdateContext) (missedPowerups int) {
	kept := r.orbs[:0]
	for _, o := range r.orbs {
		if o.Update(ctx) {
			if o.IsPowerup() {
				missedPowerups++
			}
			continue
		}
		kept = append(kept, o)
	}
	clear(r.orbs[len(kept):])
	r.orbs = kept
	return missedPowerups
}

// shiftSpawnTimes moves every spawn timestamp by d so beat phases survive a pause.
func (r *OrbRegistry) shiftSpawnTimes(d time.Duration) {
	for _, o := range r.orbs {
		o.SpawnedAt = o.SpawnedAt.Add(d)
	}
}

// newOrb builds a live orb from a planned spec.
func newOrb(spec OrbSpec, field object.Field, baseSpeed float64, now time.Time) *object.Orb {
	o := &object.Orb{
		X:         spec.X,
		Angle:     spec.Angle,
		SpawnedAt: now,
		BeatScale: 1,
		Variant:   spec.Variant,
	}
	special := object.Clamp(field.Width*0.017, 20, 30)

	switch v := spec.Variant.(type) {
	case object.NormalShape:
		o.Radius = object.Clamp(field.Width*0.008, 8, 18)
		o.VY = math.Min(baseSpeed*v.Shape.Speed, config.MaxOrbSpeed)
		o.RotationSpeed = math.Abs((0.12 - (v.Color.Wavelength/300)*0.09) * 0.75)
	case object.Heart:
		o.Radius = special
		o.VY = baseSpeed * config.HeartSpeedFactor
		o.Beating = true
	case object.PowerUp:
		o.Radius = special
		o.VY = baseSpeed * config.PowerupSpeed
		o.Beating = true
	case object.GoldenStar:
		o.Radius = special
		o.VY = baseSpeed * config.GoldenSpeed
		o.Beating = true
	}
	o.Y = -2 * o.Radius
	return o
}

// baseSpeed is the fall speed every orb speed derives from. It ramps with
// simulated time up to a cap.
func baseSpeed(field object.Field, elapsed time.Duration) float64 {
	mul := math.Min(config.GameSpeedStart+elapsed.Seconds()*config.GameSpeedRamp, config.GameSpeedMax)
	return math.Max(config.BaseSpeedFloor, field.Height*config.BaseSpeedHeight*mul)
}

// spawnDensity is the number of orbs per spawn batch.
func spawnDensity(elapsed time.Duration) int {
	progress := math.Min(elapsed.Seconds()/config.DensityRampSeconds, 1)
	return int(math.Floor(config.OrbsMin + (config.OrbsMax-config.OrbsMin)*progress))
}

// spawnInterval is the minimum time between spawn batches.
func spawnInterval(elapsed time.Duration, slowTime bool) time.Duration {
	every := config.SpawnIntervalBase - time.Duration(math.Floor(elapsed.Seconds()))*config.SpawnIntervalDecay
	if every < config.SpawnIntervalMin {
		every = config.SpawnIntervalMin
	}
	if slowTime {
		every = time.Duration(float64(every) * config.SlowTimeSpawnFactor)
	}
	return every
}
