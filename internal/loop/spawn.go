package loop

import (
	"math"
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

// OrbSpec describes one orb chosen by the planner: where it enters and what it is.
type OrbSpec struct {
	X       float64
	Angle   float64 // Initial rotation
	Variant object.Variant
}

// PlanRequest is everything the planner reads from the session for one batch.
type PlanRequest struct {
	Count        int
	Palette      []object.ColorEntry
	CurrentIndex int
	FieldWidth   float64
	Lives        int
	MaxLives     int
	LiveHearts   int
	LivePowerups int
	Now          time.Time
}

// SpawnPlanner decides what each orb of a spawn batch is.
// It remembers power-up history across batches.
type SpawnPlanner struct {
	rng            RandomSource
	lastPowerupAt  time.Time
	lastPowerup    object.PowerupKind
	hasLastPowerup bool
	pending        bool
}

// NewSpawnPlanner creates a planner drawing from r.
func NewSpawnPlanner(r RandomSource) *SpawnPlanner {
	return &SpawnPlanner{rng: r}
}

// Reset forgets power-up history.
func (sp *SpawnPlanner) Reset() {
	sp.lastPowerupAt = time.Time{}
	sp.hasLastPowerup = false
	sp.pending = false
}

// PowerupPending reports whether a spawned power-up is still in flight.
func (sp *SpawnPlanner) PowerupPending() bool {
	return sp.pending
}

// ClearPending allows the next power-up to spawn. Called once the in-flight
// power-up is caught or falls out of the field. The cooldown is left untouched.
func (sp *SpawnPlanner) ClearPending() {
	sp.pending = false
}

// shift moves the cooldown anchor by d.
func (sp *SpawnPlanner) shift(d time.Duration) {
	if !sp.lastPowerupAt.IsZero() {
		sp.lastPowerupAt = sp.lastPowerupAt.Add(d)
	}
}

// Plan builds one spawn batch.
func (sp *SpawnPlanner) Plan(req PlanRequest) []OrbSpec {
	if req.Count <= 0 {
		return nil
	}
	colors := sp.chooseColors(req.Count, req.Palette, req.CurrentIndex)

	var used []object.ShapeType
	var heartThisRound bool
	xs := make([]float64, 0, req.Count)
	shapes := make([]object.ShapeType, 0, req.Count)
	specs := make([]OrbSpec, 0, req.Count)

	for i := 0; i < req.Count; i++ {
		shape := sp.pickShape(&used)
		used = append(used, shape.Type)

		x := sp.place(shape.Type, xs, shapes, req.FieldWidth)
		xs = append(xs, x)
		shapes = append(shapes, shape.Type)

		spec := OrbSpec{X: x}
		switch {
		case sp.rollHeart(req, heartThisRound):
			heartThisRound = true
			spec.Variant = object.Heart{}
		case sp.rollPowerup(req):
			spec.Variant = object.PowerUp{Power: sp.nextPowerup(req.Now)}
		case sp.rng.Float64() < config.GoldenChance:
			spec.Variant = object.GoldenStar{}
		default:
			spec.Variant = object.NormalShape{Shape: shape, Color: colors[i]}
		}
		spec.Angle = sp.rng.Float64() * 2 * math.Pi
		specs = append(specs, spec)
	}
	return specs
}

// chooseColors assigns floor(40%) of the batch to the target color and spreads
// the rest evenly over the other colors, earlier colors taking the remainder.
func (sp *SpawnPlanner) chooseColors(count int, palette []object.ColorEntry, current int) []object.ColorEntry {
	target := palette[current]
	onTarget := int(math.Floor(float64(count) * 0.4))

	others := make([]object.ColorEntry, 0, len(palette))
	for i, c := range palette {
		if i != current {
			others = append(others, c)
		}
	}

	out := make([]object.ColorEntry, 0, count)
	for i := 0; i < onTarget; i++ {
		out = append(out, target)
	}
	rest := count - onTarget
	if len(others) == 0 {
		for i := 0; i < rest; i++ {
			out = append(out, target)
		}
	} else {
		per, extra := rest/len(others), rest%len(others)
		for i, c := range others {
			n := per
			if i < extra {
				n++
			}
			for j := 0; j < n; j++ {
				out = append(out, c)
			}
		}
	}
	shuffle(sp.rng, out)
	return out
}

// pickShape draws a weighted shape among those not yet used in the batch.
// Once every shape has been used the exclusions reset.
func (sp *SpawnPlanner) pickShape(used *[]object.ShapeType) object.Shape {
	var viable []object.Shape
	for _, s := range object.Shapes() {
		if !containsShape(*used, s.Type) {
			viable = append(viable, s)
		}
	}
	if len(viable) == 0 {
		*used = (*used)[:0]
		viable = object.Shapes()
	}

	total := 0
	for _, s := range viable {
		total += s.Weight
	}
	r := sp.rng.Float64() * float64(total)
	for _, s := range viable {
		if r < float64(s.Weight) {
			return s
		}
		r -= float64(s.Weight)
	}
	return viable[len(viable)-1]
}

func containsShape(list []object.ShapeType, t object.ShapeType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

// place picks a spawn x inside the margins, retrying while it lands too close to
// an earlier orb of the same shape. The last attempt wins if none fits.
func (sp *SpawnPlanner) place(shape object.ShapeType, xs []float64, shapes []object.ShapeType, width float64) float64 {
	var x float64
	for attempt := 0; attempt < config.PlacementAttempts; attempt++ {
		x = randRange(sp.rng, config.SpawnMargin, width-config.SpawnMargin)
		if !crowded(x, shape, xs, shapes) {
			break
		}
	}
	return x
}

func crowded(x float64, shape object.ShapeType, xs []float64, shapes []object.ShapeType) bool {
	for i, other := range xs {
		if shapes[i] == shape && math.Abs(other-x) < config.SameShapeSpacing {
			return true
		}
	}
	return false
}

// rollHeart draws the heart chance only when a heart is allowed at all.
func (sp *SpawnPlanner) rollHeart(req PlanRequest, spawnedThisBatch bool) bool {
	if req.Lives >= req.MaxLives || req.LiveHearts > 0 || spawnedThisBatch {
		return false
	}
	return sp.rng.Float64() < config.HeartChance
}

// rollPowerup draws the power-up chance only when one may spawn.
func (sp *SpawnPlanner) rollPowerup(req PlanRequest) bool {
	if req.LivePowerups > 0 || sp.pending {
		return false
	}
	if !req.Now.After(sp.lastPowerupAt.Add(config.PowerupSpawnCooldown)) {
		return false
	}
	return sp.rng.Float64() < config.PowerupChance
}

// nextPowerup picks the power-up kind, never repeating the previous one, and
// records the spawn.
func (sp *SpawnPlanner) nextPowerup(now time.Time) object.PowerupKind {
	kind := object.PowerupKinds[randIndex(sp.rng, len(object.PowerupKinds))]
	if sp.hasLastPowerup && kind == sp.lastPowerup {
		for _, k := range object.PowerupKinds {
			if k != sp.lastPowerup {
				kind = k
				break
			}
		}
	}
	sp.lastPowerup = kind
	sp.hasLastPowerup = true
	sp.lastPowerupAt = now
	sp.pending = true
	return kind
}
