package object

import (
	"time"
)

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta    time.Duration
	Now      time.Time
	Field    Field
	SlowTime bool   // Slow-time power-up active
	Magnet   bool   // Magnet power-up active
	Target   string // Name of the current target color
	PaddleX  float64
	PaddleY  float64 // Vertical center of the paddle
}

// Object is an updatable game entity.
type Object interface {
	// Update advances the object by ctx.Delta. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)
}

// Field is the logical play area. Origin is the top-left corner, y grows downward.
type Field struct {
	Width  float64
	Height float64
}

// Clamp limits v to [lo, hi]. If lo > hi, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
