package object

import (
	"strconv"
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
)

// ScorePopup is a short-lived "+N" label left where an orb was caught.
type ScorePopup struct {
	X, Y  float64
	Text  string
	Fill  string
	Age   time.Duration
	Value int
}

// NewScorePopup creates a popup for a positive score gain at (x, y).
func NewScorePopup(x, y float64, value int, fill string) *ScorePopup {
	return &ScorePopup{
		X:     x,
		Y:     y,
		Text:  "+" + strconv.Itoa(value),
		Fill:  fill,
		Value: value,
	}
}

// Update ages the popup and expires it after its lifetime.
func (p *ScorePopup) Update(ctx UpdateContext) bool {
	p.Age += ctx.Delta
	return p.Age > config.PopupLifetime
}

// Fade returns the remaining opacity in [0, 1].
func (p *ScorePopup) Fade() float64 {
	return Clamp(1-p.Age.Seconds()/config.PopupLifetime.Seconds(), 0, 1)
}

var _ Object = (*ScorePopup)(nil)
