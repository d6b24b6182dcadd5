package object

import (
	"math"

	"github.com/tomz197/coloroid/internal/loop/config"
)

// Paddle is the player-controlled catcher at the bottom of the field.
type Paddle struct {
	X         float64 // Horizontal center
	Y         float64 // Top edge
	BaseWidth float64 // Width at full size
	Height    float64
	Speed     float64 // Keyboard steering speed, units per second

	ShrinkCurrent float64 // Width factor being displayed, animates toward ShrinkTarget
	ShrinkTarget  float64 // 1 normal, config.ShrinkTarget shrunk
	ShrinkActive  bool    // Shrink action engaged
}

// NewPaddle creates a full-width paddle centered in the field.
func NewPaddle(field Field) Paddle {
	return Paddle{
		X:             field.Width / 2,
		Y:             field.Height - config.PaddleBottomOffset,
		BaseWidth:     math.Max(config.PaddleMinWidth, field.Width*config.PaddleWidthRatio),
		Height:        config.PaddleHeight,
		Speed:         math.Max(config.PaddleMinSpeed, field.Width*config.PaddleSpeedRatio),
		ShrinkCurrent: 1,
		ShrinkTarget:  1,
	}
}

// Width returns the current on-screen width.
func (p *Paddle) Width() float64 {
	return p.BaseWidth * p.ShrinkCurrent
}

// Bounds returns the paddle rectangle.
func (p *Paddle) Bounds() (left, top, right, bottom float64) {
	half := p.Width() / 2
	return p.X - half, p.Y, p.X + half, p.Y + p.Height
}

// Center returns the center of the paddle rectangle.
func (p *Paddle) Center() (x, y float64) {
	return p.X, p.Y + p.Height/2
}

// MoveTo sets the horizontal center, clamped so the paddle stays inside the field.
func (p *Paddle) MoveTo(x float64, field Field) {
	p.X = x
	p.Clamp(field)
}

// Steer moves the paddle by dir (-1, 0, 1) at its steering speed.
func (p *Paddle) Steer(dir int, dt float64, field Field) {
	p.MoveTo(p.X+float64(dir)*p.Speed*dt, field)
}

// Clamp keeps the paddle inside the field at its current width.
func (p *Paddle) Clamp(field Field) {
	half := p.Width() / 2
	p.X = Clamp(p.X, half, field.Width-half)
}
