package object

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
)

var field = Field{Width: config.FieldWidth, Height: config.FieldHeight}

func TestOrbSlowTimeSkipsPowerups(t *testing.T) {
	red := BasePalette()[0]
	normal := &Orb{Y: 100, VY: 100, Radius: 10, BeatScale: 1, Variant: NormalShape{Shape: ShapeOf(ShapeSquare), Color: red}}
	power := &Orb{Y: 100, VY: 100, Radius: 20, BeatScale: 1, Variant: PowerUp{Power: PowerupShield}}

	ctx := UpdateContext{Delta: 100 * time.Millisecond, Field: field, SlowTime: true}
	normal.Update(ctx)
	power.Update(ctx)

	if got, want := normal.Y, 100+100*0.1*config.SlowTimeOrbFactor; got != want {
		t.Errorf("slowed orb y = %.3f, want %.3f", got, want)
	}
	if got := power.Y; got != 110 {
		t.Errorf("power-up y = %.3f, want 110", got)
	}
}

func TestOrbMagnetPullsOnlyTargetColor(t *testing.T) {
	palette := BasePalette()
	match := &Orb{X: 100, Y: field.Height * 0.5, Radius: 10, Variant: NormalShape{Shape: ShapeOf(ShapeSquare), Color: palette[1]}}
	other := &Orb{X: 100, Y: field.Height * 0.5, Radius: 10, Variant: NormalShape{Shape: ShapeOf(ShapeSquare), Color: palette[2]}}
	high := &Orb{X: 100, Y: field.Height * 0.1, Radius: 10, Variant: NormalShape{Shape: ShapeOf(ShapeSquare), Color: palette[1]}}

	ctx := UpdateContext{
		Delta:   16 * time.Millisecond,
		Field:   field,
		Magnet:  true,
		Target:  palette[1].Name,
		PaddleX: 640,
		PaddleY: 667,
	}
	for _, o := range []*Orb{match, other, high} {
		o.Update(ctx)
	}

	if match.X <= 100 || match.Y <= field.Height*0.5 {
		t.Errorf("matching orb not pulled: (%.2f, %.2f)", match.X, match.Y)
	}
	if other.X != 100 {
		t.Errorf("other color pulled to x=%.2f", other.X)
	}
	if high.X != 100 {
		t.Errorf("orb above the magnet threshold pulled to x=%.2f", high.X)
	}
}

func TestOrbLeavesField(t *testing.T) {
	o := &Orb{Y: field.Height + 9, Radius: 10, Variant: Heart{}}
	if o.Update(UpdateContext{Field: field}) {
		t.Fatal("orb removed while still overlapping the bottom edge")
	}
	o.Y = field.Height + 11
	if !o.Update(UpdateContext{Field: field}) {
		t.Fatal("orb below the field not removed")
	}
}

func TestOrbBeatAndBounce(t *testing.T) {
	spawned := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o := &Orb{Y: 10, Radius: 20, Beating: true, SpawnedAt: spawned, Variant: GoldenStar{}}

	o.Update(UpdateContext{Delta: 16 * time.Millisecond, Now: spawned.Add(200 * time.Millisecond), Field: field})
	if o.BeatScale <= 1 || o.BeatScale > 1+config.BeatAmplitude {
		t.Errorf("beat scale = %.3f", o.BeatScale)
	}

	o.StartBounce()
	for i := 0; i < 1000 && o.Bounce.Active; i++ {
		o.Update(UpdateContext{Delta: 16 * time.Millisecond, Field: field})
		if o.Bounce.Offset > config.CatchBounceMax+config.CatchBounceSpeed {
			t.Fatalf("bounce offset overshot: %.2f", o.Bounce.Offset)
		}
	}
	if o.Bounce.Active {
		t.Fatal("bounce never settled")
	}
}

func TestOrbFill(t *testing.T) {
	tests := []struct {
		variant Variant
		want    string
	}{
		{NormalShape{Color: BasePalette()[3]}, BasePalette()[3].Fill},
		{Heart{}, FillHeart},
		{GoldenStar{}, FillGolden},
		{PowerUp{Power: PowerupSlowTime}, FillClock},
	}
	for _, tt := range tests {
		o := &Orb{Variant: tt.variant}
		if got := o.Fill(); got != tt.want {
			t.Errorf("%v fill = %q, want %q", tt.variant.Kind(), got, tt.want)
		}
	}
}

func TestPaddleStaysInField(t *testing.T) {
	p := NewPaddle(field)
	p.MoveTo(-500, field)
	if left, _, _, _ := p.Bounds(); math.Abs(left) > 1e-9 {
		t.Errorf("left edge = %.2f, want 0", left)
	}
	p.Steer(1, 100, field)
	if _, _, right, _ := p.Bounds(); math.Abs(right-field.Width) > 1e-9 {
		t.Errorf("right edge = %.2f, want %.2f", right, field.Width)
	}
	p.ShrinkCurrent = 0.5
	p.Clamp(field)
	if left, _, right, _ := p.Bounds(); left < 0 || right > field.Width {
		t.Errorf("shrunk paddle outside field: left=%.2f right=%.2f", left, right)
	}
}

func TestScorePopupExpires(t *testing.T) {
	p := NewScorePopup(10, 20, 15, FillGolden)
	if p.Text != "+15" {
		t.Fatalf("text = %q", p.Text)
	}
	ctx := UpdateContext{Delta: 100 * time.Millisecond}
	var removed bool
	for i := 0; i < 20 && !removed; i++ {
		removed = p.Update(ctx)
	}
	if !removed || p.Fade() != 0 {
		t.Fatalf("popup removed=%v fade=%.2f", removed, p.Fade())
	}
}
