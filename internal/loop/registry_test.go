package loop

import (
	"testing"
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

var testField = object.Field{Width: config.FieldWidth, Height: config.FieldHeight}

func TestRegistryAssignsIDs(t *testing.T) {
	var r OrbRegistry
	a := &object.Orb{Variant: object.Heart{}}
	b := &object.Orb{Variant: object.GoldenStar{}}
	r.Add(a)
	r.Add(b)
	if a.ID == 0 || b.ID == 0 || a.ID == b.ID {
		t.Fatalf("ids = %d, %d", a.ID, b.ID)
	}
	if r.Count(object.KindHeart) != 1 || r.Count(object.KindPowerup) != 0 {
		t.Fatalf("counts wrong")
	}
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("Len after Clear = %d", r.Len())
	}
}

func TestRegistryAdvanceDropsLeavers(t *testing.T) {
	var r OrbRegistry
	stays := &object.Orb{Y: 100, Radius: 10, VY: 10, Variant: object.Heart{}}
	leaves := &object.Orb{Y: testField.Height + 11, Radius: 10, Variant: object.GoldenStar{}}
	missed := &object.Orb{Y: testField.Height + 1, Radius: 30, Variant: object.PowerUp{Power: object.PowerupMagnet}}
	r.Add(stays)
	r.Add(leaves)
	r.Add(missed)

	n := r.Advance(object.UpdateContext{Delta: frame, Now: t0, Field: testField})
	if n != 1 {
		t.Errorf("missed power-ups = %d, want 1", n)
	}
	if r.Len() != 1 || r.Orbs()[0] != stays {
		t.Fatalf("registry kept %d orbs", r.Len())
	}
}

func TestNewOrbSizing(t *testing.T) {
	now := t0
	speed := 400.0
	normal := newOrb(OrbSpec{X: 100, Variant: object.NormalShape{
		Shape: object.ShapeOf(object.ShapeStar),
		Color: object.BasePalette()[0],
	}}, testField, speed, now)

	if normal.Radius < 8 || normal.Radius > 18 {
		t.Errorf("normal radius = %.1f", normal.Radius)
	}
	if normal.VY != speed*0.9 {
		t.Errorf("normal vy = %.1f, want %.1f", normal.VY, speed*0.9)
	}
	if normal.Y != -2*normal.Radius {
		t.Errorf("normal y = %.1f, want %.1f", normal.Y, -2*normal.Radius)
	}
	if normal.Beating {
		t.Error("normal orb beating")
	}

	golden := newOrb(OrbSpec{X: 100, Variant: object.GoldenStar{}}, testField, speed, now)
	if golden.Radius < 20 || golden.Radius > 30 || !golden.Beating {
		t.Errorf("golden = %+v", golden)
	}
	if golden.VY != speed*config.GoldenSpeed {
		t.Errorf("golden vy = %.1f", golden.VY)
	}

	fast := newOrb(OrbSpec{Variant: object.NormalShape{Shape: object.ShapeOf(object.ShapeStar)}}, testField, 5000, now)
	if fast.VY != config.MaxOrbSpeed {
		t.Errorf("capped vy = %.1f, want %.1f", fast.VY, float64(config.MaxOrbSpeed))
	}
}

func TestDifficultyCurves(t *testing.T) {
	if got := spawnDensity(0); got != config.OrbsMin {
		t.Errorf("density at start = %d", got)
	}
	if got := spawnDensity(time.Hour); got != config.OrbsMax {
		t.Errorf("density late = %d", got)
	}
	if got := spawnInterval(0, false); got != config.SpawnIntervalBase {
		t.Errorf("interval at start = %v", got)
	}
	if got := spawnInterval(time.Hour, false); got != config.SpawnIntervalMin {
		t.Errorf("interval late = %v", got)
	}
	if got, want := spawnInterval(0, true), time.Duration(float64(config.SpawnIntervalBase)*config.SlowTimeSpawnFactor); got != want {
		t.Errorf("slow interval = %v, want %v", got, want)
	}
	early, late := baseSpeed(testField, 0), baseSpeed(testField, time.Hour)
	if early < config.BaseSpeedFloor || late <= early {
		t.Errorf("base speed early=%.1f late=%.1f", early, late)
	}
	if want := testField.Height * config.BaseSpeedHeight * config.GameSpeedMax; late != want {
		t.Errorf("base speed cap = %.1f, want %.1f", late, want)
	}
}
