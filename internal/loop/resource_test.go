package loop

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

func TestResourceDrain(t *testing.T) {
	rc := NewResourceController(200, 200)
	p := object.NewPaddle(testField)

	if !rc.Engage(&p) {
		t.Fatal("Engage refused")
	}
	rc.Tick(&p, 1)
	if math.Abs(rc.Mana()-180) > 1e-9 {
		t.Fatalf("mana after 1s = %.3f, want 180", rc.Mana())
	}
	if p.ShrinkCurrent >= 1 {
		t.Fatalf("paddle did not start shrinking: %.3f", p.ShrinkCurrent)
	}
}

func TestResourceShrinkSettles(t *testing.T) {
	rc := NewResourceController(200, 200)
	p := object.NewPaddle(testField)
	rc.Engage(&p)
	for i := 0; i < 120; i++ {
		rc.Tick(&p, frame.Seconds())
	}
	if p.ShrinkCurrent != config.ShrinkTarget {
		t.Fatalf("width factor = %.4f, want snapped to %.2f", p.ShrinkCurrent, config.ShrinkTarget)
	}
	if !rc.Release(&p) {
		t.Fatal("release of a full shrink should report a bounce")
	}
	for i := 0; i < 120; i++ {
		rc.Tick(&p, frame.Seconds())
	}
	if p.ShrinkCurrent != 1 {
		t.Fatalf("width factor = %.4f, want 1", p.ShrinkCurrent)
	}
}

func TestResourceReleaseEarlyNoBounce(t *testing.T) {
	rc := NewResourceController(200, 200)
	p := object.NewPaddle(testField)
	rc.Engage(&p)
	rc.Tick(&p, frame.Seconds())
	if rc.Release(&p) {
		t.Fatal("partial shrink reported a bounce")
	}
}

func TestResourceClamp(t *testing.T) {
	rc := NewResourceController(200, 500)
	if rc.Mana() != 200 {
		t.Fatalf("start mana = %.1f, want clamped 200", rc.Mana())
	}
	rc.Gain(50)
	if rc.Mana() != 200 || rc.Fraction() != 1 {
		t.Fatalf("mana = %.1f fraction = %.2f", rc.Mana(), rc.Fraction())
	}
}

func TestPowerupTimers(t *testing.T) {
	var pt PowerupTimers
	pt.Activate(object.PowerupMagnet, 100*time.Millisecond)
	if !pt.Active(object.PowerupMagnet) || pt.Active(object.PowerupShield) {
		t.Fatal("wrong timers active")
	}
	pt.Tick(60 * time.Millisecond)
	if pt.Remaining(object.PowerupMagnet) != 40*time.Millisecond {
		t.Fatalf("remaining = %v", pt.Remaining(object.PowerupMagnet))
	}
	pt.Tick(60 * time.Millisecond)
	if pt.Active(object.PowerupMagnet) || pt.Remaining(object.PowerupMagnet) != 0 {
		t.Fatal("timer did not floor at zero")
	}

	pt.Activate(object.PowerupShield, time.Second)
	pt.Activate(object.PowerupShield, 2*time.Second)
	if pt.Remaining(object.PowerupShield) != 2*time.Second {
		t.Fatal("reactivation should reset to the full duration")
	}
	pt.Reset()
	if pt.Active(object.PowerupShield) {
		t.Fatal("Reset left a timer running")
	}
}
