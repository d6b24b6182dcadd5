package loop

import (
	"sort"
	"testing"
	"time"

	"github.com/tomz197/coloroid/internal/object"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func names(colors []object.ColorEntry) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Name
	}
	sort.Strings(out)
	return out
}

func TestPaletteResetUsesBaseOrder(t *testing.T) {
	p := NewPalette(NewSequenceSource(0.5), t0, 30*time.Second)

	base := object.BasePalette()
	got := p.Colors()
	for i := range base {
		if got[i] != base[i] {
			t.Fatalf("color %d = %q, want %q", i, got[i].Name, base[i].Name)
		}
	}
	if p.CurrentIndex() != 3 {
		t.Errorf("CurrentIndex() = %d, want 3", p.CurrentIndex())
	}
	if p.Next() != base[4] {
		t.Errorf("Next() = %q, want %q", p.Next().Name, base[4].Name)
	}
}

func TestPaletteRotationInvariant(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42, 1337} {
		r := NewRandomSource(seed)
		p := NewPalette(r, t0, 30*time.Second)
		want := names(object.BasePalette())

		for i := 0; i < 200; i++ {
			promoted := p.Next()
			now := p.NextSwapAt()
			if !p.Tick(r, now) {
				t.Fatalf("seed %d rotation %d: Tick at deadline did not rotate", seed, i)
			}
			if p.Current() != promoted {
				t.Fatalf("seed %d rotation %d: current = %q, want previewed %q", seed, i, p.Current().Name, promoted.Name)
			}
			got := names(p.Colors())
			for j := range want {
				if got[j] != want[j] {
					t.Fatalf("seed %d rotation %d: palette %v is not a permutation of %v", seed, i, got, want)
				}
			}
			if !p.NextSwapAt().Equal(now.Add(30 * time.Second)) {
				t.Fatalf("seed %d rotation %d: next swap %v, want %v", seed, i, p.NextSwapAt(), now.Add(30*time.Second))
			}
		}
	}
}

func TestPaletteTickBeforeDeadline(t *testing.T) {
	p := NewPalette(NewSequenceSource(0.1), t0, 30*time.Second)
	before := p.Colors()
	cur := p.Current()

	if p.Tick(NewSequenceSource(0.9), t0.Add(29*time.Second)) {
		t.Fatal("Tick rotated before the swap deadline")
	}
	if p.Current() != cur {
		t.Errorf("current changed to %q", p.Current().Name)
	}
	for i, c := range p.Colors() {
		if c != before[i] {
			t.Fatalf("palette reordered at %d", i)
		}
	}
	if got := p.TimeToSwap(t0.Add(29 * time.Second)); got != time.Second {
		t.Errorf("TimeToSwap = %v, want 1s", got)
	}
	if got := p.TimeToSwap(t0.Add(31 * time.Second)); got != 0 {
		t.Errorf("TimeToSwap past deadline = %v, want 0", got)
	}
}

func TestPaletteBlinking(t *testing.T) {
	p := NewPalette(NewSequenceSource(0), t0, 30*time.Second)

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{at: 20 * time.Second, want: false},
		{at: 27*time.Second + 100*time.Millisecond, want: false},
		{at: 27*time.Second + 300*time.Millisecond, want: true},
		{at: 27*time.Second + 500*time.Millisecond, want: false},
		{at: 29*time.Second + 700*time.Millisecond, want: true},
		{at: 29*time.Second + 900*time.Millisecond, want: false},
		{at: 30 * time.Second, want: false},
	}
	for _, tt := range tests {
		if got := p.Blinking(t0.Add(tt.at)); got != tt.want {
			t.Errorf("Blinking(+%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestPaletteInvalidIndexPanics(t *testing.T) {
	p := NewPalette(NewSequenceSource(0), t0, 30*time.Second)
	p.current = len(p.colors)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range current index")
		}
	}()
	p.Current()
}
