package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

// Palette owns the catchable colors and the current target color.
// The sequence is always a permutation of the base color set.
type Palette struct {
	colors     []object.ColorEntry
	current    int
	nextSwapAt time.Time
	period     time.Duration
}

// NewPalette creates a palette in base order with a random current color.
func NewPalette(r RandomSource, now time.Time, period time.Duration) *Palette {
	p := &Palette{period: period}
	p.Reset(r, now)
	return p
}

// Reset restores base order, picks a random current color and re-arms the swap timer.
func (p *Palette) Reset(r RandomSource, now time.Time) {
	p.colors = object.BasePalette()
	p.current = randIndex(r, len(p.colors))
	p.nextSwapAt = now.Add(p.period)
}

// Tick rotates the palette when the swap time has been reached.
// Returns true if a rotation happened.
func (p *Palette) Tick(r RandomSource, now time.Time) bool {
	if now.Before(p.nextSwapAt) {
		return false
	}
	p.rotate(r)
	p.nextSwapAt = now.Add(p.period)
	return true
}

// rotate promotes the previewed color. The outgoing color is reinserted at a
// random position among the shuffled rest.
func (p *Palette) rotate(r RandomSource) {
	promoted := p.Next()
	outgoing := p.Current()

	rest := make([]object.ColorEntry, 0, len(p.colors))
	rest = append(rest, p.colors[:p.current]...)
	rest = append(rest, p.colors[p.current+1:]...)
	shuffle(r, rest)

	at := randIndex(r, len(rest)+1)
	rest = append(rest, object.ColorEntry{})
	copy(rest[at+1:], rest[at:])
	rest[at] = outgoing

	p.colors = rest
	p.current = -1
	for i, c := range p.colors {
		if c.Name == promoted.Name {
			p.current = i
			break
		}
	}
	p.check()
}

// check panics if the current index does not name a palette entry.
func (p *Palette) check() {
	if p.current < 0 || p.current >= len(p.colors) {
		panic(fmt.Sprintf("palette: current index %d out of range [0,%d)", p.current, len(p.colors)))
	}
}

// Current returns the target color.
func (p *Palette) Current() object.ColorEntry {
	p.check()
	return p.colors[p.current]
}

// Next returns the color that becomes current at the next rotation.
func (p *Palette) Next() object.ColorEntry {
	p.check()
	return p.colors[(p.current+1)%len(p.colors)]
}

// CurrentIndex returns the position of the target color in Colors.
func (p *Palette) CurrentIndex() int {
	p.check()
	return p.current
}

// Colors returns a copy of the ordered color sequence.
func (p *Palette) Colors() []object.ColorEntry {
	out := make([]object.ColorEntry, len(p.colors))
	copy(out, p.colors)
	return out
}

// NextSwapAt returns when the next rotation is due.
func (p *Palette) NextSwapAt() time.Time {
	return p.nextSwapAt
}

// TimeToSwap returns the time left until the next rotation, never negative.
func (p *Palette) TimeToSwap(now time.Time) time.Duration {
	if d := p.nextSwapAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Blinking reports whether the preview of the next color is showing.
// In the last BlinkWindow before a swap the preview alternates every BlinkInterval,
// starting hidden.
func (p *Palette) Blinking(now time.Time) bool {
	left := p.TimeToSwap(now)
	if left <= 0 || left > config.BlinkWindow {
		return false
	}
	phase := (config.BlinkWindow - left) / config.BlinkInterval
	return phase%2 == 1
}

// shift moves the swap deadline by d (used to freeze the timer across a pause).
func (p *Palette) shift(d time.Duration) {
	p.nextSwapAt = p.nextSwapAt.Add(d)
}
