package loop

import (
	"math/rand/v2"
	"time"
)

// RandomSource yields uniform draws in [0, 1). Every stochastic decision in a
// session goes through one, so a scripted source replays a session exactly.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a PCG-backed source. A zero seed picks one from the clock.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SequenceSource replays a fixed list of draws, wrapping around at the end.
// An empty sequence always yields 0.
type SequenceSource struct {
	Values []float64
	pos    int
}

// NewSequenceSource creates a source that replays values in order.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{Values: values}
}

// Float64 returns the next scripted value.
func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

// Draws reports how many values have been consumed.
func (s *SequenceSource) Draws() int {
	return s.pos
}

// randRange returns a uniform value in [lo, hi).
func randRange(r RandomSource, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// randIndex returns a uniform index in [0, n).
func randIndex(r RandomSource, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// shuffle permutes s in place (Fisher-Yates, back to front).
func shuffle[T any](r RandomSource, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := randIndex(r, i+1)
		s[i], s[j] = s[j], s[i]
	}
}
