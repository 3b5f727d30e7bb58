// Package random provides the uniform source every scene producer draws from.
package random

import (
	"math"
	"math/rand/v2"
)

// Source yields uniform values in [0, 1)
type Source interface {
	Float64() float64
}

// Rand is a seeded PCG source. Two sources built from the same seed
// produce the same scene.
type Rand struct {
	r *rand.Rand
}

// New creates a seeded source
func New(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns the next value in [0, 1)
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Streams split one scene seed into independent generators so the garden
// comes out the same however much wind ran before it
const (
	StreamGarden uint64 = iota
	StreamWind
)

// Split derives the seed of one stream from the scene seed. The garden
// stream uses the scene seed itself.
func Split(seed, stream uint64) uint64 {
	return seed ^ stream*0x9e3779b97f4a7c15
}

// Range returns a value uniformly drawn from [lo, hi)
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Intn returns floor(u*n) for one draw u, i.e. an integer in [0, n)
func Intn(src Source, n int) int {
	return int(math.Floor(src.Float64() * float64(n)))
}

// Sequence replays fixed draws cyclically. Used to pin randomized
// parameters in tests.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence creates a source that returns values in order, wrapping around
func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Draws reports how many values have been consumed
func (s *Sequence) Draws() int {
	return s.pos
}
