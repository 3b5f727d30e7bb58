package models

import "time"

// ElementID identifies a transient element on the stage
type ElementID uint64

// WindLine is one streak in a linear gust
type WindLine struct {
	ID       ElementID
	Width    float64       // px, 50-200
	Top      float64       // percent of scene height
	Duration time.Duration // animation length
	Delay    time.Duration // animation start offset
}

// Lifetime is how long the line stays on stage: its animation finishes at delay+duration
func (l WindLine) Lifetime() time.Duration {
	return l.Delay + l.Duration
}

// WindSwirl is one vortex particle
type WindSwirl struct {
	ID       ElementID
	Top      float64 // percent of scene height
	Duration time.Duration
}

// Lifetime is how long the swirl stays on stage
func (s WindSwirl) Lifetime() time.Duration {
	return s.Duration
}

// GustKind distinguishes the two wind effects
type GustKind string

const (
	GustLinear GustKind = "linear"
	GustSwirl  GustKind = "swirl"
)

// Gust is one batch of wind elements produced by a single invocation
type Gust struct {
	Kind   GustKind
	Base   float64 // shared base top for linear gusts (percent)
	Lines  []WindLine
	Swirls []WindSwirl
	At     time.Duration // scene time the gust was created
}

// Size returns the number of elements in the gust
func (g Gust) Size() int {
	return len(g.Lines) + len(g.Swirls)
}
