// Package garden lays out the background flower patches.
//
// Horizontal coverage and per-patch depth are drawn independently: positions
// come from an evenly spaced, jittered and shuffled list so the garden never
// clusters, while each patch's depth drives its size, blur, brightness and
// stacking order.
package garden

import (
	"math"
	"sync"
	"time"

	"github.com/ngmaloney/wind-garden/internal/models"
	"github.com/ngmaloney/wind-garden/internal/random"
)

// Horizontal range covered by the garden, in percent. It overshoots both
// edges so patches bleed off screen.
const (
	MinLeft = -10.0
	Span    = 120.0
)

const (
	maxZIndex     = 10
	minSwaySecs   = 4.0
	swaySecsRange = 4.0
	minWidth      = 30.0
	widthRange    = 30.0
)

// Options controls the garden layout
type Options struct {
	Count    int
	Jitter   float64 // +/- percent per position
	Textures []string
}

// BasePositions returns n evenly spaced left offsets across the garden range
func BasePositions(n int) []float64 {
	positions := make([]float64, n)
	for i := range positions {
		positions[i] = float64(i)/float64(n)*Span + MinLeft
	}
	return positions
}

// Positions jitters the base positions and shuffles them so creation order
// (and with it z-order) carries no spatial pattern
func Positions(src random.Source, n int, jitter float64) []float64 {
	positions := BasePositions(n)
	for i := range positions {
		positions[i] += random.Range(src, -jitter, jitter)
	}

	for i := len(positions) - 1; i > 0; i-- {
		j := random.Intn(src, i+1)
		positions[i], positions[j] = positions[j], positions[i]
	}
	return positions
}

// PatchFromDepth derives every depth-dependent field of a patch.
// Closer patches are larger, brighter, sharper, more opaque, sway more and
// sit lower in the scene.
func PatchFromDepth(depth float64) models.FlowerPatch {
	z := int(math.Floor(depth*10)) + 1
	if z > maxZIndex {
		z = maxZIndex
	}

	return models.FlowerPatch{
		Depth:        depth,
		ZIndex:       z,
		Height:       30 + depth*30,
		Brightness:   0.6 + depth*0.6,
		Blur:         (1 - depth) * 2,
		SwayAmount:   0.5 + depth*1,
		FinalOpacity: 0.8 + depth*0.2,
		Bottom:       depth*-15 - 5,
	}
}

// Build creates the garden patches. Position draws happen first, then each
// patch draws texture, depth, width and sway duration in that order.
func Build(src random.Source, opts Options) []models.FlowerPatch {
	if opts.Count <= 0 || len(opts.Textures) == 0 {
		return nil
	}

	positions := Positions(src, opts.Count, opts.Jitter)
	patches := make([]models.FlowerPatch, opts.Count)

	for i := range patches {
		texture := opts.Textures[random.Intn(src, len(opts.Textures))]

		p := PatchFromDepth(src.Float64())
		p.Index = i
		p.Texture = texture
		p.Left = positions[i]
		p.Width = minWidth + random.Range(src, 0, widthRange)
		p.SwayDuration = time.Duration((minSwaySecs + random.Range(src, 0, swaySecsRange)) * float64(time.Second))

		patches[i] = p
	}

	return patches
}

// Builder builds the garden on first use and hands out the same patches afterwards
type Builder struct {
	once    sync.Once
	src     random.Source
	opts    Options
	patches []models.FlowerPatch
}

// NewBuilder creates a one-shot garden builder
func NewBuilder(src random.Source, opts Options) *Builder {
	return &Builder{src: src, opts: opts}
}

// Patches returns the garden, building it on the first call
func (b *Builder) Patches() []models.FlowerPatch {
	b.once.Do(func() {
		b.patches = Build(b.src, b.opts)
	})
	return b.patches
}
