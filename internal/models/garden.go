package models

import "time"

// FlowerPatch is one background flower element. Every visual field except
// Texture, Left, Width and SwayDuration derives from Depth.
type FlowerPatch struct {
	Index        int
	Texture      string
	Depth        float64       // 0 = far back, 1 = closest
	ZIndex       int           // 1-10
	Height       float64       // vh
	Brightness   float64       // filter multiplier
	Blur         float64       // px
	Left         float64       // percent, may fall outside 0-100
	Width        float64       // percent
	SwayAmount   float64       // degrees
	SwayDuration time.Duration // one sway cycle
	FinalOpacity float64
	Bottom       float64 // percent, negative sinks below the edge
}

// SwayStart is the leftmost rotation of the sway animation
func (p FlowerPatch) SwayStart() float64 {
	return -p.SwayAmount
}

// SwayEnd is the rightmost rotation of the sway animation
func (p FlowerPatch) SwayEnd() float64 {
	return p.SwayAmount
}
