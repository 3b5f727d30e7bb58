package flower

import "time"

// Hint is the "Click Me" label with its arrow icon shown above the flower
type Hint struct {
	Text    string
	Icon    string
	Opacity float64
	Fading  bool
	Removed bool

	FadeStart time.Duration // scene time the fade began
}

// NewHint creates a fully opaque hint
func NewHint() *Hint {
	return &Hint{
		Text:    "Click Me",
		Icon:    "↓",
		Opacity: 1,
	}
}

// Shown reports whether the hint is still attached to the flower
func (h *Hint) Shown() bool {
	return !h.Removed
}
