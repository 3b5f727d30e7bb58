package flower

import "github.com/charmbracelet/harmonica"

// Reveal spring tuning: slightly underdamped so the card overshoots a little
const (
	springFrequency = 6.0
	springDamping   = 0.6
)

// Card is the message card revealed by the special flower. The container
// flags mirror how it is laid out, Visible is the state that drives the
// reveal animation and Progress is that animation's position (0 hidden, 1 open).
type Card struct {
	Displayed  bool // container shown
	Centered   bool // content centered both ways in the container
	Visible    bool
	Generation int // number of times the reveal animation has started

	spring   harmonica.Spring
	progress float64
	velocity float64
}

// NewCard creates a hidden card whose animation is stepped fps times per second
func NewCard(fps int) *Card {
	if fps <= 0 {
		fps = 60
	}
	return &Card{spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping)}
}

// Show displays the card container with its content centered
func (c *Card) Show() {
	c.Displayed = true
	c.Centered = true
}

// Reveal restarts the reveal animation even when the card is already open:
// the visible state is dropped, the animation reset, then visible re-applied.
func (c *Card) Reveal() {
	c.Visible = false
	c.reflow()
	c.Visible = true
	c.Generation++
}

func (c *Card) reflow() {
	c.progress = 0
	c.velocity = 0
}

// Step advances the reveal animation by one frame
func (c *Card) Step() {
	if !c.Visible {
		return
	}
	c.progress, c.velocity = c.spring.Update(c.progress, c.velocity, 1)
}

// Progress returns the animation position, 0 when hidden
func (c *Card) Progress() float64 {
	if !c.Visible {
		return 0
	}
	return c.progress
}
