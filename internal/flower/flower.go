// Package flower implements the interactive flower: a clickable element
// that starts the music and reveals the card.
package flower

import (
	"errors"
	"log"
	"time"

	"github.com/ngmaloney/wind-garden/internal/scheduler"
)

// ErrAutoplayBlocked is returned by a Player that refuses to start before
// the user has interacted with the scene
var ErrAutoplayBlocked = errors.New("autoplay blocked until user interaction")

// Player is the looping music track behind the flower
type Player interface {
	Play() error
	Paused() bool
}

// State of the flower itself
type State int

const (
	StateIdle     State = iota // Hint shown, card hidden
	StateRevealed              // Clicked at least once
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRevealed:
		return "revealed"
	}
	return "unknown"
}

// AudioState tracks playback as seen by the flower
type AudioState int

const (
	AudioAttempting AudioState = iota // Autoplay requested, no answer yet
	AudioPlaying
	AudioBlocked // Autoplay rejected, waiting for a click
)

func (s AudioState) String() string {
	switch s {
	case AudioAttempting:
		return "attempting"
	case AudioPlaying:
		return "playing"
	case AudioBlocked:
		return "blocked"
	}
	return "unknown"
}

// Flower wires the music player, the card and the hint together
type Flower struct {
	player Player
	sched  *scheduler.Scheduler
	fade   time.Duration

	Card *Card
	Hint *Hint

	state       State
	audio       AudioState
	setup       bool
	unlockArmed bool
	clicks      int

	// OnReveal, when set, is called on every flower click
	OnReveal func()
}

// New creates the flower. fade is how long the hint takes to fade out
// before it is removed.
func New(player Player, sched *scheduler.Scheduler, card *Card, fade time.Duration) *Flower {
	return &Flower{
		player: player,
		sched:  sched,
		fade:   fade,
		Card:   card,
		Hint:   NewHint(),
	}
}

// Setup tries to start the music right away and arms the one-time
// document click that retries playback. Only the first call has any effect.
func (f *Flower) Setup() {
	if f.setup {
		return
	}
	f.setup = true
	f.unlockArmed = true

	if err := f.player.Play(); err != nil {
		if errors.Is(err, ErrAutoplayBlocked) {
			log.Printf("[flower] Autoplay blocked (%v). Waiting for interaction.", err)
		} else {
			log.Printf("[flower] Playback failed: %v. Waiting for interaction.", err)
		}
		f.audio = AudioBlocked
		return
	}
	f.audio = AudioPlaying
}

// HandleClick delivers a click anywhere in the scene. A click on the
// flower reaches the flower first and then bubbles to the document.
func (f *Flower) HandleClick(onFlower bool) {
	if onFlower {
		f.Click()
	}
	f.DocumentClick()
}

// DocumentClick is the one-time listener for the first click anywhere. It
// resumes the music if it is paused and then disarms itself.
func (f *Flower) DocumentClick() {
	if !f.unlockArmed {
		return
	}
	f.unlockArmed = false

	if f.player.Paused() {
		f.play()
	}
}

// Click handles a click on the flower: resume the music, show and
// re-trigger the card, and fade out the hint.
func (f *Flower) Click() {
	f.clicks++

	if f.player.Paused() {
		f.play()
	}

	f.Card.Show()
	f.Card.Reveal()
	f.state = StateRevealed

	if !f.Hint.Fading && !f.Hint.Removed {
		f.Hint.Opacity = 0
		f.Hint.Fading = true
		f.Hint.FadeStart = f.sched.Now()
		f.sched.After(f.fade, func() { f.Hint.Removed = true })
	}

	if f.OnReveal != nil {
		f.OnReveal()
	}
}

func (f *Flower) play() {
	if err := f.player.Play(); err != nil {
		log.Printf("[flower] Playback failed: %v", err)
		if f.audio != AudioPlaying {
			f.audio = AudioBlocked
		}
		return
	}
	f.audio = AudioPlaying
}

// HintOpacity is the rendered opacity of the hint: the fade from 1 to its
// target opacity runs linearly over the fade duration
func (f *Flower) HintOpacity() float64 {
	h := f.Hint
	switch {
	case h.Removed:
		return 0
	case !h.Fading:
		return h.Opacity
	case f.fade <= 0:
		return h.Opacity
	}

	done := float64(f.sched.Now()-h.FadeStart) / float64(f.fade)
	if done >= 1 {
		return h.Opacity
	}
	return 1 - done*(1-h.Opacity)
}

// State returns the flower state
func (f *Flower) State() State {
	return f.state
}

// Audio returns the playback state
func (f *Flower) Audio() AudioState {
	return f.audio
}

// UnlockArmed reports whether the first-click listener is still waiting
func (f *Flower) UnlockArmed() bool {
	return f.unlockArmed
}

// Clicks is the number of clicks on the flower
func (f *Flower) Clicks() int {
	return f.clicks
}
