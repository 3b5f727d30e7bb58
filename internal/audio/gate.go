package audio

import (
	"sync"

	"github.com/ngmaloney/wind-garden/internal/flower"
)

// ErrAutoplayBlocked is returned by a Gate until the user has interacted
var ErrAutoplayBlocked = flower.ErrAutoplayBlocked

// Track is anything that can be started and asked whether it is paused
type Track interface {
	Play() error
	Paused() bool
}

// Gate refuses to start a track until a user gesture has been seen,
// the same policy browsers apply to autoplaying media.
type Gate struct {
	mu       sync.Mutex
	track    Track
	gestured bool
}

// NewGate wraps track behind an autoplay gate
func NewGate(track Track) *Gate {
	return &Gate{track: track}
}

// Gesture records a user interaction, unlocking playback for good
func (g *Gate) Gesture() {
	g.mu.Lock()
	g.gestured = true
	g.mu.Unlock()
}

func (g *Gate) Play() error {
	g.mu.Lock()
	gestured := g.gestured
	g.mu.Unlock()

	if !gestured {
		return ErrAutoplayBlocked
	}
	return g.track.Play()
}

func (g *Gate) Paused() bool {
	return g.track.Paused()
}

// Silent is a track that plays nothing. Used when audio is muted or no
// output device is wanted.
type Silent struct {
	mu      sync.Mutex
	playing bool
}

func (s *Silent) Play() error {
	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
	return nil
}

func (s *Silent) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.playing
}
