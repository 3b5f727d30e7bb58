// Package audio plays the garden's looping music track.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupportedFormat is returned for tracks that are neither mp3 nor wav
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// speakerBuffer is how much audio the speaker buffers ahead
const speakerBuffer = 100 * time.Millisecond

// Player loops one track at a fixed volume. The track is decoded and the
// speaker initialised on the first Play, so a missing file or audio device
// surfaces as a Play error instead of failing at startup.
type Player struct {
	mu     sync.Mutex
	path   string
	volume float64

	stream beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	ready  bool

	// Hooks for tests; default to the real decoders and speaker
	open        func(path string) (beep.StreamSeekCloser, beep.Format, error)
	initSpeaker func(sr beep.SampleRate, bufferSize int) error
	play        func(s beep.Streamer)
	lock        func()
	unlock      func()
}

// NewPlayer creates a looping player for the track at path. volume is a
// linear gain between 0 and 1.
func NewPlayer(path string, volume float64) *Player {
	return &Player{
		path:        path,
		volume:      volume,
		open:        Open,
		initSpeaker: speaker.Init,
		play:        func(s beep.Streamer) { speaker.Play(s) },
		lock:        speaker.Lock,
		unlock:      speaker.Unlock,
	}
}

// Play starts the track, or resumes it if it was paused
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl != nil {
		p.lock()
		p.ctrl.Paused = false
		p.unlock()
		return nil
	}

	stream, format, err := p.open(p.path)
	if err != nil {
		return fmt.Errorf("opening track %s: %w", p.path, err)
	}

	if !p.ready {
		if err := p.initSpeaker(format.SampleRate, format.SampleRate.N(speakerBuffer)); err != nil {
			stream.Close()
			return fmt.Errorf("initializing speaker: %w", err)
		}
		p.ready = true
	}

	p.stream = stream
	p.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, stream), Paused: false}
	p.play(Gain(p.ctrl, p.volume))
	return nil
}

// Pause silences the track, keeping its position
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return
	}
	p.lock()
	p.ctrl.Paused = true
	p.unlock()
}

// Paused reports whether the track is not currently audible
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return true
	}
	p.lock()
	defer p.unlock()
	return p.ctrl.Paused
}

// Close stops playback and releases the decoder
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return nil
	}
	p.lock()
	p.ctrl.Paused = true
	p.unlock()

	err := p.stream.Close()
	p.ctrl = nil
	p.stream = nil
	return err
}

// Gain scales s by a linear volume between 0 and 1
func Gain(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(volume),
	}
}

// Open decodes an mp3 or wav file by extension
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".mp3" && ext != ".wav" {
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	if ext == ".mp3" {
		stream, format, err = mp3.Decode(f)
	} else {
		stream, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return stream, format, nil
}
