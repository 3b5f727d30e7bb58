package flower

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/ngmaloney/wind-garden/internal/scheduler"
)

// mockPlayer rejects the first `blocked` Play calls with err, or with
// ErrAutoplayBlocked when err is nil
type mockPlayer struct {
	blocked int
	err     error
	playing bool
	calls   int
}

func (m *mockPlayer) Play() error {
	m.calls++
	if m.blocked > 0 {
		m.blocked--
		if m.err != nil {
			return m.err
		}
		return fmt.Errorf("host policy: %w", ErrAutoplayBlocked)
	}
	m.playing = true
	return nil
}

func (m *mockPlayer) Paused() bool {
	return !m.playing
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func newTestFlower(p *mockPlayer) (*Flower, *scheduler.Scheduler) {
	sched := scheduler.New()
	return New(p, sched, NewCard(30), 500*time.Millisecond), sched
}

func TestNew(t *testing.T) {
	f, _ := newTestFlower(&mockPlayer{})

	if f.State() != StateIdle {
		t.Errorf("New() state = %v, want idle", f.State())
	}
	if f.Audio() != AudioAttempting {
		t.Errorf("New() audio = %v, want attempting", f.Audio())
	}
	if !f.Hint.Shown() || f.Hint.Opacity != 1 || f.Hint.Text != "Click Me" {
		t.Errorf("New() hint = %+v, want a visible Click Me hint", f.Hint)
	}
	if f.Card.Displayed || f.Card.Visible {
		t.Errorf("New() card = %+v, want hidden", f.Card)
	}
}

func TestSetup_AutoplayAllowed(t *testing.T) {
	p := &mockPlayer{}
	f, _ := newTestFlower(p)

	f.Setup()

	if f.Audio() != AudioPlaying {
		t.Errorf("Audio() = %v, want playing", f.Audio())
	}
	if !f.UnlockArmed() {
		t.Error("UnlockArmed() = false, want the first-click listener armed")
	}
}

func TestSetup_OtherFailureIsNotAutoplay(t *testing.T) {
	buf := captureLog(t)
	p := &mockPlayer{blocked: 1, err: errors.New("opening track music.mp3: no such file")}
	f, _ := newTestFlower(p)

	f.Setup()

	if f.Audio() != AudioBlocked {
		t.Errorf("Audio() = %v, want blocked", f.Audio())
	}
	if strings.Contains(buf.String(), "Autoplay blocked") {
		t.Errorf("log = %q, want a playback failure, not an autoplay message", buf.String())
	}
	if !strings.Contains(buf.String(), "Playback failed") {
		t.Errorf("log = %q, want a playback failure message", buf.String())
	}
}

func TestSetup_AutoplayBlockedIsLogged(t *testing.T) {
	buf := captureLog(t)
	p := &mockPlayer{blocked: 1}
	f, _ := newTestFlower(p)

	f.Setup()

	if f.Audio() != AudioBlocked {
		t.Errorf("Audio() = %v, want blocked", f.Audio())
	}
	if !strings.Contains(buf.String(), "Autoplay blocked") {
		t.Errorf("log = %q, want an autoplay message", buf.String())
	}
	if f.State() != StateIdle {
		t.Errorf("State() = %v, want idle", f.State())
	}
}

func TestSetup_Once(t *testing.T) {
	p := &mockPlayer{blocked: 1}
	f, _ := newTestFlower(p)
	captureLog(t)

	f.Setup()
	f.Setup()

	if p.calls != 1 {
		t.Errorf("Play() called %d times, want 1", p.calls)
	}
}

func TestDocumentClick_UnlocksOnce(t *testing.T) {
	captureLog(t)
	p := &mockPlayer{blocked: 1}
	f, _ := newTestFlower(p)
	f.Setup()

	f.DocumentClick()
	if f.Audio() != AudioPlaying {
		t.Errorf("Audio() after first click = %v, want playing", f.Audio())
	}
	if f.UnlockArmed() {
		t.Error("listener should disarm after the first click")
	}

	// A later pause is not picked up by the consumed listener
	p.playing = false
	f.DocumentClick()
	if p.calls != 2 {
		t.Errorf("Play() called %d times, want 2", p.calls)
	}
}

func TestDocumentClick_AlreadyPlaying(t *testing.T) {
	p := &mockPlayer{}
	f, _ := newTestFlower(p)
	f.Setup()

	f.DocumentClick()

	if p.calls != 1 {
		t.Errorf("Play() called %d times, want 1 (no retry while playing)", p.calls)
	}
}

func TestClick_RevealsCard(t *testing.T) {
	p := &mockPlayer{}
	f, sched := newTestFlower(p)
	f.Setup()

	f.Click()

	if f.State() != StateRevealed {
		t.Errorf("State() = %v, want revealed", f.State())
	}
	if !f.Card.Displayed || !f.Card.Centered {
		t.Errorf("card container = %+v, want displayed and centered", f.Card)
	}
	if !f.Card.Visible || f.Card.Generation != 1 {
		t.Errorf("card = %+v, want visible generation 1", f.Card)
	}
	if f.Hint.Opacity != 0 {
		t.Errorf("hint opacity = %v, want 0", f.Hint.Opacity)
	}

	sched.Advance(499 * time.Millisecond)
	if !f.Hint.Shown() {
		t.Error("hint removed before the fade finished")
	}
	sched.Advance(time.Millisecond)
	if f.Hint.Shown() {
		t.Error("hint still shown 500ms after the click")
	}
}

func TestClick_RepeatedClicks(t *testing.T) {
	p := &mockPlayer{}
	f, sched := newTestFlower(p)
	f.Setup()
	reveals := 0
	f.OnReveal = func() { reveals++ }

	f.Click()
	sched.Advance(200 * time.Millisecond)
	f.Click()
	f.Click()

	if sched.Pending() != 1 {
		t.Errorf("Pending() = %d, want a single hint removal", sched.Pending())
	}
	sched.Advance(300 * time.Millisecond)
	if f.Hint.Shown() {
		t.Error("hint should be removed 500ms after the first click")
	}

	f.Click()
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d after hint removal, want 0", sched.Pending())
	}
	if f.Card.Generation != 4 {
		t.Errorf("card Generation = %d, want 4 restarts", f.Card.Generation)
	}
	if reveals != 4 || f.Clicks() != 4 {
		t.Errorf("reveals = %d, clicks = %d, want 4", reveals, f.Clicks())
	}
}

func TestClick_ResumesBlockedAudio(t *testing.T) {
	captureLog(t)
	p := &mockPlayer{blocked: 1}
	f, _ := newTestFlower(p)
	f.Setup()

	f.HandleClick(true)

	if f.Audio() != AudioPlaying {
		t.Errorf("Audio() = %v, want playing", f.Audio())
	}
	// Flower handler played; the bubbled document click finds it playing
	if p.calls != 2 {
		t.Errorf("Play() called %d times, want 2", p.calls)
	}
	if f.UnlockArmed() {
		t.Error("bubbled click should consume the document listener")
	}
}

func TestClick_PlaybackStaysPlaying(t *testing.T) {
	captureLog(t)
	p := &mockPlayer{}
	f, _ := newTestFlower(p)
	f.Setup()

	// Paused externally and the retry fails: playback never re-blocks
	p.playing = false
	p.blocked = 1
	f.Click()

	if f.Audio() != AudioPlaying {
		t.Errorf("Audio() = %v, want playing", f.Audio())
	}
}

func TestHandleClick_OutsideFlower(t *testing.T) {
	captureLog(t)
	p := &mockPlayer{blocked: 1}
	f, _ := newTestFlower(p)
	f.Setup()

	f.HandleClick(false)

	if f.State() != StateIdle {
		t.Errorf("State() = %v, want idle", f.State())
	}
	if f.Audio() != AudioPlaying {
		t.Errorf("Audio() = %v, want playing after the unlock click", f.Audio())
	}
	if f.Card.Displayed {
		t.Error("card shown by a click outside the flower")
	}
}

func TestStateStrings(t *testing.T) {
	if StateRevealed.String() != "revealed" || State(9).String() != "unknown" {
		t.Errorf("State strings = %q, %q", StateRevealed.String(), State(9).String())
	}
	if AudioBlocked.String() != "blocked" || AudioState(9).String() != "unknown" {
		t.Errorf("AudioState strings = %q, %q", AudioBlocked.String(), AudioState(9).String())
	}
}

func TestHintOpacity_Fades(t *testing.T) {
	f, sched := newTestFlower(&mockPlayer{})
	f.Setup()

	if f.HintOpacity() != 1 {
		t.Errorf("HintOpacity() before click = %v, want 1", f.HintOpacity())
	}

	sched.Advance(time.Second)
	f.Click()
	if f.HintOpacity() != 1 {
		t.Errorf("HintOpacity() at click = %v, want 1", f.HintOpacity())
	}

	sched.Advance(250 * time.Millisecond)
	if got := f.HintOpacity(); got != 0.5 {
		t.Errorf("HintOpacity() halfway = %v, want 0.5", got)
	}

	sched.Advance(250 * time.Millisecond)
	if got := f.HintOpacity(); got != 0 {
		t.Errorf("HintOpacity() after fade = %v, want 0", got)
	}
}
