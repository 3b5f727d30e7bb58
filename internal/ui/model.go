package ui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/wind-garden/internal/audio"
	"github.com/ngmaloney/wind-garden/internal/config"
	"github.com/ngmaloney/wind-garden/internal/database"
	"github.com/ngmaloney/wind-garden/internal/flower"
	"github.com/ngmaloney/wind-garden/internal/garden"
	"github.com/ngmaloney/wind-garden/internal/models"
	"github.com/ngmaloney/wind-garden/internal/random"
	"github.com/ngmaloney/wind-garden/internal/scheduler"
	"github.com/ngmaloney/wind-garden/internal/wind"
)

// gesturer is implemented by players that wait for a user gesture
type gesturer interface {
	Gesture()
}

// Options configures a new scene model
type Options struct {
	Config  *config.SceneConfig
	Seed    uint64
	Player  flower.Player     // defaults to a silent track
	Journal *database.Journal // optional
	Session *models.Session   // journal session, required with Journal
}

// Model represents the application's state
type Model struct {
	cfg    *config.SceneConfig
	width  int
	height int

	sched   *scheduler.Scheduler
	scene   *Scene
	driver  *wind.Driver
	patches []models.FlowerPatch
	flower  *flower.Flower
	player  flower.Player

	journal *database.Journal
	session *models.Session

	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	lastFrame time.Time
}

// NewModel builds the scene: the garden is laid out, the first gust is
// released and the flower tries to start the music.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	player := opts.Player
	if player == nil {
		player = &audio.Silent{}
	}

	sched := scheduler.New()
	scene := newScene(sched)

	builder := garden.NewBuilder(random.New(random.Split(opts.Seed, random.StreamGarden)), garden.Options{
		Count:    cfg.PatchCount,
		Jitter:   cfg.PositionJitter,
		Textures: cfg.Textures,
	})

	gen := wind.NewGenerator(random.New(random.Split(opts.Seed, random.StreamWind)), sched, scene, cfg.SwirlThreshold)
	gen.OnGust = func(g models.Gust) {
		scene.pendingGusts = append(scene.pendingGusts, g)
	}
	driver := wind.NewDriver(gen, sched, scene, cfg.GustInterval)

	fl := flower.New(player, sched, flower.NewCard(cfg.FrameRate), cfg.HintFade)
	fl.OnReveal = func() { scene.revealed++ }

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"↓", "⇣", "↓", " "},
		FPS:    time.Second / 4,
	}

	driver.Start()
	patches := builder.Patches()
	fl.Setup()

	return Model{
		cfg:     cfg,
		sched:   sched,
		scene:   scene,
		driver:  driver,
		patches: patches,
		flower:  fl,
		player:  player,
		journal: opts.Journal,
		session: opts.Session,
		spinner: s,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the frame loop and the hint arrow animation
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameTick(m.cfg.FrameRate), m.spinner.Tick)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		var elapsed time.Duration
		if !m.lastFrame.IsZero() && now.After(m.lastFrame) {
			elapsed = now.Sub(m.lastFrame)
		}
		m.lastFrame = now

		m.sched.Advance(elapsed)
		m.flower.Card.Step()

		cmds := m.journalCmds()
		cmds = append(cmds, frameTick(m.cfg.FrameRate))
		return m, tea.Batch(cmds...)

	// Terminal focus stands in for page visibility
	case tea.FocusMsg:
		m.scene.hidden = false
		return m, nil

	case tea.BlurMsg:
		m.scene.hidden = true
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(m.onFlower(msg.X, msg.Y))
			return m, tea.Batch(m.journalCmds()...)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.driver.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Click):
			m.click(true)
			return m, tea.Batch(m.journalCmds()...)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case journalErrMsg:
		log.Printf("[journal] %v", msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// click delivers a user click to the scene
func (m Model) click(onFlower bool) {
	if g, ok := m.player.(gesturer); ok {
		g.Gesture()
	}
	m.flower.HandleClick(onFlower)
}

// onFlower hit-tests a mouse position against the special flower
func (m Model) onFlower(x, y int) bool {
	fx, fy := flowerAnchor(m.width, m.height-1)
	if dx := x - fx; dx >= -1 && dx <= 1 && y >= fy && y <= m.height-2 {
		return true
	}
	if m.flower.Hint.Removed {
		return false
	}

	// The hint is part of the flower until it is removed
	w := lipgloss.Width(m.flower.Hint.Text)
	left := fx - w/2
	return y >= fy-hintTextRow && y < fy && x >= left && x < left+w
}

// journalCmds turns gusts and reveals since the last call into journal writes
func (m Model) journalCmds() []tea.Cmd {
	gusts := m.scene.drainGusts()
	revealed := m.scene.revealed > 0
	m.scene.revealed = 0

	if m.journal == nil || m.session == nil {
		return nil
	}

	var cmds []tea.Cmd
	for _, g := range gusts {
		cmds = append(cmds, recordGust(m.journal, m.session.ID, g))
	}
	if revealed {
		cmds = append(cmds, markRevealed(m.journal, m.session.ID, time.Now()))
	}
	return cmds
}

// Flower exposes the interactive flower
func (m Model) Flower() *flower.Flower {
	return m.flower
}

// Patches returns the garden layout
func (m Model) Patches() []models.FlowerPatch {
	return m.patches
}
