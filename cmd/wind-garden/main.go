package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/wind-garden/internal/audio"
	"github.com/ngmaloney/wind-garden/internal/config"
	"github.com/ngmaloney/wind-garden/internal/database"
	"github.com/ngmaloney/wind-garden/internal/flower"
	"github.com/ngmaloney/wind-garden/internal/models"
	"github.com/ngmaloney/wind-garden/internal/ui"
)

func main() {
	configPath := flag.String("config", "wind-garden.yaml", "Path to the scene config file")
	seed := flag.Uint64("seed", 0, "Seed for the garden and wind (0 picks one at random)")
	replay := flag.Bool("replay", false, "Replay the garden of the last recorded session")
	logPath := flag.String("log", "", "Write logs to this file")
	mute := flag.Bool("mute", false, "Run without music")
	flag.Parse()

	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "wind-garden")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	var journal *database.Journal
	if cfg.JournalEnabled() {
		path := cfg.Database
		if path == "" {
			path = database.DBPath()
		}
		journal, err = database.OpenJournal(path)
		if err != nil {
			log.Printf("[journal] disabled: %v", err)
			journal = nil
		} else {
			defer journal.Close()
		}
	}

	if *replay {
		if journal == nil {
			fmt.Println("Error: --replay requires the session journal.")
			os.Exit(1)
		}
		last, err := journal.LastSession()
		if errors.Is(err, database.ErrNoSession) {
			fmt.Println("Error: no recorded session to replay.")
			os.Exit(1)
		}
		if err != nil {
			fmt.Printf("Error reading last session: %v\n", err)
			os.Exit(1)
		}
		*seed = last.Seed
	}
	if *seed == 0 {
		*seed = rand.Uint64()
	}

	var session *models.Session
	if journal != nil {
		session, err = journal.StartSession(*seed, time.Now())
		if err != nil {
			log.Printf("[journal] disabled: %v", err)
			journal = nil
		}
	}

	player, closePlayer := newPlayer(cfg, *mute)
	defer closePlayer()

	m := ui.NewModel(ui.Options{
		Config:  cfg,
		Seed:    *seed,
		Player:  player,
		Journal: journal,
		Session: session,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

// newPlayer picks the music track for the flower. With autoplay disabled
// the track waits behind a gate until the first click.
func newPlayer(cfg *config.SceneConfig, mute bool) (flower.Player, func()) {
	if mute {
		return &audio.Silent{}, func() {}
	}

	track := audio.NewPlayer(cfg.Music, cfg.Volume)
	closeTrack := func() {
		if err := track.Close(); err != nil {
			log.Printf("[audio] close: %v", err)
		}
	}
	if !cfg.AutoplayEnabled() {
		return audio.NewGate(track), closeTrack
	}
	return track, closeTrack
}
