package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ngmaloney/wind-garden/internal/config"
	"github.com/ngmaloney/wind-garden/internal/garden"
	"github.com/ngmaloney/wind-garden/internal/models"
	"github.com/ngmaloney/wind-garden/internal/random"
	"github.com/ngmaloney/wind-garden/internal/scheduler"
	"github.com/ngmaloney/wind-garden/internal/wind"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8FAB"))

// printStage logs wind elements as they come and go
type printStage struct {
	sched *scheduler.Scheduler
	live  int
}

func (s *printStage) stamp() string {
	return fmt.Sprintf("%7.2fs", s.sched.Now().Seconds())
}

func (s *printStage) AddLine(l models.WindLine) {
	s.live++
	fmt.Printf("%s  + line  #%-3d top %5.1f%%  width %5.1f  for %.2fs after %.2fs\n",
		s.stamp(), l.ID, l.Top, l.Width, l.Duration.Seconds(), l.Delay.Seconds())
}

func (s *printStage) RemoveLine(id models.ElementID) {
	s.live--
	fmt.Printf("%s  - line  #%d\n", s.stamp(), id)
}

func (s *printStage) AddSwirl(sw models.WindSwirl) {
	s.live++
	fmt.Printf("%s  + swirl #%-3d top %5.1f%%  for %.2fs\n", s.stamp(), sw.ID, sw.Top, sw.Duration.Seconds())
}

func (s *printStage) RemoveSwirl(id models.ElementID) {
	s.live--
	fmt.Printf("%s  - swirl #%d\n", s.stamp(), id)
}

// This demo runs the scene headless and prints what it would draw
func main() {
	configPath := flag.String("config", "wind-garden.yaml", "Path to the scene config file")
	seed := flag.Uint64("seed", 1, "Seed for the garden and wind")
	seconds := flag.Int("seconds", 20, "Virtual seconds of wind to simulate")
	hiddenAt := flag.Int("hide-at", -1, "Hide the scene after this many seconds (-1 never)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	patches := garden.Build(random.New(random.Split(*seed, random.StreamGarden)), garden.Options{
		Count:    cfg.PatchCount,
		Jitter:   cfg.PositionJitter,
		Textures: cfg.Textures,
	})
	fmt.Println(headerStyle.Render(fmt.Sprintf("Garden (seed %d, %d patches)", *seed, len(patches))))
	fmt.Println(patchTable(patches))

	sched := scheduler.New()
	stage := &printStage{sched: sched}
	hidden := false
	vis := wind.VisibilityFunc(func() (bool, error) { return hidden, nil })

	gen := wind.NewGenerator(random.New(random.Split(*seed, random.StreamWind)), sched, stage, cfg.SwirlThreshold)
	counts := map[models.GustKind]int{}
	gen.OnGust = func(g models.Gust) {
		counts[g.Kind]++
		fmt.Println(headerStyle.Render(fmt.Sprintf("%7.2fs  %s gust (%d elements)", g.At.Seconds(), g.Kind, g.Size())))
	}

	driver := wind.NewDriver(gen, sched, vis, cfg.GustInterval)
	driver.Start()

	for s := 1; s <= *seconds; s++ {
		if s == *hiddenAt {
			hidden = true
			fmt.Printf("%7.2fs  scene hidden\n", sched.Now().Seconds())
		}
		sched.Advance(time.Second)
	}
	driver.Stop()

	fmt.Printf("\n%d timer firings, %d skipped, %d linear, %d swirl, %d elements still live\n",
		driver.Ticks(), driver.Skipped(), counts[models.GustLinear], counts[models.GustSwirl], stage.live)
}

func patchTable(patches []models.FlowerPatch) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "texture", "depth", "z", "left %", "width %", "height", "bright", "blur", "sway", "period", "opacity", "bottom %")

	for _, p := range patches {
		t.Row(
			strconv.Itoa(p.Index),
			p.Texture,
			fmt.Sprintf("%.2f", p.Depth),
			strconv.Itoa(p.ZIndex),
			fmt.Sprintf("%.1f", p.Left),
			fmt.Sprintf("%.1f", p.Width),
			fmt.Sprintf("%.1f", p.Height),
			fmt.Sprintf("%.2f", p.Brightness),
			fmt.Sprintf("%.2f", p.Blur),
			fmt.Sprintf("%.2f", p.SwayAmount),
			p.SwayDuration.Round(10*time.Millisecond).String(),
			fmt.Sprintf("%.2f", p.FinalOpacity),
			fmt.Sprintf("%.1f", p.Bottom),
		)
	}
	return t.Render()
}
