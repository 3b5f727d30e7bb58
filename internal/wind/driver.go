package wind

import (
	"time"

	"github.com/ngmaloney/wind-garden/internal/scheduler"
)

// Driver fires a gust on a fixed period while the scene is visible
type Driver struct {
	gen      *Generator
	sched    *scheduler.Scheduler
	vis      Visibility
	interval time.Duration

	timer   scheduler.ID
	running bool
	ticks   int
	skipped int
}

// NewDriver creates a gust driver. vis may be nil, which counts as always visible.
func NewDriver(gen *Generator, sched *scheduler.Scheduler, vis Visibility, interval time.Duration) *Driver {
	return &Driver{
		gen:      gen,
		sched:    sched,
		vis:      vis,
		interval: interval,
	}
}

// Start fires the first gust immediately and then registers the repeating
// timer. Calling Start on a running driver does nothing.
func (d *Driver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.gen.Gust()
	d.timer = d.sched.Every(d.interval, d.tick)
}

// Stop cancels the repeating timer. Elements already on stage still
// expire on their own schedule.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.sched.Cancel(d.timer)
	d.running = false
}

// Running reports whether the timer is registered
func (d *Driver) Running() bool {
	return d.running
}

// Ticks is the number of timer firings so far, including skipped ones
func (d *Driver) Ticks() int {
	return d.ticks
}

// Skipped is the number of firings that produced nothing because the scene was hidden
func (d *Driver) Skipped() int {
	return d.skipped
}

func (d *Driver) tick() {
	d.ticks++
	if isHidden(d.vis) {
		d.skipped++
		return
	}
	d.gen.Gust()
}
