package ui

import (
	"sort"
	"time"

	"github.com/ngmaloney/wind-garden/internal/models"
	"github.com/ngmaloney/wind-garden/internal/scheduler"
)

type liveLine struct {
	line models.WindLine
	born time.Duration
}

type liveSwirl struct {
	swirl models.WindSwirl
	born  time.Duration
}

// Scene is the stage wind producers draw on. It also carries the
// visibility flag the gust timer consults and the events waiting to be
// written to the journal.
type Scene struct {
	sched  *scheduler.Scheduler
	lines  map[models.ElementID]liveLine
	swirls map[models.ElementID]liveSwirl
	hidden bool

	pendingGusts []models.Gust
	revealed     int
}

func newScene(sched *scheduler.Scheduler) *Scene {
	return &Scene{
		sched:  sched,
		lines:  make(map[models.ElementID]liveLine),
		swirls: make(map[models.ElementID]liveSwirl),
	}
}

func (s *Scene) AddLine(line models.WindLine) {
	s.lines[line.ID] = liveLine{line: line, born: s.sched.Now()}
}

func (s *Scene) RemoveLine(id models.ElementID) {
	delete(s.lines, id)
}

func (s *Scene) AddSwirl(swirl models.WindSwirl) {
	s.swirls[swirl.ID] = liveSwirl{swirl: swirl, born: s.sched.Now()}
}

func (s *Scene) RemoveSwirl(id models.ElementID) {
	delete(s.swirls, id)
}

// Hidden implements wind.Visibility
func (s *Scene) Hidden() (bool, error) {
	return s.hidden, nil
}

// Live returns the number of wind elements on stage
func (s *Scene) Live() int {
	return len(s.lines) + len(s.swirls)
}

// sortedLines returns live lines in creation order
func (s *Scene) sortedLines() []liveLine {
	out := make([]liveLine, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].line.ID < out[j].line.ID })
	return out
}

// sortedSwirls returns live swirls in creation order
func (s *Scene) sortedSwirls() []liveSwirl {
	out := make([]liveSwirl, 0, len(s.swirls))
	for _, sw := range s.swirls {
		out = append(out, sw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].swirl.ID < out[j].swirl.ID })
	return out
}

// drainGusts hands over gusts produced since the last call
func (s *Scene) drainGusts() []models.Gust {
	gusts := s.pendingGusts
	s.pendingGusts = nil
	return gusts
}
