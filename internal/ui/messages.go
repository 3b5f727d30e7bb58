package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/wind-garden/internal/database"
	"github.com/ngmaloney/wind-garden/internal/models"
)

// Message types for the frame loop and journal writes

// frameMsg is sent once per rendered frame
type frameMsg time.Time

// journalErrMsg is sent when a journal write fails. Failures are logged and
// never interrupt the scene.
type journalErrMsg struct {
	err error
}

// frameTick schedules the next frame
func frameTick(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func recordGust(j *database.Journal, sessionID int64, gust models.Gust) tea.Cmd {
	return func() tea.Msg {
		if err := j.RecordGust(sessionID, gust); err != nil {
			return journalErrMsg{err: err}
		}
		return nil
	}
}

func markRevealed(j *database.Journal, sessionID int64, at time.Time) tea.Cmd {
	return func() tea.Msg {
		if err := j.MarkRevealed(sessionID, at); err != nil {
			return journalErrMsg{err: err}
		}
		return nil
	}
}
