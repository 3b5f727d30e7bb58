package models

import "time"

// Session is one run of the scene as recorded in the journal
type Session struct {
	ID         int64      `json:"id"`   // Database Primary Key (0 if not saved)
	Seed       uint64     `json:"seed"` // Random seed that reproduces the garden
	StartedAt  time.Time  `json:"started_at"`
	RevealedAt *time.Time `json:"revealed_at"` // First card reveal, nil if never clicked
	Gusts      int        `json:"gusts"`       // Gusts recorded so far
}

// Revealed reports whether the card was revealed during the session
func (s *Session) Revealed() bool {
	return s.RevealedAt != nil
}
