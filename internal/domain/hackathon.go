package domain

import (
	"time"

	"github.com/google/uuid"
)

// Challenge is a single AI-generated hackathon challenge.
type Challenge struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Points       int      `json:"points"`
}

// Hackathon is a time-boxed event users can join.
type Hackathon struct {
	ID         uuid.UUID
	Title      string
	Theme      string
	StartsAt   time.Time
	EndsAt     time.Time
	Challenges []Challenge
}

// Active reports whether the hackathon is running at the given time.
func (h *Hackathon) Active(now time.Time) bool {
	return !now.Before(h.StartsAt) && now.Before(h.EndsAt)
}

// HackathonParticipant joins a user to a hackathon.
type HackathonParticipant struct {
	HackathonID uuid.UUID
	UserID      string
	JoinedAt    time.Time
}
