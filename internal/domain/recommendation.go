package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is a scored pointer at a learning module for a user.
// Recommendations are derived and ephemeral: a refresh regenerates the set
// wholesale rather than merging into it. Multiple recommendations for the
// same module may coexist when several AI suggestions matched it.
type Recommendation struct {
	ID        uuid.UUID
	UserID    string
	ModuleID  uuid.UUID
	Score     float64 // 0.0 - 1.0
	Reason    string
	CreatedAt time.Time
}

// ClampScore bounds a recommendation score to [0, 1].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
