package domain

import (
	"time"

	"github.com/google/uuid"
)

// LearningModule is a catalog entry users can work through.
type LearningModule struct {
	ID            uuid.UUID
	Technology    string
	Title         string
	Description   string
	Difficulty    Difficulty
	DurationHours int
	Rating        float64 // 0.0 - 5.0
}

// ModuleProgress tracks one user's progress through one module.
// There is exactly one record per (user, module).
type ModuleProgress struct {
	ID             uuid.UUID
	UserID         string
	ModuleID       uuid.UUID
	Progress       int // 0-100
	StartedAt      time.Time
	LastAccessedAt time.Time
	CompletedAt    *time.Time
}

// NewModuleProgress starts tracking a module for a user.
func NewModuleProgress(userID string, moduleID uuid.UUID, now time.Time) *ModuleProgress {
	return &ModuleProgress{
		ID:             uuid.New(),
		UserID:         userID,
		ModuleID:       moduleID,
		Progress:       0,
		StartedAt:      now,
		LastAccessedAt: now,
	}
}

// SetProgress records a progress touch. CompletedAt is set once progress
// reaches 100 and cleared again if progress regresses below 100.
func (mp *ModuleProgress) SetProgress(progress int, now time.Time) {
	mp.Progress = progress
	mp.LastAccessedAt = now

	if progress >= 100 {
		if mp.CompletedAt == nil {
			t := now
			mp.CompletedAt = &t
		}
	} else {
		mp.CompletedAt = nil
	}
}

// Completed reports whether the module has been finished.
func (mp *ModuleProgress) Completed() bool {
	return mp.CompletedAt != nil
}

// ProgressWithModule is a progress record pre-joined with its module's
// metadata, as the pattern analyzer consumes it.
type ProgressWithModule struct {
	ModuleProgress
	Module LearningModule
}
