package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertType categorizes persisted alerts.
type AlertType string

const (
	// Stagnation alerts
	AlertStagnantModules  AlertType = "stagnant_modules"
	AlertNoRecentActivity AlertType = "no_recent_activity"
	AlertAssessmentDue    AlertType = "assessment_due"

	// Achievement alerts
	AlertModuleCompleted AlertType = "module_completed"
	AlertMilestone       AlertType = "milestone"
	AlertStreak          AlertType = "streak"
)

// Alert is a persisted notification raised by the stagnation and
// achievement checks.
type Alert struct {
	ID        uuid.UUID
	UserID    string
	Type      AlertType
	Message   string
	CreatedAt time.Time
}

// NewAlert creates an alert for a user.
func NewAlert(userID string, typ AlertType, message string) Alert {
	return Alert{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
