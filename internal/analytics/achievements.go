package analytics

import (
	"fmt"

	"github.com/pathwayhq/pathway/internal/domain"
)

// Milestones fire on exact match only: a count jumping from 4 to 6 in one
// update skips the 5-module milestone. The same caveat applies to streaks.
var (
	completionMilestones = []int{1, 5, 10, 25, 50}
	streakMilestones     = []int{7, 14, 30, 60}
)

// DetectAchievements evaluates achievement conditions after a progress
// update. justCompleted is true when this update pushed the module to 100;
// completedCount is the user's total completed modules after the update;
// streak is the freshly recomputed day streak.
func DetectAchievements(justCompleted bool, moduleTitle string, completedCount, streak int) []Finding {
	var findings []Finding

	if justCompleted {
		findings = append(findings, Finding{
			Type:    domain.AlertModuleCompleted,
			Message: fmt.Sprintf("Congratulations! You completed %q", moduleTitle),
		})
	}

	if containsInt(completionMilestones, completedCount) {
		findings = append(findings, Finding{
			Type:    domain.AlertMilestone,
			Message: fmt.Sprintf("Milestone reached: %d modules completed", completedCount),
		})
	}

	if containsInt(streakMilestones, streak) {
		findings = append(findings, Finding{
			Type:    domain.AlertStreak,
			Message: fmt.Sprintf("You're on a %d-day learning streak", streak),
		})
	}

	return findings
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
