package analytics

import (
	"fmt"
	"time"

	"github.com/pathwayhq/pathway/internal/domain"
)

// maxStreakDays bounds the backward day walk.
const maxStreakDays = 365

// Rolling windows for the stagnation checks.
const (
	stagnantModuleWindow = 7 * 24 * time.Hour
	activityWindow       = 7 * 24 * time.Hour
	assessmentWindow     = 30 * 24 * time.Hour
)

// CurrentStreak counts consecutive calendar days with at least one progress
// touch, walking backward from now's calendar day in now's timezone. The
// walk never breaks on day zero: a user who was active yesterday but not
// yet today keeps yesterday's streak. It is recomputed from scratch every
// time, never incrementally.
func CurrentStreak(progress []domain.ModuleProgress, now time.Time) int {
	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		dayStart := startOfDay(now, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		active := false
		for _, p := range progress {
			if !p.LastAccessedAt.Before(dayStart) && p.LastAccessedAt.Before(dayEnd) {
				active = true
				break
			}
		}

		if active {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// Finding is a detected condition to be persisted as an alert.
type Finding struct {
	Type    domain.AlertType
	Message string
}

// DetectStagnation evaluates the three independent inactivity checks. All
// of them may fire together. The checks run as a side effect of progress
// updates, so detection latency equals the time until the user's next
// update.
func DetectStagnation(progress []domain.ModuleProgress, assessments []domain.AssessmentRecord, now time.Time) []Finding {
	var findings []Finding

	stagnant := 0
	recentTouch := false
	for _, p := range progress {
		if p.Progress > 0 && p.Progress < 100 && now.Sub(p.LastAccessedAt) > stagnantModuleWindow {
			stagnant++
		}
		if now.Sub(p.LastAccessedAt) <= activityWindow {
			recentTouch = true
		}
	}

	if stagnant > 0 {
		findings = append(findings, Finding{
			Type:    domain.AlertStagnantModules,
			Message: fmt.Sprintf("You have %d module(s) in progress that haven't been touched in over a week", stagnant),
		})
	}

	if len(progress) > 0 && !recentTouch {
		findings = append(findings, Finding{
			Type:    domain.AlertNoRecentActivity,
			Message: "No learning activity in the last 7 days. Keep your momentum going!",
		})
	}

	recentAssessment := false
	for _, a := range assessments {
		if now.Sub(a.CompletedAt) <= assessmentWindow {
			recentAssessment = true
			break
		}
	}
	if len(assessments) > 0 && !recentAssessment {
		findings = append(findings, Finding{
			Type:    domain.AlertAssessmentDue,
			Message: "It's been over 30 days since your last assessment. Take one to track your growth.",
		})
	}

	return findings
}

func startOfDay(t time.Time, dayOffset int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+dayOffset, 0, 0, 0, 0, t.Location())
}
