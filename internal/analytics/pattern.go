package analytics

import (
	"math"

	"github.com/pathwayhq/pathway/internal/domain"
)

// Preferred-duration bounds in hours.
const (
	minPreferredDuration     = 1
	maxPreferredDuration     = 8
	defaultPreferredDuration = 3
)

// LearningPattern captures a user's derived learning preferences.
type LearningPattern struct {
	PreferredDifficulty    domain.Difficulty `json:"preferred_difficulty"`
	PreferredDuration      int               `json:"preferred_duration"` // hours
	CompletionRate         float64           `json:"completion_rate"`
	AvgTimeToCompleteHours float64           `json:"avg_time_to_complete_hours"`
}

// AnalyzeLearningPattern derives preferences from assessment history and
// progress records joined with their module metadata.
func AnalyzeLearningPattern(assessments []domain.AssessmentRecord, progress []domain.ProgressWithModule) LearningPattern {
	pattern := LearningPattern{
		PreferredDifficulty: preferredDifficulty(assessments),
		PreferredDuration:   defaultPreferredDuration,
	}

	if len(progress) > 0 {
		completed := 0
		for _, p := range progress {
			if p.Progress >= 100 {
				completed++
			}
		}
		pattern.CompletionRate = float64(completed) / float64(len(progress))
	}

	// Mean hours to complete over records that have both timestamps.
	var totalHours float64
	var counted int
	for _, p := range progress {
		if p.CompletedAt == nil || p.StartedAt.IsZero() {
			continue
		}
		totalHours += p.CompletedAt.Sub(p.StartedAt).Hours()
		counted++
	}
	if counted > 0 {
		pattern.AvgTimeToCompleteHours = totalHours / float64(counted)
		pattern.PreferredDuration = clampDuration(int(math.Round(pattern.AvgTimeToCompleteHours)))
	}

	return pattern
}

// preferredDifficulty picks the difficulty whose assessments have the
// highest mean score, defaulting to intermediate without history.
func preferredDifficulty(assessments []domain.AssessmentRecord) domain.Difficulty {
	if len(assessments) == 0 {
		return domain.DifficultyIntermediate
	}

	sums := make(map[domain.Difficulty]int)
	counts := make(map[domain.Difficulty]int)
	for _, a := range assessments {
		sums[a.Difficulty] += a.Score
		counts[a.Difficulty]++
	}

	best := domain.DifficultyIntermediate
	bestMean := -1.0
	for _, d := range []domain.Difficulty{domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced} {
		if counts[d] == 0 {
			continue
		}
		mean := float64(sums[d]) / float64(counts[d])
		if mean > bestMean {
			bestMean = mean
			best = d
		}
	}
	return best
}

func clampDuration(hours int) int {
	if hours < minPreferredDuration {
		return minPreferredDuration
	}
	if hours > maxPreferredDuration {
		return maxPreferredDuration
	}
	return hours
}
