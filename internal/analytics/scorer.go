package analytics

import (
	"fmt"
	"strings"

	"github.com/pathwayhq/pathway/internal/domain"
)

// Scoring bonuses applied on top of the AI-suggested priority.
const (
	gapBonusWeight   = 0.3
	difficultyBonus  = 0.2
	durationBonus    = 0.1
	ratingBonus      = 0.15
	ratingThreshold  = 4.5
	durationSlackHrs = 1
)

// Suggestion is an AI-provided learning focus with a priority on 0-100.
type Suggestion struct {
	Technology string `json:"technology"`
	Reason     string `json:"reason"`
	Priority   int    `json:"priority"`
}

// ScoredRecommendation pairs a catalog module with its computed score.
type ScoredRecommendation struct {
	Module domain.LearningModule
	Score  float64
	Reason string
}

// ScoreRecommendations combines AI suggestions, skill gaps, the learning
// pattern and module metadata into scored (module, score, reason) tuples.
//
// A module matches a suggestion when its technology or title contains the
// suggestion's technology, case-insensitively. Per matching pair the score
// is priority/100, plus the gap bonus when the suggestion addresses a skill
// gap, plus fixed bonuses for difficulty, duration and rating fit, clamped
// to [0, 1].
//
// The output is deliberately not deduplicated: several suggestions matching
// the same module yield several independent entries. It is also unsorted;
// the consuming query layer orders by score.
func ScoreRecommendations(suggestions []Suggestion, gaps []SkillGap, pattern LearningPattern, modules []domain.LearningModule) []ScoredRecommendation {
	var recs []ScoredRecommendation

	for _, sug := range suggestions {
		gap, hasGap := matchGap(sug.Technology, gaps)

		for _, mod := range modules {
			if !moduleMatches(mod, sug.Technology) {
				continue
			}

			score := float64(sug.Priority) / 100.0
			reason := sug.Reason

			if hasGap {
				score += gap.GapScore * gapBonusWeight
				reason = fmt.Sprintf("%s (addresses your skill gap in %s)", reason, gap.Skill)
			}
			if mod.Difficulty == pattern.PreferredDifficulty {
				score += difficultyBonus
			}
			if diff := mod.DurationHours - pattern.PreferredDuration; diff >= -durationSlackHrs && diff <= durationSlackHrs {
				score += durationBonus
			}
			if mod.Rating >= ratingThreshold {
				score += ratingBonus
			}

			recs = append(recs, ScoredRecommendation{
				Module: mod,
				Score:  domain.ClampScore(score),
				Reason: reason,
			})
		}
	}

	return recs
}

// moduleMatches reports whether the module's technology or title contains
// the suggested technology, case-insensitively.
func moduleMatches(mod domain.LearningModule, technology string) bool {
	tech := strings.ToLower(technology)
	if tech == "" {
		return false
	}
	return strings.Contains(strings.ToLower(mod.Technology), tech) ||
		strings.Contains(strings.ToLower(mod.Title), tech)
}

// matchGap finds a skill gap whose name matches the suggested technology
// as a substring in either direction, case-insensitively.
func matchGap(technology string, gaps []SkillGap) (SkillGap, bool) {
	tech := strings.ToLower(technology)
	if tech == "" {
		return SkillGap{}, false
	}
	for _, g := range gaps {
		skill := strings.ToLower(g.Skill)
		if strings.Contains(skill, tech) || strings.Contains(tech, skill) {
			return g, true
		}
	}
	return SkillGap{}, false
}
