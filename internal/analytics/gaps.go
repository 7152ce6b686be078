package analytics

import (
	"sort"

	"github.com/pathwayhq/pathway/internal/domain"
)

// CompetencyThreshold is the skill level below which a skill counts as a gap.
const CompetencyThreshold = 70

// SkillGap measures how far a skill sits below the competency threshold.
// GapScore is (threshold - level) / threshold, in (0, 1]; larger gap means
// higher priority.
type SkillGap struct {
	Skill    string  `json:"skill"`
	GapScore float64 `json:"gap_score"`
}

// AnalyzeSkillGaps derives weak skills from a profile's skill list. Skills
// at or above the threshold are excluded. The result is sorted descending
// by gap score.
func AnalyzeSkillGaps(skills []domain.Skill) []SkillGap {
	var gaps []SkillGap
	for _, s := range skills {
		if s.Level >= CompetencyThreshold {
			continue
		}
		gaps = append(gaps, SkillGap{
			Skill:    s.Name,
			GapScore: float64(CompetencyThreshold-s.Level) / float64(CompetencyThreshold),
		})
	}

	sort.Slice(gaps, func(i, j int) bool {
		return gaps[i].GapScore > gaps[j].GapScore
	})

	return gaps
}
