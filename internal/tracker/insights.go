package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pathwayhq/pathway/internal/analytics"
	"github.com/pathwayhq/pathway/internal/domain"
)

// InsightsService answers the read-only analytics queries backing the
// dashboard: streak, learning pattern, skill gaps and trends.
type InsightsService struct {
	profiles    ProfileStore
	modules     ModuleStore
	assessments AssessmentStore
	now         func() time.Time
}

// NewInsightsService creates an insights service.
func NewInsightsService(profiles ProfileStore, modules ModuleStore, assessments AssessmentStore) *InsightsService {
	return &InsightsService{
		profiles:    profiles,
		modules:     modules,
		assessments: assessments,
		now:         time.Now,
	}
}

// Dashboard aggregates every analytics view for one user. A user without a
// profile gets zero values rather than an error; skill gaps are simply
// empty until skills exist.
type Dashboard struct {
	StreakDays       int                       `json:"streak_days"`
	CompletedModules int                       `json:"completed_modules"`
	Pattern          analytics.LearningPattern `json:"pattern"`
	SkillGaps        []analytics.SkillGap      `json:"skill_gaps"`
	Trends           []analytics.SkillTrend    `json:"trends"`
}

// Dashboard computes the full analytics view for a user.
func (s *InsightsService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	joined, err := s.modules.ListProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress history: %w", err)
	}
	records, err := s.assessments.ListRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment history: %w", err)
	}
	completed, err := s.modules.CountCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed modules: %w", err)
	}

	progress := make([]domain.ModuleProgress, len(joined))
	for i, j := range joined {
		progress[i] = j.ModuleProgress
	}

	d := &Dashboard{
		StreakDays:       analytics.CurrentStreak(progress, s.now()),
		CompletedModules: completed,
		Pattern:          analytics.AnalyzeLearningPattern(records, joined),
		Trends:           analytics.SkillTrends(records),
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		// No profile yet: gaps stay empty.
	case err != nil:
		return nil, err
	default:
		d.SkillGaps = analytics.AnalyzeSkillGaps(profile.Skills)
	}

	return d, nil
}

// Streak returns the user's current consecutive-day streak.
func (s *InsightsService) Streak(ctx context.Context, userID string) (int, error) {
	joined, err := s.modules.ListProgress(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load progress history: %w", err)
	}
	progress := make([]domain.ModuleProgress, len(joined))
	for i, j := range joined {
		progress[i] = j.ModuleProgress
	}
	return analytics.CurrentStreak(progress, s.now()), nil
}

// Gaps returns the user's skill gaps, largest first. A profile without
// skills cannot be analyzed and returns ErrNoSkills, which is distinct from
// a profile whose skills are all above the competency threshold.
func (s *InsightsService) Gaps(ctx context.Context, userID string) ([]analytics.SkillGap, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.HasSkills() {
		return nil, domain.ErrNoSkills
	}
	return analytics.AnalyzeSkillGaps(profile.Skills), nil
}

// Trends classifies the user's per-technology score trends.
func (s *InsightsService) Trends(ctx context.Context, userID string) ([]analytics.SkillTrend, error) {
	records, err := s.assessments.ListRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment history: %w", err)
	}
	return analytics.SkillTrends(records), nil
}
