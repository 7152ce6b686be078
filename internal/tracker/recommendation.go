package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/analytics"
	"github.com/pathwayhq/pathway/internal/assist"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/llm"
)

// RecommendationService turns skill gaps, learning patterns and AI
// suggestions into scored recommendations against the module catalog.
type RecommendationService struct {
	profiles    ProfileStore
	assessments AssessmentStore
	modules     ModuleStore
	recs        RecommendationStore
	provider    llm.Provider
	replace     bool // replace the stored set wholesale on refresh
	logger      *slog.Logger
	now         func() time.Time
}

// NewRecommendationService creates a recommendation service. replace
// controls whether Refresh deletes the previous set before inserting.
func NewRecommendationService(profiles ProfileStore, assessments AssessmentStore, modules ModuleStore, recs RecommendationStore, provider llm.Provider, replace bool, logger *slog.Logger) *RecommendationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendationService{
		profiles:    profiles,
		assessments: assessments,
		modules:     modules,
		recs:        recs,
		provider:    provider,
		replace:     replace,
		logger:      logger,
		now:         time.Now,
	}
}

// Refresh regenerates the user's recommendation set: skill gaps and the
// learning pattern are derived from history, the AI collaborator proposes
// focus areas, and matching catalog modules are scored and persisted. A
// profile without skills cannot be scored and returns ErrNoSkills.
func (s *RecommendationService) Refresh(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.HasSkills() {
		return nil, domain.ErrNoSkills
	}
	if s.provider == nil {
		return nil, ErrAIUnavailable
	}

	records, err := s.assessments.ListRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment history: %w", err)
	}
	progress, err := s.modules.ListProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress history: %w", err)
	}

	gaps := analytics.AnalyzeSkillGaps(profile.Skills)
	pattern := analytics.AnalyzeLearningPattern(records, progress)

	system, prompt := assist.BuildSuggestionsPrompt(profile.Skills, gaps, pattern)
	text, err := llm.Complete(ctx, s.provider, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to get learning suggestions: %w", err)
	}
	suggestions, err := assist.ParseSuggestions(text)
	if err != nil {
		return nil, err
	}

	modules, err := s.modules.ListModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load module catalog: %w", err)
	}
	scored := analytics.ScoreRecommendations(suggestions, gaps, pattern, modules)

	if s.replace {
		if err := s.recs.DeleteForUser(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to clear recommendations: %w", err)
		}
	}

	now := s.now()
	for _, sr := range scored {
		rec := domain.Recommendation{
			ID:        uuid.New(),
			UserID:    userID,
			ModuleID:  sr.Module.ID,
			Score:     sr.Score,
			Reason:    sr.Reason,
			CreatedAt: now,
		}
		if err := s.recs.Insert(ctx, &rec); err != nil {
			return nil, fmt.Errorf("failed to save recommendation: %w", err)
		}
	}

	s.logger.Info("recommendations refreshed",
		"user_id", userID,
		"suggestions", len(suggestions),
		"recommendations", len(scored),
	)

	return s.recs.List(ctx, userID)
}

// List returns the user's stored recommendations, highest score first.
func (s *RecommendationService) List(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	return s.recs.List(ctx, userID)
}
