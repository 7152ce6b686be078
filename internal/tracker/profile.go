package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pathwayhq/pathway/internal/assist"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/llm"
)

// ErrAIUnavailable is returned by operations that require the AI
// collaborator when no provider is configured.
var ErrAIUnavailable = errors.New("no AI provider configured")

// ProfileService manages skill profiles, including AI-backed resume
// analysis.
type ProfileService struct {
	profiles ProfileStore
	provider llm.Provider // Optional: resume analysis degrades without it
	logger   *slog.Logger
	now      func() time.Time
}

// NewProfileService creates a profile service. provider may be nil, in
// which case resume analysis always takes the keyword-matching path.
func NewProfileService(profiles ProfileStore, provider llm.Provider, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		profiles: profiles,
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns the profile for a user.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// UpdateProfileRequest contains the mutable profile fields. Nil fields are
// left unchanged, so partial updates are possible.
type UpdateProfileRequest struct {
	Name       *string
	Email      *string
	Experience *string
	Education  *string
}

// Update applies a partial update to the user's profile, creating the
// profile if it does not exist yet.
func (s *ProfileService) Update(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.Profile, error) {
	p, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Experience != nil {
		p.Experience = *req.Experience
	}
	if req.Education != nil {
		p.Education = *req.Education
	}
	p.UpdatedAt = s.now()

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}

// AnalyzeResume extracts skills from resume text and replaces the user's
// skill set with the result, merging so an assessed level never decreases.
// When the AI call or its payload fails, extraction degrades to matching a
// fixed list of common skill names against the text instead of failing.
func (s *ProfileService) AnalyzeResume(ctx context.Context, userID, resumeText string) (*domain.Profile, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: resume text is empty", domain.ErrInvalidInput)
	}

	p, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills, analysis := s.extractSkills(ctx, resumeText)
	if analysis != nil {
		if analysis.Experience != "" {
			p.Experience = analysis.Experience
		}
		if analysis.Education != "" {
			p.Education = analysis.Education
		}
	}

	p.ReplaceSkills(skills)
	p.UpdatedAt = s.now()

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}

// extractSkills runs the AI analysis and falls back to keyword matching on
// any failure. The second return is nil on the fallback path.
func (s *ProfileService) extractSkills(ctx context.Context, resumeText string) ([]domain.Skill, *assist.ResumeAnalysis) {
	if s.provider == nil {
		s.logger.Info("no AI provider, using keyword skill matching")
		return assist.MatchCommonSkills(resumeText), nil
	}

	system, prompt := assist.BuildResumePrompt(resumeText)
	text, err := llm.Complete(ctx, s.provider, system, prompt)
	if err != nil {
		s.logger.Warn("AI resume analysis failed, falling back to keyword matching", "error", err)
		return assist.MatchCommonSkills(resumeText), nil
	}

	analysis, err := assist.ParseResumeAnalysis(text)
	if err != nil {
		s.logger.Warn("unparseable resume analysis, falling back to keyword matching", "error", err)
		return assist.MatchCommonSkills(resumeText), nil
	}

	return analysis.DomainSkills(), analysis
}

func (s *ProfileService) getOrCreate(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return domain.NewProfile(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
