package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/assist"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/llm"
)

// questionCount is the number of questions requested per generated
// assessment.
const questionCount = 5

// AssessmentService generates AI-backed assessments and grades completions.
type AssessmentService struct {
	assessments AssessmentStore
	profiles    ProfileStore
	provider    llm.Provider
	logger      *slog.Logger
	now         func() time.Time
}

// NewAssessmentService creates an assessment service.
func NewAssessmentService(assessments AssessmentStore, profiles ProfileStore, provider llm.Provider, logger *slog.Logger) *AssessmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssessmentService{
		assessments: assessments,
		profiles:    profiles,
		provider:    provider,
		logger:      logger,
		now:         time.Now,
	}
}

// Generate asks the AI collaborator for a question set and persists the
// resulting assessment. An undecodable payload is terminal; there is no
// fallback question bank.
func (s *AssessmentService) Generate(ctx context.Context, userID, technology string, difficulty domain.Difficulty) (*domain.Assessment, error) {
	if technology == "" {
		return nil, fmt.Errorf("%w: technology is required", domain.ErrInvalidInput)
	}
	if difficulty == "" {
		difficulty = domain.DifficultyIntermediate
	}
	if !domain.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidInput, difficulty)
	}
	if s.provider == nil {
		return nil, ErrAIUnavailable
	}

	system, prompt := assist.BuildAssessmentPrompt(technology, difficulty, questionCount)
	text, err := llm.Complete(ctx, s.provider, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate assessment: %w", err)
	}

	questions, err := assist.ParseQuestions(text)
	if err != nil {
		return nil, err
	}

	a := domain.NewAssessment(userID, technology, difficulty, questions)
	if err := s.assessments.SaveAssessment(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	s.logger.Info("assessment generated",
		"assessment_id", a.ID,
		"user_id", userID,
		"technology", technology,
		"difficulty", difficulty,
		"questions", len(questions),
	)
	return a, nil
}

// Get returns an assessment owned by the user. Another user's assessment is
// reported as not found.
func (s *AssessmentService) Get(ctx context.Context, userID string, id uuid.UUID) (*domain.Assessment, error) {
	a, err := s.assessments.GetAssessment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, domain.ErrAssessmentNotFound
	}
	return a, nil
}

// Complete grades the answers against the assessment, persists the immutable
// record and raises the matching profile skill to max(prior, score). Each
// assessment can be completed once.
func (s *AssessmentService) Complete(ctx context.Context, userID string, assessmentID uuid.UUID, answers map[string]int) (*domain.AssessmentRecord, error) {
	a, err := s.Get(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}

	done, err := s.assessments.HasRecord(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assessment state: %w", err)
	}
	if done {
		return nil, domain.ErrAssessmentAlreadyComplete
	}

	record := a.Grade(userID, answers, s.now())
	if err := s.assessments.SaveRecord(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to save assessment record: %w", err)
	}

	if err := s.raiseSkill(ctx, userID, a.Technology, record.Score); err != nil {
		return nil, err
	}

	s.logger.Info("assessment completed",
		"assessment_id", assessmentID,
		"user_id", userID,
		"score", record.Score,
	)
	return &record, nil
}

// Records returns the user's completed assessments in chronological order.
func (s *AssessmentService) Records(ctx context.Context, userID string) ([]domain.AssessmentRecord, error) {
	return s.assessments.ListRecords(ctx, userID)
}

// raiseSkill lifts the profile skill named after the assessed technology,
// creating the profile first when the user has none.
func (s *AssessmentService) raiseSkill(ctx context.Context, userID, technology string, score int) error {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		p = domain.NewProfile(userID)
	} else if err != nil {
		return err
	}

	p.RaiseSkill(technology, score)
	if err := s.profiles.Save(ctx, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
