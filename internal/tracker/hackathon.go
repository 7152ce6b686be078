package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/assist"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/llm"
)

// defaultChallengeCount is requested when the caller does not say how many
// challenges to generate.
const defaultChallengeCount = 3

// HackathonService manages hackathon events, participation and AI-generated
// challenges.
type HackathonService struct {
	hackathons HackathonStore
	provider   llm.Provider
	logger     *slog.Logger
	now        func() time.Time
}

// NewHackathonService creates a hackathon service.
func NewHackathonService(hackathons HackathonStore, provider llm.Provider, logger *slog.Logger) *HackathonService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HackathonService{
		hackathons: hackathons,
		provider:   provider,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateHackathonRequest contains data for creating a hackathon.
type CreateHackathonRequest struct {
	Title    string
	Theme    string
	StartsAt time.Time
	EndsAt   time.Time
}

// Create persists a new hackathon without challenges; they are generated
// separately.
func (s *HackathonService) Create(ctx context.Context, req CreateHackathonRequest) (*domain.Hackathon, error) {
	if req.Title == "" || req.Theme == "" {
		return nil, fmt.Errorf("%w: title and theme are required", domain.ErrInvalidInput)
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("%w: hackathon must end after it starts", domain.ErrInvalidInput)
	}

	h := &domain.Hackathon{
		ID:       uuid.New(),
		Title:    req.Title,
		Theme:    req.Theme,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	if err := s.hackathons.Save(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to save hackathon: %w", err)
	}
	return h, nil
}

// List returns all hackathons, most recent first.
func (s *HackathonService) List(ctx context.Context) ([]domain.Hackathon, error) {
	return s.hackathons.List(ctx)
}

// Get returns one hackathon.
func (s *HackathonService) Get(ctx context.Context, id uuid.UUID) (*domain.Hackathon, error) {
	return s.hackathons.Get(ctx, id)
}

// Join registers the user as a participant. Joining twice returns
// ErrAlreadyJoined.
func (s *HackathonService) Join(ctx context.Context, userID string, hackathonID uuid.UUID) error {
	if _, err := s.hackathons.Get(ctx, hackathonID); err != nil {
		return err
	}

	p := &domain.HackathonParticipant{
		HackathonID: hackathonID,
		UserID:      userID,
		JoinedAt:    s.now(),
	}
	if err := s.hackathons.Join(ctx, p); err != nil {
		return err
	}

	s.logger.Info("user joined hackathon", "hackathon_id", hackathonID, "user_id", userID)
	return nil
}

// GenerateChallenges asks the AI collaborator for challenges around the
// hackathon's theme and persists them on the event. An undecodable payload
// is terminal. Existing challenges are replaced.
func (s *HackathonService) GenerateChallenges(ctx context.Context, hackathonID uuid.UUID, count int) (*domain.Hackathon, error) {
	if count <= 0 {
		count = defaultChallengeCount
	}
	if s.provider == nil {
		return nil, ErrAIUnavailable
	}

	h, err := s.hackathons.Get(ctx, hackathonID)
	if err != nil {
		return nil, err
	}

	system, prompt := assist.BuildChallengesPrompt(h.Theme, count)
	text, err := llm.Complete(ctx, s.provider, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenges: %w", err)
	}
	challenges, err := assist.ParseChallenges(text)
	if err != nil {
		return nil, err
	}

	h.Challenges = challenges
	if err := s.hackathons.Save(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to save hackathon: %w", err)
	}

	s.logger.Info("hackathon challenges generated",
		"hackathon_id", hackathonID,
		"challenges", len(challenges),
	)
	return h, nil
}
