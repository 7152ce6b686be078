// Package tracker holds the orchestration services: each one wires stores,
// the AI collaborator and the analytics components behind the operations the
// HTTP layer exposes. The authenticated user id is always an explicit
// parameter, never ambient state.
package tracker

import (
	"context"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/queue"
	"github.com/pathwayhq/pathway/internal/storage/sqlite"
)

// ProfileStore persists user profiles.
type ProfileStore interface {
	Save(ctx context.Context, p *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// AssessmentStore persists assessment definitions and completion records.
type AssessmentStore interface {
	SaveAssessment(ctx context.Context, a *domain.Assessment) error
	GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)
	SaveRecord(ctx context.Context, r *domain.AssessmentRecord) error
	HasRecord(ctx context.Context, assessmentID uuid.UUID) (bool, error)
	ListRecords(ctx context.Context, userID string) ([]domain.AssessmentRecord, error)
}

// ModuleStore persists the learning-module catalog and per-user progress.
type ModuleStore interface {
	GetModule(ctx context.Context, id uuid.UUID) (*domain.LearningModule, error)
	ListModules(ctx context.Context) ([]domain.LearningModule, error)
	SaveProgress(ctx context.Context, p *domain.ModuleProgress) error
	GetProgress(ctx context.Context, userID string, moduleID uuid.UUID) (*domain.ModuleProgress, error)
	ListProgress(ctx context.Context, userID string) ([]domain.ProgressWithModule, error)
	CountCompleted(ctx context.Context, userID string) (int, error)
}

// RecommendationStore persists scored recommendations.
type RecommendationStore interface {
	DeleteForUser(ctx context.Context, userID string) error
	Insert(ctx context.Context, r *domain.Recommendation) error
	List(ctx context.Context, userID string) ([]domain.Recommendation, error)
}

// AlertStore persists alerts raised by the stagnation and achievement checks.
type AlertStore interface {
	Insert(ctx context.Context, a *domain.Alert) error
	List(ctx context.Context, userID string, limit int) ([]domain.Alert, error)
}

// HackathonStore persists hackathons and their participants.
type HackathonStore interface {
	Save(ctx context.Context, h *domain.Hackathon) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Hackathon, error)
	List(ctx context.Context) ([]domain.Hackathon, error)
	Join(ctx context.Context, p *domain.HackathonParticipant) error
}

// AlertPublisher fans alerts out to the notification queue. Implementations
// are best-effort; publish failures never fail the originating request.
type AlertPublisher interface {
	Enabled() bool
	PublishAlert(ctx context.Context, alert domain.Alert) error
}

// Compile-time checks that the production implementations satisfy the
// consumer-side interfaces.
var (
	_ ProfileStore        = (*sqlite.ProfileStore)(nil)
	_ AssessmentStore     = (*sqlite.AssessmentStore)(nil)
	_ ModuleStore         = (*sqlite.ModuleStore)(nil)
	_ RecommendationStore = (*sqlite.RecommendationStore)(nil)
	_ AlertStore          = (*sqlite.AlertStore)(nil)
	_ HackathonStore      = (*sqlite.HackathonStore)(nil)
	_ AlertPublisher      = (*queue.Publisher)(nil)
)
