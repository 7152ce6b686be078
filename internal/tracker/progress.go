package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/analytics"
	"github.com/pathwayhq/pathway/internal/domain"
)

// ProgressService records module progress and runs the stagnation and
// achievement checks as a side effect of every update. A per-user mutex
// serializes updates so the checks always see the row they just wrote.
type ProgressService struct {
	modules     ModuleStore
	assessments AssessmentStore
	alerts      AlertStore
	publisher   AlertPublisher // Optional: nil drops queue fan-out
	logger      *slog.Logger
	now         func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewProgressService creates a progress service. publisher may be nil.
func NewProgressService(modules ModuleStore, assessments AssessmentStore, alerts AlertStore, publisher AlertPublisher, logger *slog.Logger) *ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressService{
		modules:     modules,
		assessments: assessments,
		alerts:      alerts,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
		locks:       make(map[string]*sync.Mutex),
	}
}

// UpdateProgress upserts the user's progress on a module, then runs the
// stagnation and achievement checks synchronously and persists any alerts
// they raise. Detection latency therefore equals the time until the user's
// next update. Returns the updated record and the alerts raised by it.
func (s *ProgressService) UpdateProgress(ctx context.Context, userID string, moduleID uuid.UUID, progress int) (*domain.ModuleProgress, []domain.Alert, error) {
	if progress < 0 || progress > 100 {
		return nil, nil, fmt.Errorf("%w: progress must be between 0 and 100", domain.ErrInvalidInput)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	module, err := s.modules.GetModule(ctx, moduleID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	p, err := s.modules.GetProgress(ctx, userID, moduleID)
	if errors.Is(err, domain.ErrProgressNotFound) {
		p = domain.NewModuleProgress(userID, moduleID, now)
	} else if err != nil {
		return nil, nil, err
	}

	wasCompleted := p.Completed()
	p.SetProgress(progress, now)

	if err := s.modules.SaveProgress(ctx, p); err != nil {
		return nil, nil, fmt.Errorf("failed to save progress: %w", err)
	}

	justCompleted := !wasCompleted && p.Completed()
	alerts, err := s.runChecks(ctx, userID, module.Title, justCompleted, now)
	if err != nil {
		return nil, nil, err
	}

	return p, alerts, nil
}

// Modules returns the full learning-module catalog.
func (s *ProgressService) Modules(ctx context.Context) ([]domain.LearningModule, error) {
	return s.modules.ListModules(ctx)
}

// List returns the user's progress records pre-joined with their modules,
// most recently touched first.
func (s *ProgressService) List(ctx context.Context, userID string) ([]domain.ProgressWithModule, error) {
	return s.modules.ListProgress(ctx, userID)
}

// Alerts returns the user's most recent alerts.
func (s *ProgressService) Alerts(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	return s.alerts.List(ctx, userID, limit)
}

// runChecks evaluates stagnation and achievements against the user's full
// history, persists each finding as an alert and fans it out to the queue.
// Queue publish failures are logged and swallowed; store failures are not.
func (s *ProgressService) runChecks(ctx context.Context, userID, moduleTitle string, justCompleted bool, now time.Time) ([]domain.Alert, error) {
	joined, err := s.modules.ListProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress history: %w", err)
	}
	progress := make([]domain.ModuleProgress, len(joined))
	for i, j := range joined {
		progress[i] = j.ModuleProgress
	}

	records, err := s.assessments.ListRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment history: %w", err)
	}

	completed, err := s.modules.CountCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed modules: %w", err)
	}

	streak := analytics.CurrentStreak(progress, now)
	findings := analytics.DetectStagnation(progress, records, now)
	findings = append(findings, analytics.DetectAchievements(justCompleted, moduleTitle, completed, streak)...)

	var alerts []domain.Alert
	for _, f := range findings {
		alert := domain.NewAlert(userID, f.Type, f.Message)
		if err := s.alerts.Insert(ctx, &alert); err != nil {
			return nil, fmt.Errorf("failed to save alert: %w", err)
		}
		alerts = append(alerts, alert)

		if s.publisher != nil && s.publisher.Enabled() {
			if err := s.publisher.PublishAlert(ctx, alert); err != nil {
				s.logger.Warn("failed to publish alert event",
					"alert_id", alert.ID,
					"user_id", userID,
					"error", err,
				)
			}
		}
	}

	return alerts, nil
}

// userLock returns the mutex serializing one user's progress updates.
func (s *ProgressService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}
