package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
)

func newProgressFixture() (*ProgressService, *fakeModuleStore, *fakeAlertStore, *fakePublisher, domain.LearningModule) {
	modules := newFakeModuleStore()
	alerts := &fakeAlertStore{}
	publisher := &fakePublisher{}

	module := domain.LearningModule{
		ID:            uuid.New(),
		Technology:    "Go",
		Title:         "Go Basics",
		Difficulty:    domain.DifficultyBeginner,
		DurationHours: 3,
	}
	modules.addModule(module)

	svc := NewProgressService(modules, newFakeAssessmentStore(), alerts, publisher, testLogger())
	return svc, modules, alerts, publisher, module
}

func alertTypes(alerts []domain.Alert) map[domain.AlertType]bool {
	types := make(map[domain.AlertType]bool)
	for _, a := range alerts {
		types[a.Type] = true
	}
	return types
}

func TestProgressService_UpdateProgress_Validation(t *testing.T) {
	svc, _, _, _, module := newProgressFixture()

	for _, progress := range []int{-1, 101} {
		_, _, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, progress)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("UpdateProgress(%d) error = %v, want ErrInvalidInput", progress, err)
		}
	}
}

func TestProgressService_UpdateProgress_UnknownModule(t *testing.T) {
	svc, _, _, _, _ := newProgressFixture()

	_, _, err := svc.UpdateProgress(context.Background(), "user-1", uuid.New(), 50)
	if !errors.Is(err, domain.ErrModuleNotFound) {
		t.Errorf("UpdateProgress() error = %v, want ErrModuleNotFound", err)
	}
}

func TestProgressService_UpdateProgress_CreatesRecord(t *testing.T) {
	svc, modules, _, _, module := newProgressFixture()

	p, alerts, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 30)
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}

	if p.Progress != 30 {
		t.Errorf("Progress = %d, want 30", p.Progress)
	}
	if p.Completed() {
		t.Error("Completed() = true at 30%")
	}
	if len(alerts) != 0 {
		t.Errorf("alerts = %v, want none on an ordinary update", alerts)
	}

	stored, err := modules.GetProgress(context.Background(), "user-1", module.ID)
	if err != nil {
		t.Fatalf("progress not persisted: %v", err)
	}
	if stored.Progress != 30 {
		t.Errorf("persisted Progress = %d, want 30", stored.Progress)
	}
}

func TestProgressService_UpdateProgress_CompletionRaisesAlerts(t *testing.T) {
	svc, _, alertStore, publisher, module := newProgressFixture()

	_, alerts, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 100)
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}

	types := alertTypes(alerts)
	if !types[domain.AlertModuleCompleted] {
		t.Error("missing module_completed alert")
	}
	// First completion is also the 1-module milestone.
	if !types[domain.AlertMilestone] {
		t.Error("missing milestone alert for first completed module")
	}

	stored, err := alertStore.List(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != len(alerts) {
		t.Errorf("persisted %d alerts, returned %d", len(stored), len(alerts))
	}

	publisher.mu.Lock()
	published := len(publisher.published)
	publisher.mu.Unlock()
	if published != len(alerts) {
		t.Errorf("published %d alert events, want %d", published, len(alerts))
	}
}

func TestProgressService_UpdateProgress_CompletionFiresOnce(t *testing.T) {
	svc, _, _, _, module := newProgressFixture()

	if _, _, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 100); err != nil {
		t.Fatalf("first UpdateProgress() error = %v", err)
	}
	_, alerts, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 100)
	if err != nil {
		t.Fatalf("second UpdateProgress() error = %v", err)
	}
	if types := alertTypes(alerts); types[domain.AlertModuleCompleted] {
		t.Error("module_completed fired again on a repeat 100% update")
	}
}

func TestProgressService_UpdateProgress_RegressionClearsCompletion(t *testing.T) {
	svc, modules, _, _, module := newProgressFixture()

	if _, _, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 100); err != nil {
		t.Fatalf("UpdateProgress(100) error = %v", err)
	}
	p, _, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 80)
	if err != nil {
		t.Fatalf("UpdateProgress(80) error = %v", err)
	}

	if p.Completed() {
		t.Error("Completed() = true after regressing below 100")
	}
	stored, _ := modules.GetProgress(context.Background(), "user-1", module.ID)
	if stored.CompletedAt != nil {
		t.Error("persisted CompletedAt not cleared on regression")
	}

	count, _ := modules.CountCompleted(context.Background(), "user-1")
	if count != 0 {
		t.Errorf("CountCompleted = %d, want 0", count)
	}
}

func TestProgressService_UpdateProgress_PublishFailureIsSwallowed(t *testing.T) {
	svc, _, alertStore, publisher, module := newProgressFixture()
	publisher.err = errors.New("broker down")

	_, alerts, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 100)
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v, publish failures must not fail the update", err)
	}
	if len(alerts) == 0 {
		t.Fatal("expected completion alerts despite publish failure")
	}

	stored, _ := alertStore.List(context.Background(), "user-1", 0)
	if len(stored) != len(alerts) {
		t.Errorf("persisted %d alerts, want %d", len(stored), len(alerts))
	}
}

func TestProgressService_UpdateProgress_NilPublisher(t *testing.T) {
	modules := newFakeModuleStore()
	module := domain.LearningModule{ID: uuid.New(), Technology: "Go", Title: "Go Basics"}
	modules.addModule(module)
	svc := NewProgressService(modules, newFakeAssessmentStore(), &fakeAlertStore{}, nil, testLogger())

	if _, _, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 100); err != nil {
		t.Errorf("UpdateProgress() with nil publisher error = %v", err)
	}
}

func TestProgressService_UpdateProgress_StreakMilestone(t *testing.T) {
	svc, modules, _, _, module := newProgressFixture()

	// Seed six prior consecutive active days; today's update makes seven.
	now := time.Date(2026, 8, 24, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	for i := 1; i <= 6; i++ {
		day := now.AddDate(0, 0, -i)
		extra := domain.LearningModule{ID: uuid.New(), Technology: "Go", Title: "Filler"}
		modules.addModule(extra)
		modules.progress[progressKey("user-1", extra.ID)] = domain.ModuleProgress{
			ID:             uuid.New(),
			UserID:         "user-1",
			ModuleID:       extra.ID,
			Progress:       10,
			StartedAt:      day,
			LastAccessedAt: day,
		}
	}

	_, alerts, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 10)
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if types := alertTypes(alerts); !types[domain.AlertStreak] {
		t.Errorf("alerts = %v, want a 7-day streak alert", alerts)
	}
}

func TestProgressService_List(t *testing.T) {
	svc, _, _, _, module := newProgressFixture()

	if _, _, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, 40); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}

	list, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if list[0].Module.Title != "Go Basics" {
		t.Errorf("joined module title = %q, want Go Basics", list[0].Module.Title)
	}
}

func TestProgressService_ConcurrentUpdatesSameUser(t *testing.T) {
	svc, modules, _, _, module := newProgressFixture()

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(progress int) {
			_, _, err := svc.UpdateProgress(context.Background(), "user-1", module.ID, progress*10)
			done <- err
		}(i)
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent UpdateProgress() error = %v", err)
		}
	}

	if _, err := modules.GetProgress(context.Background(), "user-1", module.ID); err != nil {
		t.Errorf("progress record missing after concurrent updates: %v", err)
	}
}
