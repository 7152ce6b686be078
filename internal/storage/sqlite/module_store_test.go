package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
)

func seedModule(t *testing.T, store *ModuleStore, technology, title string) domain.LearningModule {
	t.Helper()
	m := domain.LearningModule{
		ID:            uuid.New(),
		Technology:    technology,
		Title:         title,
		Difficulty:    domain.DifficultyIntermediate,
		DurationHours: 4,
		Rating:        4.5,
	}
	if err := store.UpsertModule(context.Background(), &m); err != nil {
		t.Fatalf("UpsertModule() error = %v", err)
	}
	return m
}

func TestModuleStore_UpsertAndList(t *testing.T) {
	db := newTestDB(t)
	store := NewModuleStore(db)
	ctx := context.Background()

	m := seedModule(t, store, "Go", "Concurrency Patterns")
	seedModule(t, store, "Docker", "Container Basics")

	modules, err := store.ListModules(ctx)
	if err != nil {
		t.Fatalf("ListModules() error = %v", err)
	}
	if len(modules) != 2 {
		t.Fatalf("ListModules() len = %d, want 2", len(modules))
	}
	// Ordered by technology: Docker before Go
	if modules[0].Technology != "Docker" {
		t.Errorf("modules[0].Technology = %v, want Docker", modules[0].Technology)
	}

	// Upsert updates in place
	m.Rating = 3.0
	if err := store.UpsertModule(ctx, &m); err != nil {
		t.Fatalf("UpsertModule() update error = %v", err)
	}
	got, err := store.GetModule(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetModule() error = %v", err)
	}
	if got.Rating != 3.0 {
		t.Errorf("Rating = %v, want 3.0", got.Rating)
	}
}

func TestModuleStore_GetMissing(t *testing.T) {
	db := newTestDB(t)
	store := NewModuleStore(db)

	_, err := store.GetModule(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrModuleNotFound) {
		t.Errorf("GetModule() error = %v, want ErrModuleNotFound", err)
	}
}

func TestModuleStore_Progress(t *testing.T) {
	db := newTestDB(t)
	store := NewModuleStore(db)
	ctx := context.Background()
	now := time.Now()

	m := seedModule(t, store, "Go", "Generics")

	p := domain.NewModuleProgress("user-1", m.ID, now)
	p.SetProgress(40, now)
	if err := store.SaveProgress(ctx, p); err != nil {
		t.Fatalf("SaveProgress() error = %v", err)
	}

	got, err := store.GetProgress(ctx, "user-1", m.ID)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if got.Progress != 40 {
		t.Errorf("Progress = %d, want 40", got.Progress)
	}
	if got.CompletedAt != nil {
		t.Error("CompletedAt should be nil below 100")
	}

	// Complete it; the upsert keys on (user, module)
	p.SetProgress(100, now.Add(time.Hour))
	if err := store.SaveProgress(ctx, p); err != nil {
		t.Fatalf("SaveProgress() completion error = %v", err)
	}

	got, err = store.GetProgress(ctx, "user-1", m.ID)
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if got.Progress != 100 {
		t.Errorf("Progress = %d, want 100", got.Progress)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt should be set at 100")
	}

	count, err := store.CountCompleted(ctx, "user-1")
	if err != nil {
		t.Fatalf("CountCompleted() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountCompleted() = %d, want 1", count)
	}
}

func TestModuleStore_GetProgressMissing(t *testing.T) {
	db := newTestDB(t)
	store := NewModuleStore(db)

	_, err := store.GetProgress(context.Background(), "user-1", uuid.New())
	if !errors.Is(err, domain.ErrProgressNotFound) {
		t.Errorf("GetProgress() error = %v, want ErrProgressNotFound", err)
	}
}

func TestModuleStore_ListProgress_Joined(t *testing.T) {
	db := newTestDB(t)
	store := NewModuleStore(db)
	ctx := context.Background()
	now := time.Now()

	m1 := seedModule(t, store, "Go", "Testing")
	m2 := seedModule(t, store, "Kubernetes", "Networking")

	p1 := domain.NewModuleProgress("user-1", m1.ID, now.Add(-time.Hour))
	p1.SetProgress(60, now.Add(-time.Hour))
	p2 := domain.NewModuleProgress("user-1", m2.ID, now)
	p2.SetProgress(20, now)
	other := domain.NewModuleProgress("user-2", m1.ID, now)

	for _, p := range []*domain.ModuleProgress{p1, p2, other} {
		if err := store.SaveProgress(ctx, p); err != nil {
			t.Fatalf("SaveProgress() error = %v", err)
		}
	}

	list, err := store.ListProgress(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListProgress() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListProgress() len = %d, want 2", len(list))
	}

	// Newest touch first, and module metadata joined in
	if list[0].ModuleID != m2.ID {
		t.Errorf("list[0].ModuleID = %v, want %v", list[0].ModuleID, m2.ID)
	}
	if list[0].Module.Technology != "Kubernetes" {
		t.Errorf("joined Technology = %v, want Kubernetes", list[0].Module.Technology)
	}
	if list[0].Module.DurationHours != 4 {
		t.Errorf("joined DurationHours = %d, want 4", list[0].Module.DurationHours)
	}
}
