package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
)

func insertRecommendation(t *testing.T, store *RecommendationStore, userID string, moduleID uuid.UUID, score float64) {
	t.Helper()
	r := &domain.Recommendation{
		ID:        uuid.New(),
		UserID:    userID,
		ModuleID:  moduleID,
		Score:     score,
		Reason:    "fills a skill gap",
		CreatedAt: time.Now(),
	}
	if err := store.Insert(context.Background(), r); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
}

func TestRecommendationStore_InsertAndList(t *testing.T) {
	db := newTestDB(t)
	modules := NewModuleStore(db)
	store := NewRecommendationStore(db)
	ctx := context.Background()

	m1 := seedModule(t, modules, "Go", "Profiling")
	m2 := seedModule(t, modules, "SQL", "Window Functions")

	insertRecommendation(t, store, "user-1", m1.ID, 0.4)
	insertRecommendation(t, store, "user-1", m2.ID, 0.9)
	insertRecommendation(t, store, "user-2", m1.ID, 0.7)

	recs, err := store.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List() len = %d, want 2", len(recs))
	}
	// Descending by score
	if recs[0].Score != 0.9 || recs[1].Score != 0.4 {
		t.Errorf("scores = [%v, %v], want [0.9, 0.4]", recs[0].Score, recs[1].Score)
	}
}

func TestRecommendationStore_DuplicateModules(t *testing.T) {
	db := newTestDB(t)
	modules := NewModuleStore(db)
	store := NewRecommendationStore(db)

	m := seedModule(t, modules, "Go", "Profiling")

	// Two suggestions can legitimately point at the same module
	insertRecommendation(t, store, "user-1", m.ID, 0.5)
	insertRecommendation(t, store, "user-1", m.ID, 0.6)

	recs, err := store.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("List() len = %d, want 2 (duplicates preserved)", len(recs))
	}
}

func TestRecommendationStore_DeleteForUser(t *testing.T) {
	db := newTestDB(t)
	modules := NewModuleStore(db)
	store := NewRecommendationStore(db)
	ctx := context.Background()

	m := seedModule(t, modules, "Go", "Profiling")
	insertRecommendation(t, store, "user-1", m.ID, 0.5)
	insertRecommendation(t, store, "user-2", m.ID, 0.5)

	if err := store.DeleteForUser(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteForUser() error = %v", err)
	}

	recs, err := store.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("List() len = %d after delete, want 0", len(recs))
	}

	// Other users untouched
	recs, err = store.List(ctx, "user-2")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("other user's recommendations len = %d, want 1", len(recs))
	}
}
