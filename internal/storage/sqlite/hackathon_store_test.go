package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
)

func seedHackathon(t *testing.T, store *HackathonStore) *domain.Hackathon {
	t.Helper()
	h := &domain.Hackathon{
		ID:       uuid.New(),
		Title:    "Cloud Native Sprint",
		Theme:    "observability",
		StartsAt: time.Now().Add(-time.Hour),
		EndsAt:   time.Now().Add(48 * time.Hour),
	}
	if err := store.Save(context.Background(), h); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return h
}

func TestHackathonStore_SaveAndGet(t *testing.T) {
	db := newTestDB(t)
	store := NewHackathonStore(db)
	ctx := context.Background()

	h := seedHackathon(t, store)

	got, err := store.Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Cloud Native Sprint" {
		t.Errorf("Title = %v, want Cloud Native Sprint", got.Title)
	}
	if len(got.Challenges) != 0 {
		t.Errorf("Challenges len = %d, want 0", len(got.Challenges))
	}

	// Update with generated challenges
	h.Challenges = []domain.Challenge{
		{ID: "c1", Title: "Trace it", Points: 100, Requirements: []string{"otel"}},
	}
	if err := store.Save(ctx, h); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}

	got, err = store.Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Challenges) != 1 || got.Challenges[0].Points != 100 {
		t.Errorf("Challenges = %+v, want one 100-point challenge", got.Challenges)
	}
}

func TestHackathonStore_GetMissing(t *testing.T) {
	db := newTestDB(t)
	store := NewHackathonStore(db)

	_, err := store.Get(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrHackathonNotFound) {
		t.Errorf("Get() error = %v, want ErrHackathonNotFound", err)
	}
}

func TestHackathonStore_Join(t *testing.T) {
	db := newTestDB(t)
	store := NewHackathonStore(db)
	ctx := context.Background()

	h := seedHackathon(t, store)

	p := &domain.HackathonParticipant{
		HackathonID: h.ID,
		UserID:      "user-1",
		JoinedAt:    time.Now(),
	}
	if err := store.Join(ctx, p); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	// Second join of the same user is a conflict
	if err := store.Join(ctx, p); !errors.Is(err, domain.ErrAlreadyJoined) {
		t.Errorf("second Join() error = %v, want ErrAlreadyJoined", err)
	}

	participants, err := store.Participants(ctx, h.ID)
	if err != nil {
		t.Fatalf("Participants() error = %v", err)
	}
	if len(participants) != 1 || participants[0] != "user-1" {
		t.Errorf("Participants() = %v, want [user-1]", participants)
	}
}

func TestHackathonStore_List(t *testing.T) {
	db := newTestDB(t)
	store := NewHackathonStore(db)

	seedHackathon(t, store)
	seedHackathon(t, store)

	list, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("List() len = %d, want 2", len(list))
	}
}
