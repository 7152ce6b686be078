package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
)

// HackathonStore persists hackathons and their participants.
type HackathonStore struct {
	db *DB
}

// NewHackathonStore creates a new SQLite-backed hackathon store.
func NewHackathonStore(db *DB) *HackathonStore {
	return &HackathonStore{db: db}
}

// Save inserts or updates a hackathon.
func (s *HackathonStore) Save(ctx context.Context, h *domain.Hackathon) error {
	challenges, err := json.Marshal(h.Challenges)
	if err != nil {
		return fmt.Errorf("marshal challenges: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO hackathons (id, title, theme, starts_at, ends_at, challenges)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			theme=excluded.theme,
			starts_at=excluded.starts_at,
			ends_at=excluded.ends_at,
			challenges=excluded.challenges`,
		h.ID.String(), h.Title, h.Theme, h.StartsAt, h.EndsAt, string(challenges),
	)
	if err != nil {
		return fmt.Errorf("upsert hackathon: %w", err)
	}
	return nil
}

// Get retrieves a hackathon by id.
func (s *HackathonStore) Get(ctx context.Context, id uuid.UUID) (*domain.Hackathon, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, theme, starts_at, ends_at, challenges
		FROM hackathons WHERE id = ?`, id.String())

	h, err := scanHackathon(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHackathonNotFound
		}
		return nil, err
	}
	return h, nil
}

// List returns all hackathons ordered by start time descending.
func (s *HackathonStore) List(ctx context.Context) ([]domain.Hackathon, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, theme, starts_at, ends_at, challenges
		FROM hackathons ORDER BY starts_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}
	defer rows.Close()

	var hackathons []domain.Hackathon
	for rows.Next() {
		h, err := scanHackathon(rows.Scan)
		if err != nil {
			return nil, err
		}
		hackathons = append(hackathons, *h)
	}
	return hackathons, rows.Err()
}

// Join adds a user as participant. Joining twice returns ErrAlreadyJoined.
func (s *HackathonStore) Join(ctx context.Context, p *domain.HackathonParticipant) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hackathon_participants (hackathon_id, user_id, joined_at)
		VALUES (?, ?, ?)`,
		p.HackathonID.String(), p.UserID, p.JoinedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrAlreadyJoined
		}
		return fmt.Errorf("join hackathon: %w", err)
	}
	return nil
}

// Participants returns the user ids joined to a hackathon.
func (s *HackathonStore) Participants(ctx context.Context, hackathonID uuid.UUID) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id FROM hackathon_participants
		WHERE hackathon_id = ? ORDER BY joined_at`, hackathonID.String())
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func scanHackathon(scan func(...any) error) (*domain.Hackathon, error) {
	var h domain.Hackathon
	var id, challengesJSON string

	err := scan(&id, &h.Title, &h.Theme, &h.StartsAt, &h.EndsAt, &challengesJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan hackathon: %w", err)
	}

	if h.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse hackathon id: %w", err)
	}
	if err := json.Unmarshal([]byte(challengesJSON), &h.Challenges); err != nil {
		return nil, fmt.Errorf("unmarshal challenges: %w", err)
	}
	return &h, nil
}
