package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
)

// ProfileStore implements profile persistence backed by SQLite.
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new SQLite-backed profile store.
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Save persists a profile (insert or update, keyed by user id).
func (s *ProfileStore) Save(ctx context.Context, p *domain.Profile) error {
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, name, email, experience, education, skills, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name=excluded.name,
			email=excluded.email,
			experience=excluded.experience,
			education=excluded.education,
			skills=excluded.skills,
			updated_at=excluded.updated_at`,
		p.ID.String(), p.UserID, p.Name, p.Email, p.Experience, p.Education,
		string(skills), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// GetByUserID retrieves a profile by the owning user's id.
func (s *ProfileStore) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, email, experience, education, skills, updated_at
		FROM profiles WHERE user_id = ?`, userID)

	return scanProfile(row)
}

// Delete removes a user's profile.
func (s *ProfileStore) Delete(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	var p domain.Profile
	var id, skillsJSON string

	err := row.Scan(&id, &p.UserID, &p.Name, &p.Email, &p.Experience,
		&p.Education, &skillsJSON, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse profile id: %w", err)
	}
	if err := json.Unmarshal([]byte(skillsJSON), &p.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}

	return &p, nil
}
