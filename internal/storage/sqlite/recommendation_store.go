package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
)

// RecommendationStore persists scored module recommendations.
type RecommendationStore struct {
	db *DB
}

// NewRecommendationStore creates a new SQLite-backed recommendation store.
func NewRecommendationStore(db *DB) *RecommendationStore {
	return &RecommendationStore{db: db}
}

// DeleteForUser removes all of a user's recommendations (replace-on-refresh).
func (s *RecommendationStore) DeleteForUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM recommendations WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("delete recommendations: %w", err)
	}
	return nil
}

// Insert persists one recommendation.
func (s *RecommendationStore) Insert(ctx context.Context, r *domain.Recommendation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recommendations (id, user_id, module_id, score, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.UserID, r.ModuleID.String(), r.Score, r.Reason, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

// List returns a user's recommendations ordered by score descending.
func (s *RecommendationStore) List(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, module_id, score, reason, created_at
		FROM recommendations WHERE user_id = ?
		ORDER BY score DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []domain.Recommendation
	for rows.Next() {
		var r domain.Recommendation
		var id, moduleID string

		if err := rows.Scan(&id, &r.UserID, &moduleID, &r.Score, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse recommendation id: %w", err)
		}
		if r.ModuleID, err = uuid.Parse(moduleID); err != nil {
			return nil, fmt.Errorf("parse recommendation module id: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
