package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
)

// AlertStore persists stagnation and achievement alerts.
type AlertStore struct {
	db *DB
}

// NewAlertStore creates a new SQLite-backed alert store.
func NewAlertStore(db *DB) *AlertStore {
	return &AlertStore{db: db}
}

// Insert persists one alert.
func (s *AlertStore) Insert(ctx context.Context, a *domain.Alert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, user_id, type, message, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID.String(), a.UserID, string(a.Type), a.Message, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// List returns a user's alerts, newest first.
func (s *AlertStore) List(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, message, created_at
		FROM alerts WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var a domain.Alert
		var id, typ string

		if err := rows.Scan(&id, &a.UserID, &typ, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		if a.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse alert id: %w", err)
		}
		a.Type = domain.AlertType(typ)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
