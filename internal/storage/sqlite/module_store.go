package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
)

// ModuleStore persists learning modules and per-user progress.
type ModuleStore struct {
	db *DB
}

// NewModuleStore creates a new SQLite-backed module store.
func NewModuleStore(db *DB) *ModuleStore {
	return &ModuleStore{db: db}
}

// UpsertModule inserts or updates a catalog module.
func (s *ModuleStore) UpsertModule(ctx context.Context, m *domain.LearningModule) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO learning_modules (id, technology, title, description, difficulty, duration_hours, rating)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			technology=excluded.technology,
			title=excluded.title,
			description=excluded.description,
			difficulty=excluded.difficulty,
			duration_hours=excluded.duration_hours,
			rating=excluded.rating`,
		m.ID.String(), m.Technology, m.Title, m.Description,
		string(m.Difficulty), m.DurationHours, m.Rating,
	)
	if err != nil {
		return fmt.Errorf("upsert module: %w", err)
	}
	return nil
}

// GetModule retrieves a catalog module by id.
func (s *ModuleStore) GetModule(ctx context.Context, id uuid.UUID) (*domain.LearningModule, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, technology, title, description, difficulty, duration_hours, rating
		FROM learning_modules WHERE id = ?`, id.String())

	m, err := scanModule(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrModuleNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListModules returns the full catalog ordered by technology then title.
func (s *ModuleStore) ListModules(ctx context.Context) ([]domain.LearningModule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, technology, title, description, difficulty, duration_hours, rating
		FROM learning_modules ORDER BY technology, title`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var modules []domain.LearningModule
	for rows.Next() {
		m, err := scanModule(rows.Scan)
		if err != nil {
			return nil, err
		}
		modules = append(modules, *m)
	}
	return modules, rows.Err()
}

// SaveProgress inserts or updates a user's progress on a module.
func (s *ModuleStore) SaveProgress(ctx context.Context, p *domain.ModuleProgress) error {
	var completedAt sql.NullTime
	if p.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *p.CompletedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO module_progress (id, user_id, module_id, progress, started_at, last_accessed_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, module_id) DO UPDATE SET
			progress=excluded.progress,
			last_accessed_at=excluded.last_accessed_at,
			completed_at=excluded.completed_at`,
		p.ID.String(), p.UserID, p.ModuleID.String(), p.Progress,
		p.StartedAt, p.LastAccessedAt, completedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// GetProgress retrieves a user's progress record for one module.
func (s *ModuleStore) GetProgress(ctx context.Context, userID string, moduleID uuid.UUID) (*domain.ModuleProgress, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, module_id, progress, started_at, last_accessed_at, completed_at
		FROM module_progress WHERE user_id = ? AND module_id = ?`,
		userID, moduleID.String())

	p, err := scanProgress(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListProgress returns all of a user's progress records pre-joined with
// their module metadata, as the analytics layer consumes them.
func (s *ModuleStore) ListProgress(ctx context.Context, userID string) ([]domain.ProgressWithModule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT mp.id, mp.user_id, mp.module_id, mp.progress,
			mp.started_at, mp.last_accessed_at, mp.completed_at,
			m.id, m.technology, m.title, m.description, m.difficulty, m.duration_hours, m.rating
		FROM module_progress mp
		JOIN learning_modules m ON m.id = mp.module_id
		WHERE mp.user_id = ?
		ORDER BY mp.last_accessed_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var result []domain.ProgressWithModule
	for rows.Next() {
		var pw domain.ProgressWithModule
		var pID, mpModuleID, mID, mpDifficulty string
		var completedAt sql.NullTime

		if err := rows.Scan(&pID, &pw.UserID, &mpModuleID, &pw.Progress,
			&pw.StartedAt, &pw.LastAccessedAt, &completedAt,
			&mID, &pw.Module.Technology, &pw.Module.Title, &pw.Module.Description,
			&mpDifficulty, &pw.Module.DurationHours, &pw.Module.Rating); err != nil {
			return nil, fmt.Errorf("scan progress join: %w", err)
		}

		if pw.ID, err = uuid.Parse(pID); err != nil {
			return nil, fmt.Errorf("parse progress id: %w", err)
		}
		if pw.ModuleID, err = uuid.Parse(mpModuleID); err != nil {
			return nil, fmt.Errorf("parse progress module id: %w", err)
		}
		if pw.Module.ID, err = uuid.Parse(mID); err != nil {
			return nil, fmt.Errorf("parse module id: %w", err)
		}
		pw.Module.Difficulty = domain.Difficulty(mpDifficulty)
		if completedAt.Valid {
			t := completedAt.Time
			pw.CompletedAt = &t
		}

		result = append(result, pw)
	}
	return result, rows.Err()
}

// CountCompleted returns how many modules the user has finished.
func (s *ModuleStore) CountCompleted(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM module_progress WHERE user_id = ? AND completed_at IS NOT NULL",
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completed: %w", err)
	}
	return count, nil
}

func scanModule(scan func(...any) error) (*domain.LearningModule, error) {
	var m domain.LearningModule
	var id, difficulty string

	err := scan(&id, &m.Technology, &m.Title, &m.Description, &difficulty,
		&m.DurationHours, &m.Rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan module: %w", err)
	}

	if m.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse module id: %w", err)
	}
	m.Difficulty = domain.Difficulty(difficulty)
	return &m, nil
}

func scanProgress(scan func(...any) error) (*domain.ModuleProgress, error) {
	var p domain.ModuleProgress
	var id, moduleID string
	var completedAt sql.NullTime

	err := scan(&id, &p.UserID, &moduleID, &p.Progress,
		&p.StartedAt, &p.LastAccessedAt, &completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan progress: %w", err)
	}

	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse progress id: %w", err)
	}
	if p.ModuleID, err = uuid.Parse(moduleID); err != nil {
		return nil, fmt.Errorf("parse progress module id: %w", err)
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	return &p, nil
}
