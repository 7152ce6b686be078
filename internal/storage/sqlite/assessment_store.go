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

// AssessmentStore persists assessment definitions and completed records.
type AssessmentStore struct {
	db *DB
}

// NewAssessmentStore creates a new SQLite-backed assessment store.
func NewAssessmentStore(db *DB) *AssessmentStore {
	return &AssessmentStore{db: db}
}

// SaveAssessment persists a generated assessment definition.
func (s *AssessmentStore) SaveAssessment(ctx context.Context, a *domain.Assessment) error {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, user_id, technology, difficulty, questions, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.UserID, a.Technology, string(a.Difficulty),
		string(questions), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// GetAssessment retrieves an assessment definition by id.
func (s *AssessmentStore) GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, technology, difficulty, questions, created_at
		FROM assessments WHERE id = ?`, id.String())

	var a domain.Assessment
	var idStr, difficulty, questionsJSON string

	err := row.Scan(&idStr, &a.UserID, &a.Technology, &difficulty, &questionsJSON, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("scan assessment: %w", err)
	}

	a.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse assessment id: %w", err)
	}
	a.Difficulty = domain.Difficulty(difficulty)
	if err := json.Unmarshal([]byte(questionsJSON), &a.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}

	return &a, nil
}

// SaveRecord persists an immutable completed-assessment record.
func (s *AssessmentStore) SaveRecord(ctx context.Context, r *domain.AssessmentRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assessment_records (id, user_id, assessment_id, technology,
			difficulty, score, correct_answers, total_questions, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.UserID, r.AssessmentID.String(), r.Technology,
		string(r.Difficulty), r.Score, r.CorrectAnswers, r.TotalQuestions, r.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assessment record: %w", err)
	}
	return nil
}

// HasRecord reports whether an assessment has already been completed.
func (s *AssessmentStore) HasRecord(ctx context.Context, assessmentID uuid.UUID) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assessment_records WHERE assessment_id = ?",
		assessmentID.String()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count records: %w", err)
	}
	return count > 0, nil
}

// ListRecords returns a user's completed-assessment records, oldest first.
func (s *AssessmentStore) ListRecords(ctx context.Context, userID string) ([]domain.AssessmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, assessment_id, technology, difficulty, score,
			correct_answers, total_questions, completed_at
		FROM assessment_records WHERE user_id = ?
		ORDER BY completed_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list assessment records: %w", err)
	}
	defer rows.Close()

	var records []domain.AssessmentRecord
	for rows.Next() {
		var r domain.AssessmentRecord
		var idStr, assessmentIDStr, difficulty string

		if err := rows.Scan(&idStr, &r.UserID, &assessmentIDStr, &r.Technology,
			&difficulty, &r.Score, &r.CorrectAnswers, &r.TotalQuestions, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan assessment record: %w", err)
		}

		if r.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("parse record id: %w", err)
		}
		if r.AssessmentID, err = uuid.Parse(assessmentIDStr); err != nil {
			return nil, fmt.Errorf("parse record assessment id: %w", err)
		}
		r.Difficulty = domain.Difficulty(difficulty)
		records = append(records, r)
	}
	return records, rows.Err()
}
