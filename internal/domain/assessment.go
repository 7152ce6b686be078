package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty levels for assessments and learning modules.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ValidDifficulty reports whether d is one of the known levels.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Question is a single multiple-choice question in a generated assessment.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Assessment is an AI-generated question set for a technology at a
// difficulty level. The definition is immutable once generated.
type Assessment struct {
	ID         uuid.UUID
	UserID     string
	Technology string
	Difficulty Difficulty
	Questions  []Question
	CreatedAt  time.Time
}

// NewAssessment creates an assessment definition.
func NewAssessment(userID, technology string, difficulty Difficulty, questions []Question) *Assessment {
	return &Assessment{
		ID:         uuid.New(),
		UserID:     userID,
		Technology: technology,
		Difficulty: difficulty,
		Questions:  questions,
		CreatedAt:  time.Now(),
	}
}

// Grade scores the given answers against the assessment's questions and
// returns the immutable result record. Answers are indexes into Options;
// missing answers count as wrong.
func (a *Assessment) Grade(userID string, answers map[string]int, completedAt time.Time) AssessmentRecord {
	correct := 0
	for _, q := range a.Questions {
		if idx, ok := answers[q.ID]; ok && idx == q.CorrectAnswer {
			correct++
		}
	}
	score := 0
	if len(a.Questions) > 0 {
		score = correct * 100 / len(a.Questions)
	}
	return AssessmentRecord{
		ID:             uuid.New(),
		UserID:         userID,
		AssessmentID:   a.ID,
		Technology:     a.Technology,
		Difficulty:     a.Difficulty,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: len(a.Questions),
		CompletedAt:    completedAt,
	}
}

// AssessmentRecord is the immutable outcome of a completed assessment.
type AssessmentRecord struct {
	ID             uuid.UUID
	UserID         string
	AssessmentID   uuid.UUID
	Technology     string
	Difficulty     Difficulty
	Score          int // 0-100
	CorrectAnswers int
	TotalQuestions int
	CompletedAt    time.Time
}
