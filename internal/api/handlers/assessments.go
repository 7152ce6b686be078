package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/tracker"
)

// AssessmentHandler handles assessment endpoints
type AssessmentHandler struct {
	service *tracker.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(service *tracker.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

// GenerateAssessmentRequest is the request body for assessment generation
type GenerateAssessmentRequest struct {
	Technology string `json:"technology" validate:"required,max=100"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// CompleteAssessmentRequest is the request body for completing an assessment
type CompleteAssessmentRequest struct {
	Answers map[string]int `json:"answers" validate:"required"`
}

// QuestionResponse is a question as served to the taker: the correct answer
// and its explanation stay server-side until completion.
type QuestionResponse struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// AssessmentResponse represents an assessment in API responses
type AssessmentResponse struct {
	ID         string             `json:"id"`
	Technology string             `json:"technology"`
	Difficulty string             `json:"difficulty"`
	Questions  []QuestionResponse `json:"questions"`
	CreatedAt  string             `json:"created_at"`
}

func toAssessmentResponse(a *domain.Assessment) AssessmentResponse {
	questions := make([]QuestionResponse, 0, len(a.Questions))
	for _, q := range a.Questions {
		questions = append(questions, QuestionResponse{
			ID:       q.ID,
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return AssessmentResponse{
		ID:         a.ID.String(),
		Technology: a.Technology,
		Difficulty: string(a.Difficulty),
		Questions:  questions,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

// RecordResponse represents a completed assessment in API responses
type RecordResponse struct {
	ID             string `json:"id"`
	AssessmentID   string `json:"assessment_id"`
	Technology     string `json:"technology"`
	Difficulty     string `json:"difficulty"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalQuestions int    `json:"total_questions"`
	CompletedAt    string `json:"completed_at"`
}

func toRecordResponse(r *domain.AssessmentRecord) RecordResponse {
	return RecordResponse{
		ID:             r.ID.String(),
		AssessmentID:   r.AssessmentID.String(),
		Technology:     r.Technology,
		Difficulty:     string(r.Difficulty),
		Score:          r.Score,
		CorrectAnswers: r.CorrectAnswers,
		TotalQuestions: r.TotalQuestions,
		CompletedAt:    r.CompletedAt.Format(time.RFC3339),
	}
}

// Generate creates a new AI-generated assessment
func (h *AssessmentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req GenerateAssessmentRequest
	if !decodeValid(w, r, &req) {
		return
	}

	a, err := h.service.Generate(r.Context(), uid, req.Technology, domain.Difficulty(req.Difficulty))
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAssessmentResponse(a))
}

// Get returns one of the user's assessments
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid assessment id")
		return
	}

	a, err := h.service.Get(r.Context(), uid, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAssessmentResponse(a))
}

// Complete grades the submitted answers and returns the record
func (h *AssessmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid assessment id")
		return
	}

	var req CompleteAssessmentRequest
	if !decodeValid(w, r, &req) {
		return
	}

	record, err := h.service.Complete(r.Context(), uid, id, req.Answers)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(record))
}

// Records returns the user's completed assessments in chronological order
func (h *AssessmentHandler) Records(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	records, err := h.service.Records(r.Context(), uid)
	if err != nil {
		serviceError(w, err)
		return
	}

	response := make([]RecordResponse, 0, len(records))
	for i := range records {
		response = append(response, toRecordResponse(&records[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records": response,
		"total":   len(response),
	})
}
