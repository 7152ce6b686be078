package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/tracker"
)

// ProgressHandler handles the module catalog, progress and alert endpoints
type ProgressHandler struct {
	service *tracker.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(service *tracker.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// ModuleResponse represents a learning module in API responses
type ModuleResponse struct {
	ID            string  `json:"id"`
	Technology    string  `json:"technology"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Difficulty    string  `json:"difficulty"`
	DurationHours int     `json:"duration_hours"`
	Rating        float64 `json:"rating"`
}

func toModuleResponse(m *domain.LearningModule) ModuleResponse {
	return ModuleResponse{
		ID:            m.ID.String(),
		Technology:    m.Technology,
		Title:         m.Title,
		Description:   m.Description,
		Difficulty:    string(m.Difficulty),
		DurationHours: m.DurationHours,
		Rating:        m.Rating,
	}
}

// ProgressResponse represents a progress record joined with its module
type ProgressResponse struct {
	ID             string         `json:"id"`
	Module         ModuleResponse `json:"module"`
	Progress       int            `json:"progress"`
	StartedAt      string         `json:"started_at"`
	LastAccessedAt string         `json:"last_accessed_at"`
	CompletedAt    *string        `json:"completed_at,omitempty"`
}

func toProgressResponse(p *domain.ModuleProgress, m *domain.LearningModule) ProgressResponse {
	resp := ProgressResponse{
		ID:             p.ID.String(),
		Module:         toModuleResponse(m),
		Progress:       p.Progress,
		StartedAt:      p.StartedAt.Format(time.RFC3339),
		LastAccessedAt: p.LastAccessedAt.Format(time.RFC3339),
	}
	if p.CompletedAt != nil {
		s := p.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	return resp
}

// AlertResponse represents an alert in API responses
type AlertResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func toAlertResponse(a *domain.Alert) AlertResponse {
	return AlertResponse{
		ID:        a.ID.String(),
		Type:      string(a.Type),
		Message:   a.Message,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

// UpdateProgressRequest is the request body for a progress update
type UpdateProgressRequest struct {
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

// ListModules returns the learning-module catalog
func (h *ProgressHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.service.Modules(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}

	response := make([]ModuleResponse, 0, len(modules))
	for i := range modules {
		response = append(response, toModuleResponse(&modules[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"modules": response,
		"total":   len(response),
	})
}

// ListProgress returns the user's progress, most recently touched first
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	list, err := h.service.List(r.Context(), uid)
	if err != nil {
		serviceError(w, err)
		return
	}

	response := make([]ProgressResponse, 0, len(list))
	for i := range list {
		response = append(response, toProgressResponse(&list[i].ModuleProgress, &list[i].Module))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"progress": response,
		"total":    len(response),
	})
}

// UpdateProgress upserts the user's progress on a module and returns the
// record together with any alerts the update raised
func (h *ProgressHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	moduleID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid module id")
		return
	}

	var req UpdateProgressRequest
	if !decodeValid(w, r, &req) {
		return
	}

	p, alerts, err := h.service.UpdateProgress(r.Context(), uid, moduleID, *req.Progress)
	if err != nil {
		serviceError(w, err)
		return
	}

	alertResponse := make([]AlertResponse, 0, len(alerts))
	for i := range alerts {
		alertResponse = append(alertResponse, toAlertResponse(&alerts[i]))
	}

	completedAt := (*string)(nil)
	if p.CompletedAt != nil {
		s := p.CompletedAt.Format(time.RFC3339)
		completedAt = &s
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"progress": map[string]any{
			"id":               p.ID.String(),
			"module_id":        p.ModuleID.String(),
			"progress":         p.Progress,
			"started_at":       p.StartedAt.Format(time.RFC3339),
			"last_accessed_at": p.LastAccessedAt.Format(time.RFC3339),
			"completed_at":     completedAt,
		},
		"alerts": alertResponse,
	})
}

// ListAlerts returns the user's most recent alerts
func (h *ProgressHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	alerts, err := h.service.Alerts(r.Context(), uid, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	response := make([]AlertResponse, 0, len(alerts))
	for i := range alerts {
		response = append(response, toAlertResponse(&alerts[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"alerts": response,
		"total":  len(response),
	})
}
