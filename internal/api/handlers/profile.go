package handlers

import (
	"net/http"
	"time"

	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/tracker"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	service *tracker.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *tracker.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Experience string         `json:"experience"`
	Education  string         `json:"education"`
	Skills     []domain.Skill `json:"skills"`
	UpdatedAt  string         `json:"updated_at"`
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []domain.Skill{}
	}
	return ProfileResponse{
		ID:         p.ID.String(),
		UserID:     p.UserID,
		Name:       p.Name,
		Email:      p.Email,
		Experience: p.Experience,
		Education:  p.Education,
		Skills:     skills,
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
}

// UpdateProfileRequest is the request body for profile updates. Absent
// fields are left unchanged.
type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Experience *string `json:"experience,omitempty" validate:"omitempty,max=5000"`
	Education  *string `json:"education,omitempty" validate:"omitempty,max=5000"`
}

// AnalyzeResumeRequest is the request body for resume analysis
type AnalyzeResumeRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
}

// Get returns the current user's profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	p, err := h.service.Get(r.Context(), uid)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// Update applies a partial profile update, creating the profile on first use
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req UpdateProfileRequest
	if !decodeValid(w, r, &req) {
		return
	}

	p, err := h.service.Update(r.Context(), uid, tracker.UpdateProfileRequest{
		Name:       req.Name,
		Email:      req.Email,
		Experience: req.Experience,
		Education:  req.Education,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// AnalyzeResume extracts skills from resume text and updates the profile
func (h *ProfileHandler) AnalyzeResume(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req AnalyzeResumeRequest
	if !decodeValid(w, r, &req) {
		return
	}

	p, err := h.service.AnalyzeResume(r.Context(), uid, req.ResumeText)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}
