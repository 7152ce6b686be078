package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/tracker"
)

// HackathonHandler handles hackathon endpoints
type HackathonHandler struct {
	service *tracker.HackathonService
}

// NewHackathonHandler creates a new hackathon handler
func NewHackathonHandler(service *tracker.HackathonService) *HackathonHandler {
	return &HackathonHandler{service: service}
}

// CreateHackathonRequest is the request body for creating a hackathon
type CreateHackathonRequest struct {
	Title    string    `json:"title" validate:"required,max=200"`
	Theme    string    `json:"theme" validate:"required,max=200"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required"`
}

// GenerateChallengesRequest is the request body for challenge generation
type GenerateChallengesRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=10"`
}

// HackathonResponse represents a hackathon in API responses
type HackathonResponse struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Theme      string             `json:"theme"`
	StartsAt   string             `json:"starts_at"`
	EndsAt     string             `json:"ends_at"`
	Active     bool               `json:"active"`
	Challenges []domain.Challenge `json:"challenges"`
}

func toHackathonResponse(h *domain.Hackathon) HackathonResponse {
	challenges := h.Challenges
	if challenges == nil {
		challenges = []domain.Challenge{}
	}
	return HackathonResponse{
		ID:         h.ID.String(),
		Title:      h.Title,
		Theme:      h.Theme,
		StartsAt:   h.StartsAt.Format(time.RFC3339),
		EndsAt:     h.EndsAt.Format(time.RFC3339),
		Active:     h.Active(time.Now()),
		Challenges: challenges,
	}
}

// List returns all hackathons, most recent first
func (h *HackathonHandler) List(w http.ResponseWriter, r *http.Request) {
	hackathons, err := h.service.List(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}

	response := make([]HackathonResponse, 0, len(hackathons))
	for i := range hackathons {
		response = append(response, toHackathonResponse(&hackathons[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"hackathons": response,
		"total":      len(response),
	})
}

// Get returns one hackathon
func (h *HackathonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid hackathon id")
		return
	}

	hackathon, err := h.service.Get(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHackathonResponse(hackathon))
}

// Create registers a new hackathon
func (h *HackathonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateHackathonRequest
	if !decodeValid(w, r, &req) {
		return
	}

	hackathon, err := h.service.Create(r.Context(), tracker.CreateHackathonRequest{
		Title:    req.Title,
		Theme:    req.Theme,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHackathonResponse(hackathon))
}

// Join registers the current user as a participant
func (h *HackathonHandler) Join(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid hackathon id")
		return
	}

	if err := h.service.Join(r.Context(), uid, id); err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "joined"})
}

// GenerateChallenges asks the AI collaborator for challenges and persists
// them on the hackathon
func (h *HackathonHandler) GenerateChallenges(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid hackathon id")
		return
	}

	var req GenerateChallengesRequest
	if !decodeValid(w, r, &req) {
		return
	}

	hackathon, err := h.service.GenerateChallenges(r.Context(), id, req.Count)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHackathonResponse(hackathon))
}
