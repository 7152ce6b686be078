package handlers

import (
	"net/http"
	"time"

	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/tracker"
)

// RecommendationHandler handles recommendation endpoints
type RecommendationHandler struct {
	service *tracker.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service *tracker.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// RecommendationResponse represents a recommendation in API responses
type RecommendationResponse struct {
	ID        string  `json:"id"`
	ModuleID  string  `json:"module_id"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
	CreatedAt string  `json:"created_at"`
}

func toRecommendationResponse(r *domain.Recommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:        r.ID.String(),
		ModuleID:  r.ModuleID.String(),
		Score:     r.Score,
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// List returns the user's stored recommendations, highest score first
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	recs, err := h.service.List(r.Context(), uid)
	if err != nil {
		serviceError(w, err)
		return
	}

	response := make([]RecommendationResponse, 0, len(recs))
	for i := range recs {
		response = append(response, toRecommendationResponse(&recs[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": response,
		"total":           len(response),
	})
}

// Refresh regenerates the user's recommendation set
func (h *RecommendationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	recs, err := h.service.Refresh(r.Context(), uid)
	if err != nil {
		serviceError(w, err)
		return
	}

	response := make([]RecommendationResponse, 0, len(recs))
	for i := range recs {
		response = append(response, toRecommendationResponse(&recs[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": response,
		"total":           len(response),
	})
}
