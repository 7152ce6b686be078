package handlers

import (
	"net/http"

	"github.com/pathwayhq/pathway/internal/tracker"
)

// InsightsHandler handles the analytics dashboard endpoints
type InsightsHandler struct {
	service *tracker.InsightsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(service *tracker.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// Dashboard returns the aggregated analytics view
func (h *InsightsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	d, err := h.service.Dashboard(r.Context(), uid)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// Streak returns the current consecutive-day learning streak
func (h *InsightsHandler) Streak(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	streak, err := h.service.Streak(r.Context(), uid)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"streak_days": streak})
}

// Gaps returns the user's skill gaps, largest first
func (h *InsightsHandler) Gaps(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	gaps, err := h.service.Gaps(r.Context(), uid)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"skill_gaps": gaps,
		"total":      len(gaps),
	})
}

// Trends returns the per-technology score trends
func (h *InsightsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	trends, err := h.service.Trends(r.Context(), uid)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"trends": trends,
		"total":  len(trends),
	})
}
