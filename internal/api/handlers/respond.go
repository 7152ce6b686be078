// Package handlers implements the HTTP endpoint handlers. Each handler
// owns request decoding, validation and the mapping from service errors to
// status codes; all orchestration lives in internal/tracker.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/tracker"
)

type contextKey string

// ContextKeyUserID carries the authenticated user id, set by the router's
// requireUser wrapper from the X-User-ID header.
const ContextKeyUserID contextKey = "user_id"

// validate is shared across handlers; validator instances cache struct
// metadata, so one per process.
var validate = validator.New(validator.WithRequiredStructEnabled())

// userID returns the authenticated user id from the request context.
func userID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(ContextKeyUserID).(string)
	return id, ok && id != ""
}

// WithUserID stores the user id on a context; used by the router wrapper
// and by handler tests.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, id)
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]apiError{"error": {Code: code, Message: message}})
}

// decodeValid decodes the JSON body into req and runs struct validation.
// An empty body decodes to the zero request, so endpoints whose fields are
// all optional accept bodyless POSTs; required-field validation still
// rejects it elsewhere. A false return means the error response has
// already been written.
func decodeValid(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[strings.ToLower(fe.Field())] = fe.Tag()
			}
			writeJSON(w, http.StatusBadRequest, map[string]apiError{"error": {
				Code:    "VALIDATION_FAILED",
				Message: "request validation failed",
				Details: details,
			}})
			return false
		}
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request")
		return false
	}
	return true
}

// serviceError maps service-layer sentinels onto status codes and writes
// the envelope. Unrecognized errors become opaque 500s.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrAssessmentNotFound),
		errors.Is(err, domain.ErrModuleNotFound),
		errors.Is(err, domain.ErrProgressNotFound),
		errors.Is(err, domain.ErrHackathonNotFound),
		errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())

	case errors.Is(err, domain.ErrAssessmentAlreadyComplete),
		errors.Is(err, domain.ErrAlreadyJoined),
		errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())

	case errors.Is(err, domain.ErrNoSkills):
		writeError(w, http.StatusUnprocessableEntity, "NO_SKILLS", "profile has no skills yet; analyze a resume or complete an assessment first")

	case errors.Is(err, domain.ErrMalformedAIResponse):
		writeError(w, http.StatusBadGateway, "AI_MALFORMED_RESPONSE", "the AI collaborator returned an unusable response")

	case errors.Is(err, tracker.ErrAIUnavailable):
		writeError(w, http.StatusServiceUnavailable, "AI_UNAVAILABLE", "no AI provider is configured")

	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "TIMEOUT", "the operation timed out")

	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
	}
}
