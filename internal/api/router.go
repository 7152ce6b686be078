package api

import (
	"net/http"
	"time"

	"github.com/pathwayhq/pathway/internal/api/handlers"
	"github.com/pathwayhq/pathway/internal/api/middleware"
)

// Router wraps the HTTP multiplexer with middleware and handlers
type Router struct {
	mux     *http.ServeMux
	app     *App
	aiLimit func(http.HandlerFunc) http.HandlerFunc

	profile         *handlers.ProfileHandler
	assessments     *handlers.AssessmentHandler
	progress        *handlers.ProgressHandler
	recommendations *handlers.RecommendationHandler
	insights        *handlers.InsightsHandler
	hackathons      *handlers.HackathonHandler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(app *App) http.Handler {
	r := &Router{
		mux: http.NewServeMux(),
		app: app,
	}

	rateCfg := middleware.DefaultRateLimitConfig()
	if app.Config.Debug {
		// No throttling while developing locally.
		r.aiLimit = func(next http.HandlerFunc) http.HandlerFunc { return next }
	} else {
		r.aiLimit = middleware.AIRateLimit(rateCfg)
	}

	r.profile = handlers.NewProfileHandler(app.Profiles)
	r.assessments = handlers.NewAssessmentHandler(app.Assessments)
	r.progress = handlers.NewProgressHandler(app.Progress)
	r.recommendations = handlers.NewRecommendationHandler(app.Recommendations)
	r.insights = handlers.NewInsightsHandler(app.Insights)
	r.hackathons = handlers.NewHackathonHandler(app.Hackathons)

	r.registerRoutes()

	return r.buildMiddlewareChain(r.mux)
}

func (r *Router) registerRoutes() {
	// Health check
	r.mux.HandleFunc("GET /health", r.handleHealth)
	r.mux.HandleFunc("GET /ready", r.handleReady)

	// Profile
	r.mux.HandleFunc("GET /api/v1/profile", r.requireUser(r.profile.Get))
	r.mux.HandleFunc("PUT /api/v1/profile", r.requireUser(r.profile.Update))
	r.mux.HandleFunc("POST /api/v1/profile/resume", r.requireUser(r.aiLimit(r.profile.AnalyzeResume)))

	// Assessments
	r.mux.HandleFunc("POST /api/v1/assessments", r.requireUser(r.aiLimit(r.assessments.Generate)))
	r.mux.HandleFunc("GET /api/v1/assessments/records", r.requireUser(r.assessments.Records))
	r.mux.HandleFunc("GET /api/v1/assessments/{id}", r.requireUser(r.assessments.Get))
	r.mux.HandleFunc("POST /api/v1/assessments/{id}/complete", r.requireUser(r.assessments.Complete))

	// Modules and progress
	r.mux.HandleFunc("GET /api/v1/modules", r.progress.ListModules)
	r.mux.HandleFunc("GET /api/v1/progress", r.requireUser(r.progress.ListProgress))
	r.mux.HandleFunc("PUT /api/v1/modules/{id}/progress", r.requireUser(r.progress.UpdateProgress))

	// Recommendations
	r.mux.HandleFunc("GET /api/v1/recommendations", r.requireUser(r.recommendations.List))
	r.mux.HandleFunc("POST /api/v1/recommendations/refresh", r.requireUser(r.aiLimit(r.recommendations.Refresh)))

	// Alerts
	r.mux.HandleFunc("GET /api/v1/alerts", r.requireUser(r.progress.ListAlerts))

	// Analytics
	r.mux.HandleFunc("GET /api/v1/analytics/dashboard", r.requireUser(r.insights.Dashboard))
	r.mux.HandleFunc("GET /api/v1/analytics/streak", r.requireUser(r.insights.Streak))
	r.mux.HandleFunc("GET /api/v1/analytics/gaps", r.requireUser(r.insights.Gaps))
	r.mux.HandleFunc("GET /api/v1/analytics/trends", r.requireUser(r.insights.Trends))

	// Hackathons
	r.mux.HandleFunc("GET /api/v1/hackathons", r.hackathons.List)
	r.mux.HandleFunc("POST /api/v1/hackathons", r.requireUser(r.hackathons.Create))
	r.mux.HandleFunc("GET /api/v1/hackathons/{id}", r.hackathons.Get)
	r.mux.HandleFunc("POST /api/v1/hackathons/{id}/join", r.requireUser(r.hackathons.Join))
	r.mux.HandleFunc("POST /api/v1/hackathons/{id}/challenges", r.requireUser(r.aiLimit(r.hackathons.GenerateChallenges)))
}

func (r *Router) buildMiddlewareChain(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last applied = first executed)
	handler = middleware.Recovery(handler)
	handler = middleware.Logger(handler)

	// Skip rate limiting in debug mode for easier development
	if !r.app.Config.Debug {
		handler = middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig())(handler)
	}

	handler = middleware.RequestID(handler)
	handler = middleware.CORS(handler)

	return handler
}

// requireUser extracts the caller identity from the X-User-ID header.
// Authentication proper is handled upstream; the service trusts the header
// the same way it would trust a gateway-injected subject claim.
func (r *Router) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		uid := req.Header.Get("X-User-ID")
		if uid == "" {
			Unauthorized(w, req, "X-User-ID header required")
			return
		}

		next(w, req.WithContext(handlers.WithUserID(req.Context(), uid)))
	}
}

// Health check handlers
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *Router) handleReady(w http.ResponseWriter, req *http.Request) {
	checks := map[string]string{
		"database": "healthy",
	}

	if err := r.app.DB.PingContext(req.Context()); err != nil {
		checks["database"] = "unhealthy"
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not ready",
			"checks": checks,
		})
		return
	}

	if r.app.Queue != nil {
		if r.app.Queue.IsConnected() {
			checks["queue"] = "healthy"
		} else {
			checks["queue"] = "reconnecting"
		}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"checks": checks,
	})
}
