package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pathwayhq/pathway/internal/catalog"
	"github.com/pathwayhq/pathway/internal/config"
	"github.com/pathwayhq/pathway/internal/llm"
	"github.com/pathwayhq/pathway/internal/queue"
	"github.com/pathwayhq/pathway/internal/storage/sqlite"
	"github.com/pathwayhq/pathway/internal/tracker"
)

// App holds all application dependencies
type App struct {
	Config *config.Config
	DB     *sqlite.DB
	Queue  *queue.Connection // nil when alert publishing is disabled
	LLM    *llm.Registry

	Profiles        *tracker.ProfileService
	Assessments     *tracker.AssessmentService
	Progress        *tracker.ProgressService
	Recommendations *tracker.RecommendationService
	Hackathons      *tracker.HackathonService
	Insights        *tracker.InsightsService
}

// NewApp creates a new application instance with all dependencies wired
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	profileStore := sqlite.NewProfileStore(db)
	assessmentStore := sqlite.NewAssessmentStore(db)
	moduleStore := sqlite.NewModuleStore(db)
	recommendationStore := sqlite.NewRecommendationStore(db)
	alertStore := sqlite.NewAlertStore(db)
	hackathonStore := sqlite.NewHackathonStore(db)

	// Seed the module catalog. A missing catalog directory is survivable:
	// the database may already hold modules from an earlier run.
	loader := catalog.NewLoader(cfg.CatalogPath)
	if seeded, err := loader.Seed(ctx, moduleStore); err != nil {
		slog.Warn("catalog seed failed", "path", cfg.CatalogPath, "error", err)
	} else if seeded > 0 {
		slog.Info("catalog seeded", "modules", seeded)
	}

	app.LLM = llm.NewRegistry()
	if err := initLLMProviders(app.LLM, cfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("init LLM providers: %w", err)
	}

	provider := resolveProvider(app.LLM, cfg)

	// Optional queue connection; Pathway runs fine without a broker.
	if cfg.RabbitMQURL != "" {
		conn, err := queue.NewConnection(cfg.RabbitMQURL)
		if err != nil {
			slog.Warn("queue unavailable, alert publishing disabled", "error", err)
		} else {
			app.Queue = conn
		}
	}
	publisher := queue.NewPublisher(app.Queue)

	logger := slog.Default()
	app.Profiles = tracker.NewProfileService(profileStore, provider, logger)
	app.Assessments = tracker.NewAssessmentService(assessmentStore, profileStore, provider, logger)
	app.Progress = tracker.NewProgressService(moduleStore, assessmentStore, alertStore, publisher, logger)
	app.Recommendations = tracker.NewRecommendationService(profileStore, assessmentStore, moduleStore, recommendationStore, provider, cfg.ReplaceRecommendations, logger)
	app.Hackathons = tracker.NewHackathonService(hackathonStore, provider, logger)
	app.Insights = tracker.NewInsightsService(profileStore, moduleStore, assessmentStore)

	return app, nil
}

// resolveProvider picks the default provider and wraps it with resilience
// patterns when any knob is enabled. A registry without providers yields
// nil: AI-backed operations report unavailability, resume analysis
// degrades to keyword matching.
func resolveProvider(registry *llm.Registry, cfg *config.Config) llm.Provider {
	provider, err := registry.Default()
	if err != nil {
		slog.Warn("no LLM provider available, AI operations degraded", "error", err)
		return nil
	}

	if cfg.LLMCircuitBreaker || cfg.LLMRetry || cfg.LLMRateLimit > 0 {
		provider = llm.NewResilientProvider(provider, llm.ResilientConfig{
			EnableCircuitBreaker: cfg.LLMCircuitBreaker,
			EnableRetry:          cfg.LLMRetry,
			EnableRateLimit:      cfg.LLMRateLimit > 0,
			RatePerSecond:        cfg.LLMRateLimit,
		})
	}
	return provider
}

// initLLMProviders sets up LLM providers based on configuration
func initLLMProviders(registry *llm.Registry, cfg *config.Config) error {
	switch cfg.LLMProvider {
	case "claude":
		if cfg.LLMAPIKey == "" {
			if cfg.Debug {
				return nil // degraded mode for local development
			}
			return fmt.Errorf("LLM_API_KEY required for claude provider")
		}
		registry.Register("claude", llm.NewClaudeProvider(llm.ClaudeConfig{
			APIKey: cfg.LLMAPIKey,
			Model:  cfg.LLMModel,
		}))
		return registry.SetDefault("claude")

	case "openai":
		if cfg.LLMAPIKey == "" {
			if cfg.Debug {
				return nil
			}
			return fmt.Errorf("LLM_API_KEY required for openai provider")
		}
		registry.Register("openai", llm.NewOpenAIProvider(llm.OpenAIConfig{
			APIKey: cfg.LLMAPIKey,
			Model:  cfg.LLMModel,
		}))
		return registry.SetDefault("openai")

	case "ollama":
		registry.Register("ollama", llm.NewOllamaProvider(llm.OllamaConfig{
			BaseURL: cfg.OllamaURL,
			Model:   cfg.LLMModel,
		}))
		return registry.SetDefault("ollama")

	default:
		return fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	if a.Queue != nil {
		if err := a.Queue.Close(); err != nil {
			slog.Warn("failed to close queue connection", "error", err)
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
