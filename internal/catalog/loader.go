package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
	"gopkg.in/yaml.v3"
)

// CatalogFile represents the YAML structure for a catalog seed file
type CatalogFile struct {
	Modules []ModuleEntry `yaml:"modules"`
}

// ModuleEntry represents a single learning module in a seed file
type ModuleEntry struct {
	ID            string  `yaml:"id"`
	Technology    string  `yaml:"technology"`
	Title         string  `yaml:"title"`
	Description   string  `yaml:"description"`
	Difficulty    string  `yaml:"difficulty"`
	DurationHours int     `yaml:"duration_hours"`
	Rating        float64 `yaml:"rating"`
}

// ModuleStore is the subset of the module store the seeder needs.
type ModuleStore interface {
	UpsertModule(ctx context.Context, m *domain.LearningModule) error
}

// Loader handles loading learning modules from YAML seed files
type Loader struct {
	basePath string
}

// NewLoader creates a new catalog loader
func NewLoader(basePath string) *Loader {
	return &Loader{basePath: basePath}
}

// LoadFile loads and validates a single catalog file
func (l *Loader) LoadFile(path string) ([]domain.LearningModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	modules := make([]domain.LearningModule, 0, len(file.Modules))
	for i, entry := range file.Modules {
		m, err := entry.toModule()
		if err != nil {
			return nil, fmt.Errorf("module %d in %s: %w", i, filepath.Base(path), err)
		}
		modules = append(modules, m)
	}

	return modules, nil
}

// LoadAll loads every *.yaml file in the base directory
func (l *Loader) LoadAll() ([]domain.LearningModule, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("read catalog directory: %w", err)
	}

	var modules []domain.LearningModule
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		loaded, err := l.LoadFile(filepath.Join(l.basePath, name))
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", name, err)
		}
		modules = append(modules, loaded...)
	}

	return modules, nil
}

// Seed loads the full catalog and upserts every module into the store.
// Returns the number of modules seeded.
func (l *Loader) Seed(ctx context.Context, store ModuleStore) (int, error) {
	modules, err := l.LoadAll()
	if err != nil {
		return 0, err
	}

	for i := range modules {
		if err := store.UpsertModule(ctx, &modules[i]); err != nil {
			return i, fmt.Errorf("seed module %s: %w", modules[i].Title, err)
		}
	}

	return len(modules), nil
}

func (e ModuleEntry) toModule() (domain.LearningModule, error) {
	if strings.TrimSpace(e.Technology) == "" {
		return domain.LearningModule{}, fmt.Errorf("technology is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return domain.LearningModule{}, fmt.Errorf("title is required")
	}
	if e.DurationHours < 1 {
		return domain.LearningModule{}, fmt.Errorf("duration_hours must be >= 1, got %d", e.DurationHours)
	}
	if e.Rating < 0 || e.Rating > 5 {
		return domain.LearningModule{}, fmt.Errorf("rating must be in [0,5], got %v", e.Rating)
	}

	difficulty := domain.Difficulty(e.Difficulty)
	if e.Difficulty == "" {
		difficulty = domain.DifficultyIntermediate
	} else if !domain.ValidDifficulty(difficulty) {
		return domain.LearningModule{}, fmt.Errorf("unknown difficulty %q", e.Difficulty)
	}

	id := uuid.New()
	if e.ID != "" {
		parsed, err := uuid.Parse(e.ID)
		if err != nil {
			return domain.LearningModule{}, fmt.Errorf("invalid module id %q: %w", e.ID, err)
		}
		id = parsed
	}

	return domain.LearningModule{
		ID:            id,
		Technology:    e.Technology,
		Title:         e.Title,
		Description:   e.Description,
		Difficulty:    difficulty,
		DurationHours: e.DurationHours,
		Rating:        e.Rating,
	}, nil
}
