package tracker

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/llm"
)

// In-memory store fakes. Each embeds an optional forced error so failure
// paths can be exercised without a real database.

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	err      error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]domain.Profile)}
}

func (f *fakeProfileStore) Save(_ context.Context, p *domain.Profile) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.UserID] = *p
	return nil
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	out := p
	return &out, nil
}

type fakeAssessmentStore struct {
	mu          sync.Mutex
	assessments map[uuid.UUID]domain.Assessment
	records     []domain.AssessmentRecord
	err         error
}

func newFakeAssessmentStore() *fakeAssessmentStore {
	return &fakeAssessmentStore{assessments: make(map[uuid.UUID]domain.Assessment)}
}

func (f *fakeAssessmentStore) SaveAssessment(_ context.Context, a *domain.Assessment) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assessments[a.ID] = *a
	return nil
}

func (f *fakeAssessmentStore) GetAssessment(_ context.Context, id uuid.UUID) (*domain.Assessment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assessments[id]
	if !ok {
		return nil, domain.ErrAssessmentNotFound
	}
	out := a
	return &out, nil
}

func (f *fakeAssessmentStore) SaveRecord(_ context.Context, r *domain.AssessmentRecord) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeAssessmentStore) HasRecord(_ context.Context, assessmentID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.AssessmentID == assessmentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssessmentStore) ListRecords(_ context.Context, userID string) ([]domain.AssessmentRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AssessmentRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}

type fakeModuleStore struct {
	mu       sync.Mutex
	modules  map[uuid.UUID]domain.LearningModule
	progress map[string]domain.ModuleProgress // userID + moduleID
	err      error
}

func newFakeModuleStore() *fakeModuleStore {
	return &fakeModuleStore{
		modules:  make(map[uuid.UUID]domain.LearningModule),
		progress: make(map[string]domain.ModuleProgress),
	}
}

func (f *fakeModuleStore) addModule(m domain.LearningModule) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modules[m.ID] = m
}

func progressKey(userID string, moduleID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", userID, moduleID)
}

func (f *fakeModuleStore) GetModule(_ context.Context, id uuid.UUID) (*domain.LearningModule, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.modules[id]
	if !ok {
		return nil, domain.ErrModuleNotFound
	}
	out := m
	return &out, nil
}

func (f *fakeModuleStore) ListModules(_ context.Context) ([]domain.LearningModule, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.LearningModule, 0, len(f.modules))
	for _, m := range f.modules {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeModuleStore) SaveProgress(_ context.Context, p *domain.ModuleProgress) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress[progressKey(p.UserID, p.ModuleID)] = *p
	return nil
}

func (f *fakeModuleStore) GetProgress(_ context.Context, userID string, moduleID uuid.UUID) (*domain.ModuleProgress, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.progress[progressKey(userID, moduleID)]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	out := p
	return &out, nil
}

func (f *fakeModuleStore) ListProgress(_ context.Context, userID string) ([]domain.ProgressWithModule, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ProgressWithModule
	for _, p := range f.progress {
		if p.UserID != userID {
			continue
		}
		out = append(out, domain.ProgressWithModule{
			ModuleProgress: p,
			Module:         f.modules[p.ModuleID],
		})
	}
	return out, nil
}

func (f *fakeModuleStore) CountCompleted(_ context.Context, userID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, p := range f.progress {
		if p.UserID == userID && p.CompletedAt != nil {
			count++
		}
	}
	return count, nil
}

type fakeRecommendationStore struct {
	mu   sync.Mutex
	recs []domain.Recommendation
	err  error
}

func (f *fakeRecommendationStore) DeleteForUser(_ context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.recs[:0]
	for _, r := range f.recs {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	f.recs = kept
	return nil
}

func (f *fakeRecommendationStore) Insert(_ context.Context, r *domain.Recommendation) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, *r)
	return nil
}

func (f *fakeRecommendationStore) List(_ context.Context, userID string) ([]domain.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Recommendation
	for _, r := range f.recs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

type fakeAlertStore struct {
	mu     sync.Mutex
	alerts []domain.Alert
	err    error
}

func (f *fakeAlertStore) Insert(_ context.Context, a *domain.Alert) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, *a)
	return nil
}

func (f *fakeAlertStore) List(_ context.Context, userID string, limit int) ([]domain.Alert, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Alert
	for _, a := range f.alerts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeHackathonStore struct {
	mu           sync.Mutex
	hackathons   map[uuid.UUID]domain.Hackathon
	participants map[string]bool // hackathonID + userID
	err          error
}

func newFakeHackathonStore() *fakeHackathonStore {
	return &fakeHackathonStore{
		hackathons:   make(map[uuid.UUID]domain.Hackathon),
		participants: make(map[string]bool),
	}
}

func (f *fakeHackathonStore) Save(_ context.Context, h *domain.Hackathon) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hackathons[h.ID] = *h
	return nil
}

func (f *fakeHackathonStore) Get(_ context.Context, id uuid.UUID) (*domain.Hackathon, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hackathons[id]
	if !ok {
		return nil, domain.ErrHackathonNotFound
	}
	out := h
	return &out, nil
}

func (f *fakeHackathonStore) List(_ context.Context) ([]domain.Hackathon, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Hackathon, 0, len(f.hackathons))
	for _, h := range f.hackathons {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHackathonStore) Join(_ context.Context, p *domain.HackathonParticipant) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := p.HackathonID.String() + "/" + p.UserID
	if f.participants[key] {
		return domain.ErrAlreadyJoined
	}
	f.participants[key] = true
	return nil
}

// stubProvider returns canned content or a fixed error.
type stubProvider struct {
	content string
	err     error
	calls   int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(_ context.Context, _ *llm.Request) (*llm.Response, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &llm.Response{Content: p.content}, nil
}

// fakePublisher records published alerts and can be forced to fail.
type fakePublisher struct {
	mu        sync.Mutex
	published []domain.Alert
	err       error
}

func (f *fakePublisher) Enabled() bool { return true }

func (f *fakePublisher) PublishAlert(_ context.Context, alert domain.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, alert)
	return nil
}
