package tracker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/pathwayhq/pathway/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func TestProfileService_Get_NotFound(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore(), nil, testLogger())

	_, err := svc.Get(context.Background(), "user-1")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("Get() error = %v, want ErrProfileNotFound", err)
	}
}

func TestProfileService_Update_CreatesProfile(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store, nil, testLogger())

	p, err := svc.Update(context.Background(), "user-1", UpdateProfileRequest{
		Name:  strPtr("Ada"),
		Email: strPtr("ada@example.com"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if p.Name != "Ada" || p.Email != "ada@example.com" {
		t.Errorf("profile = %q/%q, want Ada/ada@example.com", p.Name, p.Email)
	}

	got, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get() after Update error = %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("persisted Name = %q, want Ada", got.Name)
	}
}

func TestProfileService_Update_PartialLeavesOtherFields(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store, nil, testLogger())

	if _, err := svc.Update(context.Background(), "user-1", UpdateProfileRequest{
		Name:      strPtr("Ada"),
		Education: strPtr("PhD"),
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	p, err := svc.Update(context.Background(), "user-1", UpdateProfileRequest{
		Email: strPtr("ada@example.com"),
	})
	if err != nil {
		t.Fatalf("second Update() error = %v", err)
	}
	if p.Name != "Ada" {
		t.Errorf("Name = %q, want Ada (unchanged)", p.Name)
	}
	if p.Education != "PhD" {
		t.Errorf("Education = %q, want PhD (unchanged)", p.Education)
	}
	if p.Email != "ada@example.com" {
		t.Errorf("Email = %q, want ada@example.com", p.Email)
	}
}

func TestProfileService_AnalyzeResume_EmptyText(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore(), nil, testLogger())

	_, err := svc.AnalyzeResume(context.Background(), "user-1", "   \n ")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("AnalyzeResume() error = %v, want ErrInvalidInput", err)
	}
}

func TestProfileService_AnalyzeResume_AIPath(t *testing.T) {
	provider := &stubProvider{content: `{
		"skills": [
			{"skill": "Go", "level": 85, "vectorScore": 0.85},
			{"skill": "Kubernetes", "level": 60, "vectorScore": 0.6}
		],
		"experience": "8 years backend",
		"education": "BSc Computer Science"
	}`}
	store := newFakeProfileStore()
	svc := NewProfileService(store, provider, testLogger())

	p, err := svc.AnalyzeResume(context.Background(), "user-1", "resume text")
	if err != nil {
		t.Fatalf("AnalyzeResume() error = %v", err)
	}

	if len(p.Skills) != 2 {
		t.Fatalf("len(Skills) = %d, want 2", len(p.Skills))
	}
	if p.Skills[0].Name != "Go" || p.Skills[0].Level != 85 {
		t.Errorf("Skills[0] = %v, want Go/85", p.Skills[0])
	}
	if p.Experience != "8 years backend" {
		t.Errorf("Experience = %q, want AI-extracted value", p.Experience)
	}
	if p.Education != "BSc Computer Science" {
		t.Errorf("Education = %q, want AI-extracted value", p.Education)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestProfileService_AnalyzeResume_FallbackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("provider down")}
	svc := NewProfileService(newFakeProfileStore(), provider, testLogger())

	p, err := svc.AnalyzeResume(context.Background(), "user-1", "Built services in Go with Docker and PostgreSQL")
	if err != nil {
		t.Fatalf("AnalyzeResume() error = %v, want degraded success", err)
	}

	if !p.HasSkills() {
		t.Fatal("expected keyword-matched skills on the fallback path")
	}
	for _, s := range p.Skills {
		if s.Level != 50 {
			t.Errorf("fallback skill %s level = %d, want 50", s.Name, s.Level)
		}
	}
	if _, ok := p.FindSkill("Go"); !ok {
		t.Error("expected Go among matched skills")
	}
	if _, ok := p.FindSkill("Docker"); !ok {
		t.Error("expected Docker among matched skills")
	}
}

func TestProfileService_AnalyzeResume_FallbackOnMalformedPayload(t *testing.T) {
	provider := &stubProvider{content: "sorry, I cannot help with that"}
	svc := NewProfileService(newFakeProfileStore(), provider, testLogger())

	p, err := svc.AnalyzeResume(context.Background(), "user-1", "Experienced with Python and Redis")
	if err != nil {
		t.Fatalf("AnalyzeResume() error = %v, want degraded success", err)
	}
	if _, ok := p.FindSkill("Python"); !ok {
		t.Error("expected Python among matched skills")
	}
}

func TestProfileService_AnalyzeResume_NilProviderUsesFallback(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore(), nil, testLogger())

	p, err := svc.AnalyzeResume(context.Background(), "user-1", "TypeScript and React developer")
	if err != nil {
		t.Fatalf("AnalyzeResume() error = %v", err)
	}
	if _, ok := p.FindSkill("React"); !ok {
		t.Error("expected React among matched skills")
	}
}

func TestProfileService_AnalyzeResume_MergeKeepsAssessedLevel(t *testing.T) {
	store := newFakeProfileStore()
	existing := domain.NewProfile("user-1")
	existing.RaiseSkill("Go", 90)
	if err := store.Save(context.Background(), existing); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	provider := &stubProvider{content: `{"skills":[{"skill":"Go","level":40,"vectorScore":0.4}],"experience":"","education":""}`}
	svc := NewProfileService(store, provider, testLogger())

	p, err := svc.AnalyzeResume(context.Background(), "user-1", "resume text")
	if err != nil {
		t.Fatalf("AnalyzeResume() error = %v", err)
	}

	s, ok := p.FindSkill("Go")
	if !ok {
		t.Fatal("Go skill missing after re-parse")
	}
	if s.Level != 90 {
		t.Errorf("Go level = %d, want 90 (re-parse never lowers an assessed level)", s.Level)
	}
}
