package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Skill represents a single named competency on a user's profile.
// Level is on a 0-100 scale; NormalizedScore mirrors it on 0.0-1.0.
type Skill struct {
	Name            string  `json:"name"`
	Level           int     `json:"level"`
	NormalizedScore float64 `json:"normalized_score"`
}

// NewSkill creates a skill with the level clamped and the normalized
// score derived from it.
func NewSkill(name string, level int) Skill {
	level = ClampLevel(level)
	return Skill{
		Name:            name,
		Level:           level,
		NormalizedScore: float64(level) / 100.0,
	}
}

// ClampLevel bounds a skill level to the 0-100 scale.
func ClampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// Profile holds a user's identity and skill set.
type Profile struct {
	ID         uuid.UUID
	UserID     string
	Name       string
	Email      string
	Experience string
	Education  string
	Skills     []Skill
	UpdatedAt  time.Time
}

// NewProfile creates an empty profile for a user.
func NewProfile(userID string) *Profile {
	return &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		UpdatedAt: time.Now(),
	}
}

// HasSkills reports whether the profile carries at least one skill.
func (p *Profile) HasSkills() bool {
	return len(p.Skills) > 0
}

// FindSkill returns the skill with the given name (case-insensitive).
func (p *Profile) FindSkill(name string) (Skill, bool) {
	for _, s := range p.Skills {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Skill{}, false
}

// RaiseSkill raises the named skill to the given level if it exceeds the
// current one; the level never decreases from completing an assessment.
// A skill that does not exist yet is added.
func (p *Profile) RaiseSkill(name string, level int) {
	level = ClampLevel(level)
	for i, s := range p.Skills {
		if strings.EqualFold(s.Name, name) {
			if level > s.Level {
				p.Skills[i] = NewSkill(s.Name, level)
				p.UpdatedAt = time.Now()
			}
			return
		}
	}
	p.Skills = append(p.Skills, NewSkill(name, level))
	p.UpdatedAt = time.Now()
}

// ReplaceSkills swaps the entire skill set, merging levels for skills that
// already exist so a resume re-parse never lowers an assessed level.
func (p *Profile) ReplaceSkills(skills []Skill) {
	merged := make([]Skill, 0, len(skills))
	for _, s := range skills {
		level := ClampLevel(s.Level)
		if prior, ok := p.FindSkill(s.Name); ok && prior.Level > level {
			level = prior.Level
		}
		merged = append(merged, NewSkill(s.Name, level))
	}
	p.Skills = merged
	p.UpdatedAt = time.Now()
}
