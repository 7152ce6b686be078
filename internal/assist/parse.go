package assist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pathwayhq/pathway/internal/analytics"
	"github.com/pathwayhq/pathway/internal/domain"
)

// ResumeSkill is one extracted skill from resume analysis.
type ResumeSkill struct {
	Skill       string  `json:"skill"`
	Level       int     `json:"level"`
	VectorScore float64 `json:"vectorScore"`
}

// ResumeAnalysis is the payload shape for resume parsing.
type ResumeAnalysis struct {
	Skills     []ResumeSkill `json:"skills"`
	Experience string        `json:"experience"`
	Education  string        `json:"education"`
}

// ParseResumeAnalysis decodes a resume-analysis payload. Only the presence
// of the skills array is enforced; anything else is taken as-is.
func ParseResumeAnalysis(text string) (*ResumeAnalysis, error) {
	var payload ResumeAnalysis
	if err := decode(text, &payload); err != nil {
		return nil, err
	}
	if payload.Skills == nil {
		return nil, fmt.Errorf("%w: missing skills array", domain.ErrMalformedAIResponse)
	}
	return &payload, nil
}

// DomainSkills converts extracted resume skills to domain skills with
// levels clamped to range.
func (r *ResumeAnalysis) DomainSkills() []domain.Skill {
	skills := make([]domain.Skill, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, domain.NewSkill(s.Skill, s.Level))
	}
	return skills
}

type assessmentPayload struct {
	Questions []struct {
		ID            string   `json:"id"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
	} `json:"questions"`
}

// ParseQuestions decodes a generated assessment payload into domain
// questions. Only the presence of the questions array is enforced.
func ParseQuestions(text string) ([]domain.Question, error) {
	var payload assessmentPayload
	if err := decode(text, &payload); err != nil {
		return nil, err
	}
	if payload.Questions == nil {
		return nil, fmt.Errorf("%w: missing questions array", domain.ErrMalformedAIResponse)
	}

	questions := make([]domain.Question, 0, len(payload.Questions))
	for i, q := range payload.Questions {
		id := q.ID
		if id == "" {
			id = fmt.Sprintf("q%d", i+1)
		}
		questions = append(questions, domain.Question{
			ID:            id,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return questions, nil
}

type challengesPayload struct {
	Challenges []domain.Challenge `json:"challenges"`
}

// ParseChallenges decodes a hackathon-challenges payload.
func ParseChallenges(text string) ([]domain.Challenge, error) {
	var payload challengesPayload
	if err := decode(text, &payload); err != nil {
		return nil, err
	}
	if payload.Challenges == nil {
		return nil, fmt.Errorf("%w: missing challenges array", domain.ErrMalformedAIResponse)
	}
	return payload.Challenges, nil
}

type suggestionsPayload struct {
	Recommendations []analytics.Suggestion `json:"recommendations"`
}

// ParseSuggestions decodes a learning-suggestions payload.
func ParseSuggestions(text string) ([]analytics.Suggestion, error) {
	var payload suggestionsPayload
	if err := decode(text, &payload); err != nil {
		return nil, err
	}
	if payload.Recommendations == nil {
		return nil, fmt.Errorf("%w: missing recommendations array", domain.ErrMalformedAIResponse)
	}
	return payload.Recommendations, nil
}

// decode strips markdown fences the model may wrap around the payload and
// unmarshals it. Undecodable JSON is a hard failure.
func decode(text string, v any) error {
	cleaned := extractJSON(text)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedAIResponse, err)
	}
	return nil
}

// extractJSON trims code fences and any prose around the outermost JSON
// object.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
