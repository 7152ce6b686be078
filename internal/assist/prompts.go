package assist

import (
	"fmt"
	"strings"

	"github.com/pathwayhq/pathway/internal/analytics"
	"github.com/pathwayhq/pathway/internal/domain"
)

// System prompts keep the model in strict-JSON mode; all parsers reject
// anything that does not decode.
const (
	resumeSystemPrompt      = "You are a technical recruiter. Respond with JSON only, no prose."
	assessmentSystemPrompt  = "You are a technical interviewer. Respond with JSON only, no prose."
	challengesSystemPrompt  = "You are a hackathon organizer. Respond with JSON only, no prose."
	suggestionsSystemPrompt = "You are a learning advisor. Respond with JSON only, no prose."
)

// BuildResumePrompt asks for a skill inventory extracted from resume text.
func BuildResumePrompt(resumeText string) (system, prompt string) {
	var b strings.Builder
	b.WriteString("Analyze the following resume and extract technical skills.\n")
	b.WriteString("Return JSON: {\"skills\":[{\"skill\":string,\"level\":0-100,\"vectorScore\":0.0-1.0}],")
	b.WriteString("\"experience\":string,\"education\":string}\n\nResume:\n")
	b.WriteString(resumeText)
	return resumeSystemPrompt, b.String()
}

// BuildAssessmentPrompt asks for a multiple-choice question set.
func BuildAssessmentPrompt(technology string, difficulty domain.Difficulty, count int) (system, prompt string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d %s-level multiple-choice questions about %s.\n", count, difficulty, technology)
	b.WriteString("Each question has exactly 4 options and one correct answer index (0-3).\n")
	b.WriteString("Return JSON: {\"questions\":[{\"id\":string,\"question\":string,\"options\":[4 strings],")
	b.WriteString("\"correctAnswer\":0-3,\"explanation\":string}]}")
	return assessmentSystemPrompt, b.String()
}

// BuildChallengesPrompt asks for hackathon challenges around a theme.
func BuildChallengesPrompt(theme string, count int) (system, prompt string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d hackathon challenges for the theme %q.\n", count, theme)
	b.WriteString("Return JSON: {\"challenges\":[{\"id\":string,\"title\":string,\"description\":string,")
	b.WriteString("\"requirements\":[strings],\"points\":int}]}")
	return challengesSystemPrompt, b.String()
}

// BuildSuggestionsPrompt asks for prioritized learning suggestions given the
// user's current skills, gaps and derived preferences.
func BuildSuggestionsPrompt(skills []domain.Skill, gaps []analytics.SkillGap, pattern analytics.LearningPattern) (system, prompt string) {
	var b strings.Builder
	b.WriteString("Suggest technologies this user should learn next, with priorities.\n\nCurrent skills:\n")
	for _, s := range skills {
		fmt.Fprintf(&b, "- %s: %d/100\n", s.Name, s.Level)
	}
	if len(gaps) > 0 {
		b.WriteString("\nWeakest areas (largest gap first):\n")
		for _, g := range gaps {
			fmt.Fprintf(&b, "- %s (gap %.2f)\n", g.Skill, g.GapScore)
		}
	}
	fmt.Fprintf(&b, "\nPreferred difficulty: %s. Preferred module duration: %d hours.\n",
		pattern.PreferredDifficulty, pattern.PreferredDuration)
	b.WriteString("\nReturn JSON: {\"recommendations\":[{\"technology\":string,\"reason\":string,\"priority\":0-100}]}")
	return suggestionsSystemPrompt, b.String()
}
