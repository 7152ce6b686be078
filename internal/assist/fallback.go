package assist

import (
	"strings"

	"github.com/pathwayhq/pathway/internal/domain"
)

// fallbackSkillLevel is assigned to skills found by plain text matching,
// since no real proficiency signal is available on this path.
const fallbackSkillLevel = 50

// commonSkills is the fixed list substring-matched against resume text when
// the AI collaborator is unavailable. Availability over AI dependency is an
// explicit choice for resume parsing only; every other AI path fails hard.
var commonSkills = []string{
	"JavaScript", "TypeScript", "Python", "Java", "Go", "Rust", "C++", "C#",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Terraform",
	"Git", "CI/CD", "Linux", "GraphQL", "REST", "gRPC",
	"Machine Learning", "Data Analysis",
}

// MatchCommonSkills scans resume text for well-known skill names. This is
// the degraded path used when AI-based resume analysis fails.
func MatchCommonSkills(resumeText string) []domain.Skill {
	lower := strings.ToLower(resumeText)

	var skills []domain.Skill
	for _, name := range commonSkills {
		if strings.Contains(lower, strings.ToLower(name)) {
			skills = append(skills, domain.NewSkill(name, fallbackSkillLevel))
		}
	}
	return skills
}
