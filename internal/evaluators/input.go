// Package evaluators implements the specialist stages that turn a resume and a job into partial judgments.
package evaluators

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
)

const (
	// Placeholder fills string fields the oracle left empty
	Placeholder = "Analysis not available"

	jobDescriptionLimit = 2000
	resumeTextLimit     = 12000

	notSpecified = "None specified"
)

// Input is everything a specialist may read
type Input struct {
	Params     types.CandidateParams
	Resume     *types.ParsedResume
	Extraction *types.SkillsExtractionResult
}

// CandidateSkillNames unions parsed-resume skills with extractor skills
func (in Input) CandidateSkillNames() []string {
	var extracted []string
	if in.Extraction != nil {
		extracted = in.Extraction.AllSkills
	}
	return skills.Union(in.Resume.SkillNames(), extracted)
}

// OverlapScore is the deterministic share of required skills the candidate covers
func (in Input) OverlapScore() int {
	return skills.CalculateOverlapScore(in.CandidateSkillNames(), in.Params.RequiredSkills)
}

// excerpt truncates s to limit runes
func excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func joinOr(items []string, fallback string) string {
	var kept []string
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return fallback
	}
	return strings.Join(kept, ", ")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

func formatYears(v float64) string {
	return fmt.Sprintf("%g", v)
}

func jobData(in Input) map[string]string {
	p := in.Params
	return map[string]string{
		"CandidateName":      p.CandidateName,
		"JobTitle":           p.JobTitle,
		"JobDescription":     excerpt(p.JobDescription, jobDescriptionLimit),
		"SeniorityLevel":     string(p.SeniorityLevel),
		"RequiredSkills":     joinOr(p.RequiredSkills, notSpecified),
		"PreferredSkills":    joinOr(p.PreferredSkills, notSpecified),
		"RequiredExperience": formatYears(p.RequiredExperience),
		"IndustryPreference": orDefault(p.IndustryPreference, notSpecified),
	}
}

func experienceSummary(r *types.ParsedResume) string {
	if r == nil || len(r.Experience) == 0 {
		return notSpecified
	}
	var sb strings.Builder
	for _, e := range r.Experience {
		sb.WriteString(fmt.Sprintf("- %s at %s", orDefault(e.Title, "Unknown role"), orDefault(e.Company, "Unknown company")))
		if e.StartDate != "" || e.EndDate != "" {
			sb.WriteString(fmt.Sprintf(" (%s - %s)", orDefault(e.StartDate, "?"), orDefault(e.EndDate, "present")))
		}
		if e.Description != "" {
			sb.WriteString(": " + e.Description)
		}
		sb.WriteString("\n")
		for _, h := range e.Highlights {
			sb.WriteString("  * " + h + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func educationSummary(r *types.ParsedResume) string {
	if r == nil || len(r.Education) == 0 {
		return notSpecified
	}
	lines := make([]string, 0, len(r.Education))
	for _, e := range r.Education {
		line := fmt.Sprintf("- %s, %s", orDefault(e.Degree, "Degree"), orDefault(e.Institution, "Unknown institution"))
		if e.Field != "" {
			line += " (" + e.Field + ")"
		}
		if e.GraduationYear != "" {
			line += " " + e.GraduationYear
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func skillDetails(r *types.ParsedResume) string {
	if r == nil || len(r.Skills) == 0 {
		return notSpecified
	}
	lines := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		var attrs []string
		if s.Proficiency != "" && s.Proficiency != types.ProficiencyUnknown {
			attrs = append(attrs, string(s.Proficiency))
		}
		if s.YearsOfExperience != nil {
			attrs = append(attrs, formatYears(*s.YearsOfExperience)+" years")
		}
		line := "- " + s.Name
		if len(attrs) > 0 {
			line += " (" + strings.Join(attrs, ", ") + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
