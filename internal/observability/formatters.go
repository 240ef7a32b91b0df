package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/candidate-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer renders evaluation results as boxed summaries for the terminal
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", padRight(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", padRight(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// padRight truncates or pads s to exactly width runes
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// writeList writes up to limit items as bullets, noting how many were omitted
func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintOutcome outputs the result of one evaluation, successful or not
func (p *Printer) PrintOutcome(out types.Outcome) {
	if !out.Success {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Candidate: %s <%s>\n", out.CandidateName, out.CandidateEmail))
		if out.RecordID != nil {
			sb.WriteString(fmt.Sprintf("Record:    %s\n", out.RecordID))
		}
		sb.WriteString(fmt.Sprintf("Kind:      %s\n", out.ErrorKind))
		sb.WriteString(fmt.Sprintf("Error:     %s\n", out.Error))
		sb.WriteString(fmt.Sprintf("Time:      %dms", out.ProcessingTimeMs))
		p.printBox("EVALUATION FAILED", sb.String())
		if out.Result != nil {
			p.PrintEvaluation(out.CandidateName, out.Result)
		}
		return
	}
	if out.RecordID != nil {
		fmt.Fprintf(p.out, "Record ID: %s\n", out.RecordID) //nolint:errcheck // terminal output
	}
	p.PrintEvaluation(out.CandidateName, out.Result)
}

// PrintEvaluation outputs the scores, decision and specialist highlights of a result
func (p *Printer) PrintEvaluation(candidate string, result *types.EvaluationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate:   %s\n", candidate))
	sb.WriteString(fmt.Sprintf("Final score: %d/100\n", result.FinalScore))
	sb.WriteString(fmt.Sprintf("Decision:    %s (%s)\n", result.Decision, result.Status))
	sb.WriteString(fmt.Sprintf("Confidence:  %d%%\n", result.Confidence))
	if result.Degraded {
		sb.WriteString("Warning:     one or more analyses are degraded\n")
	}
	sb.WriteString("\n")

	sk := result.SkillsEvaluation
	sb.WriteString(fmt.Sprintf("Skills:      %3d  (overlap %d%%", sk.OverallScore, sk.OverlapScore))
	if sk.Reconciled {
		sb.WriteString(", reconciled")
	}
	sb.WriteString(")\n")
	sb.WriteString(fmt.Sprintf("Experience:  %3d  (%.1f relevant years)\n",
		result.ExperienceEvaluation.OverallScore, result.ExperienceEvaluation.RelevantExperienceYears))
	sb.WriteString(fmt.Sprintf("Culture fit: %3d\n", result.CulturalFitEvaluation.OverallScore))
	sb.WriteString("\n")

	writeList(&sb, "Matched required", sk.MatchedRequiredSkills, maxItemsToShow)
	writeList(&sb, "Missing required", sk.MissingRequiredSkills, maxItemsToShow)
	writeList(&sb, "Concerns", result.ExperienceEvaluation.Concerns, 3)

	p.printBox("CANDIDATE EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParsedResume outputs a human-readable summary of a parsed resume
func (p *Printer) PrintParsedResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", resume.Name))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", resume.Email))
	if resume.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:      %s\n", resume.Phone))
	}
	sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", resume.TotalExperienceYears))
	sb.WriteString("\n")

	skills := make([]string, 0, len(resume.Skills))
	for _, s := range resume.Skills {
		label := s.Name
		if s.Proficiency != "" && s.Proficiency != types.ProficiencyUnknown {
			label += fmt.Sprintf(" (%s)", s.Proficiency)
		}
		skills = append(skills, label)
	}
	writeList(&sb, "Skills", skills, maxItemsToShow*2)

	roles := make([]string, 0, len(resume.Experience))
	for _, e := range resume.Experience {
		roles = append(roles, fmt.Sprintf("%s @ %s", e.Title, e.Company))
	}
	writeList(&sb, "Roles", roles, maxItemsToShow)
	writeList(&sb, "Certifications", resume.Certifications, 3)

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuickSkills outputs a quick skills evaluation
func (p *Printer) PrintQuickSkills(result *types.QuickSkillsResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Required match: %d%%\n", result.RequiredMatchPercentage))
	sb.WriteString(fmt.Sprintf("Overall score:  %d/100\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Recommendation: %s\n", result.Recommendation))
	sb.WriteString("\n")
	writeList(&sb, "Matched required", result.MatchedRequired, maxItemsToShow)
	writeList(&sb, "Missing required", result.MissingRequired, maxItemsToShow)
	writeList(&sb, "Matched preferred", result.MatchedPreferred, maxItemsToShow)
	if result.Summary != "" {
		sb.WriteString(result.Summary)
	}

	p.printBox("QUICK SKILLS CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs one line per candidate followed by totals
func (p *Printer) PrintBatchSummary(outcomes []types.Outcome) {
	if len(outcomes) == 0 {
		return
	}

	var sb strings.Builder
	failures := 0
	for i, out := range outcomes {
		if out.Success {
			sb.WriteString(fmt.Sprintf("%2d. %-24s %3d  %s\n", i+1, out.CandidateName, out.Result.FinalScore, out.Result.Decision))
			continue
		}
		failures++
		sb.WriteString(fmt.Sprintf("%2d. %-24s  --  failed (%s)\n", i+1, out.CandidateName, out.ErrorKind))
	}
	sb.WriteString(fmt.Sprintf("\n%d evaluated, %d failed", len(outcomes)-failures, failures))

	p.printBox("BATCH RESULTS", sb.String())
}
