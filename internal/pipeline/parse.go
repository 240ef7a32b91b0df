package pipeline

import (
	"context"
	"strings"

	"github.com/jonathan/candidate-screener/internal/evaluators"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/types"
)

// ParseResumeOnly extracts and parses a resume without running the scoring stages
func (o *Orchestrator) ParseResumeOnly(ctx context.Context, resumeText string, hints types.ResumeHints) (*types.ParsedResume, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &ValidationError{Message: "resume text is required", Fields: []string{"resume_text"}}
	}

	extraction, _ := runStage(ctx, o, StageExtract, func(context.Context) (types.SkillsExtractionResult, error) {
		return o.extractor.Extract(resumeText), nil
	})

	in := evaluators.Input{
		Params: types.CandidateParams{
			CandidateName:  hints.Name,
			CandidateEmail: hints.Email,
			CandidatePhone: hints.Phone,
			ResumeText:     resumeText,
		},
		Extraction: &extraction,
	}
	parsed, err := o.parse(ctx, in, true)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// QuickSkillsEvaluation compares skill lists without calling the oracle
func (o *Orchestrator) QuickSkillsEvaluation(candidate, required, preferred []string) (*types.QuickSkillsResult, error) {
	return scoring.QuickSkillsEvaluation(candidate, required, preferred)
}
