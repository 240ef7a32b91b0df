package evaluators

import (
	"context"
	"fmt"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Specialist is one oracle-backed stage described as data
type Specialist[T any] struct {
	Role      string
	SystemKey string
	TaskKey   string
	Schema    string
	Options   llm.Options
	// Data supplies values for the task prompt placeholders
	Data func(Input) map[string]string
	// Normalize turns the untrusted oracle document into a well-formed result
	Normalize func(map[string]any) T
	// Finalize applies deterministic post-processing; optional
	Finalize func(T, Input) T
}

// Prompts renders the system and task prompts for in
func (s Specialist[T]) Prompts(in Input) (string, string, error) {
	system, err := prompts.Get(prompts.EvaluationFile, s.SystemKey)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", s.Role, err)
	}
	task, err := prompts.Render(prompts.EvaluationFile, s.TaskKey, s.Data(in))
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", s.Role, err)
	}
	return system, task, nil
}

// Run calls the oracle and returns the normalized result
func (s Specialist[T]) Run(ctx context.Context, client llm.Client, in Input) (T, error) {
	var zero T

	system, task, err := s.Prompts(in)
	if err != nil {
		return zero, err
	}

	doc, err := llm.CompleteJSON[map[string]any](ctx, client, system, []llm.Message{llm.UserMessage(task)}, s.Options, s.Schema)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", s.Role, err)
	}

	out := s.Normalize(doc)
	if s.Finalize != nil {
		out = s.Finalize(out, in)
	}
	return out, nil
}

// Set bundles the four specialists used by the pipeline
type Set struct {
	Parser      Specialist[types.ParsedResume]
	Skills      Specialist[types.SkillsEvaluation]
	Experience  Specialist[types.ExperienceEvaluation]
	CulturalFit Specialist[types.CulturalFitEvaluation]
}

// DefaultSet builds the standard specialists; catalog resolves categories of parsed skills
func DefaultSet(catalog *skills.Catalog) Set {
	return Set{
		Parser:      ResumeParser(catalog),
		Skills:      SkillsSpecialist(),
		Experience:  ExperienceSpecialist(),
		CulturalFit: CulturalFitSpecialist(),
	}
}
