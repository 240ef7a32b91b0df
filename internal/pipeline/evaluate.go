package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/evaluators"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/types"
)

// EvaluateCandidate runs the full pipeline for one candidate and persists the result
func (o *Orchestrator) EvaluateCandidate(ctx context.Context, params types.CandidateParams) types.Outcome {
	start := time.Now()
	defer o.observer.Started()()

	if err := o.validateParams(params); err != nil {
		return o.finish(failed(params, err, nil), start)
	}

	o.logger.Info("evaluating candidate",
		zap.String("candidate", params.CandidateName),
		zap.String("job_title", params.JobTitle),
	)

	result, err := o.evaluate(ctx, params, true, start)
	if err != nil {
		return o.finish(failed(params, err, nil), start)
	}

	id, err := runStage(ctx, o, StagePersist, func(ctx context.Context) (uuid.UUID, error) {
		return o.store.Save(ctx, db.NewRecord(params, *result))
	})
	if err != nil {
		return o.finish(failed(params, err, result), start)
	}

	return o.finish(succeeded(params, result, id), start)
}

// evaluate computes a fresh result without persisting it
func (o *Orchestrator) evaluate(ctx context.Context, params types.CandidateParams, useCache bool, start time.Time) (*types.EvaluationResult, error) {
	extraction, _ := runStage(ctx, o, StageExtract, func(context.Context) (types.SkillsExtractionResult, error) {
		return o.extractor.Extract(params.ResumeText), nil
	})

	in := evaluators.Input{Params: params, Extraction: &extraction}

	parsed, err := o.parse(ctx, in, useCache)
	if err != nil {
		return nil, err
	}
	in.Resume = &parsed

	skillsEval, experienceEval, culturalEval, err := o.runSpecialists(ctx, in)
	if err != nil {
		return nil, err
	}

	synth := scoring.Synthesize(skillsEval, experienceEval, culturalEval, scoring.Options{
		Weights:              o.cfg.Weights,
		HasRequiredSkills:    hasRequired(params.RequiredSkills),
		OverlapScore:         skillsEval.OverlapScore,
		ExtractionConfidence: extraction.Confidence,
	})

	return &types.EvaluationResult{
		ParsedResume:          parsed,
		SkillsEvaluation:      skillsEval,
		ExperienceEvaluation:  experienceEval,
		CulturalFitEvaluation: culturalEval,
		FinalScore:            synth.FinalScore,
		Decision:              synth.Decision,
		Confidence:            synth.Confidence,
		Status:                synth.Status,
		ProcessingTimeMs:      time.Since(start).Milliseconds(),
		Degraded:              synth.Degraded,
		ExtractionConfidence:  extraction.Confidence,
		EvaluatedAt:           o.now().UTC(),
	}, nil
}

// parse runs the resume parser, consulting the parse cache when allowed
func (o *Orchestrator) parse(ctx context.Context, in evaluators.Input, useCache bool) (types.ParsedResume, error) {
	key := parseKey(in.Params.ResumeText, in.Params.Hints())
	if useCache {
		if cached, ok := o.cache.Get(key); ok {
			o.logger.Debug("parse cache hit", zap.String("candidate", in.Params.CandidateName))
			return cached, nil
		}
	}

	parsed, err := runStage(ctx, o, StageParse, func(ctx context.Context) (types.ParsedResume, error) {
		return o.specialists.Parser.Run(ctx, o.client, in)
	})
	if err != nil {
		return types.ParsedResume{}, err
	}
	o.cache.Set(key, parsed)
	return parsed, nil
}

// runSpecialists runs the three judgments, each into its own slot
func (o *Orchestrator) runSpecialists(ctx context.Context, in evaluators.Input) (types.SkillsEvaluation, types.ExperienceEvaluation, types.CulturalFitEvaluation, error) {
	var (
		skillsEval     types.SkillsEvaluation
		experienceEval types.ExperienceEvaluation
		culturalEval   types.CulturalFitEvaluation
	)

	g, gctx := errgroup.WithContext(ctx)
	if !o.cfg.ConcurrentSpecialists {
		g.SetLimit(1)
	}

	g.Go(func() error {
		var err error
		skillsEval, err = runSpecialist(gctx, o, StageSkills, o.specialists.Skills, in, evaluators.DegradedSkills)
		return err
	})
	g.Go(func() error {
		var err error
		experienceEval, err = runSpecialist(gctx, o, StageExperience, o.specialists.Experience, in, evaluators.DegradedExperience)
		return err
	})
	g.Go(func() error {
		var err error
		culturalEval, err = runSpecialist(gctx, o, StageCulturalFit, o.specialists.CulturalFit, in, evaluators.DegradedCulturalFit)
		return err
	})

	if err := g.Wait(); err != nil {
		return types.SkillsEvaluation{}, types.ExperienceEvaluation{}, types.CulturalFitEvaluation{}, err
	}
	return skillsEval, experienceEval, culturalEval, nil
}

// runSpecialist applies the failure policy to one specialist stage
func runSpecialist[T any](ctx context.Context, o *Orchestrator, stage string, s evaluators.Specialist[T], in evaluators.Input, degraded func(evaluators.Input) T) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	out, err := runStage(ctx, o, stage, func(ctx context.Context) (T, error) {
		return s.Run(ctx, o.client, in)
	})
	if err == nil {
		return out, nil
	}
	if o.cfg.FailurePolicy == PolicyDegrade {
		o.logger.Warn("using degraded result", zap.String("stage", stage), zap.Error(err))
		return degraded(in), nil
	}
	var zero T
	return zero, err
}

func hasRequired(required []string) bool {
	for _, s := range required {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
