// Package pipeline orchestrates candidate evaluation: extraction, resume parsing, specialist
// judgments, score synthesis and persistence, for single candidates, batches and re-evaluations.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/evaluators"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/lock"
	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Stage names reported to the observer
const (
	StageExtract     = "extract"
	StageParse       = "parse"
	StageSkills      = "skills"
	StageExperience  = "experience"
	StageCulturalFit = "cultural_fit"
	StagePersist     = "persist"
	StageLoad        = "load"
)

// Store persists evaluation records
type Store interface {
	Save(ctx context.Context, rec *db.Record) (uuid.UUID, error)
	Load(ctx context.Context, id uuid.UUID) (*db.Record, error)
	Update(ctx context.Context, id uuid.UUID, upd db.RecordUpdate) error
}

// Observer receives stage timings and terminal outcomes
type Observer interface {
	ObserveStage(stage string, d time.Duration, err error)
	ObserveOutcome(o types.Outcome)
	// Started marks an evaluation as running; the returned func marks it done
	Started() func()
}

type nopObserver struct{}

func (nopObserver) ObserveStage(string, time.Duration, error) {}
func (nopObserver) ObserveOutcome(types.Outcome)              {}
func (nopObserver) Started() func()                           { return func() {} }

// Deps are the collaborators of an Orchestrator. Only Client is required.
type Deps struct {
	Client      llm.Client
	Extractor   *skills.Extractor
	Specialists *evaluators.Set
	Store       Store
	Locker      lock.Locker
	Cache       *ParseCache
	Observer    Observer
	Logger      *zap.Logger
}

// Orchestrator sequences the evaluation stages for one or many candidates
type Orchestrator struct {
	client      llm.Client
	extractor   *skills.Extractor
	specialists evaluators.Set
	store       Store
	locker      lock.Locker
	cache       *ParseCache
	observer    Observer
	logger      *zap.Logger
	validate    *validator.Validate
	cfg         Config
	now         func() time.Time
}

// New wires an Orchestrator, filling optional dependencies with in-process defaults
func New(deps Deps, cfg Config) (*Orchestrator, error) {
	if deps.Client == nil {
		return nil, errors.New("pipeline: llm client is required")
	}
	cfg = cfg.withDefaults()

	o := &Orchestrator{
		client:    deps.Client,
		extractor: deps.Extractor,
		store:     deps.Store,
		locker:    deps.Locker,
		cache:     deps.Cache,
		observer:  deps.Observer,
		logger:    observability.OrNop(deps.Logger),
		validate:  newValidator(),
		cfg:       cfg,
		now:       time.Now,
	}
	if o.extractor == nil {
		o.extractor = skills.NewExtractor(nil)
	}
	if deps.Specialists != nil {
		o.specialists = *deps.Specialists
	} else {
		o.specialists = evaluators.DefaultSet(o.extractor.Catalog())
	}
	if o.store == nil {
		o.store = db.NewMemoryStore()
	}
	if o.locker == nil {
		o.locker = lock.NewKeyedMutex()
	}
	if o.cache == nil {
		o.cache = NewParseCache(cfg.ParseCacheTTL)
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	return o, nil
}

// Config returns the effective orchestration settings
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateParams checks caller input before any oracle cost is incurred
func (o *Orchestrator) validateParams(params types.CandidateParams) error {
	if err := o.validate.Struct(params); err != nil {
		return fromValidator(err)
	}
	return nil
}

// runStage runs fn under the stage timeout with retries and reports its duration
func runStage[T any](ctx context.Context, o *Orchestrator, stage string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()

	sctx := ctx
	if o.cfg.StageTimeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, o.cfg.StageTimeout)
		defer cancel()
	}

	out, err := withRetry(sctx, o.cfg.OracleRetries, o.cfg.RetryInitialInterval, fn)
	if err != nil && errors.Is(sctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%s timed out: %w", stage, errors.Join(err, context.DeadlineExceeded))
	}

	o.observer.ObserveStage(stage, time.Since(start), err)
	if err != nil {
		o.logger.Warn("stage failed", zap.String("stage", stage), zap.Error(err))
	}
	return out, err
}

// failed builds a failure outcome, attaching result when one was computed
func failed(params types.CandidateParams, err error, result *types.EvaluationResult) types.Outcome {
	return types.Outcome{
		Success:        false,
		CandidateName:  params.CandidateName,
		CandidateEmail: params.CandidateEmail,
		Result:         result,
		ErrorKind:      Classify(err),
		Error:          err.Error(),
	}
}

func succeeded(params types.CandidateParams, result *types.EvaluationResult, id uuid.UUID) types.Outcome {
	return types.Outcome{
		Success:        true,
		RecordID:       &id,
		CandidateName:  params.CandidateName,
		CandidateEmail: params.CandidateEmail,
		Result:         result,
	}
}

// finish stamps the processing time and reports the outcome
func (o *Orchestrator) finish(out types.Outcome, start time.Time) types.Outcome {
	out.ProcessingTimeMs = time.Since(start).Milliseconds()
	o.observer.ObserveOutcome(out)
	if out.Success {
		o.logger.Info("evaluation completed",
			zap.String("candidate", out.CandidateName),
			zap.Int("final_score", out.Result.FinalScore),
			zap.String("decision", string(out.Result.Decision)),
			zap.Int64("processing_time_ms", out.ProcessingTimeMs),
		)
	} else {
		o.logger.Warn("evaluation failed",
			zap.String("candidate", out.CandidateName),
			zap.String("error_kind", string(out.ErrorKind)),
			zap.String("error", out.Error),
		)
	}
	return out
}
