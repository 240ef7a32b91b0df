package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/types"
)

// ReEvaluateCandidate reruns the pipeline from scratch for a stored record with overrides applied.
// Re-evaluations of the same record are serialized; the record keeps its ID and creation time.
func (o *Orchestrator) ReEvaluateCandidate(ctx context.Context, id string, overrides types.CandidateOverrides) types.Outcome {
	start := time.Now()
	defer o.observer.Started()()

	recordID, err := uuid.Parse(id)
	if err != nil {
		return o.finish(failed(types.CandidateParams{}, &ValidationError{Message: "invalid evaluation id " + id, Fields: []string{"id"}}, nil), start)
	}

	release, err := o.locker.Acquire(ctx, recordID.String())
	if err != nil {
		return o.finish(withID(failed(types.CandidateParams{}, err, nil), recordID), start)
	}
	defer release()

	rec, err := runStage(ctx, o, StageLoad, func(ctx context.Context) (*db.Record, error) {
		return o.store.Load(ctx, recordID)
	})
	if err != nil {
		return o.finish(withID(failed(types.CandidateParams{}, err, nil), recordID), start)
	}

	params := overrides.Apply(rec.Params)
	if err := o.validateParams(params); err != nil {
		return o.finish(withID(failed(params, err, nil), recordID), start)
	}

	o.logger.Info("re-evaluating candidate",
		zap.String("id", recordID.String()),
		zap.String("candidate", params.CandidateName),
		zap.Int("previous_evaluations", rec.EvaluationCount),
	)

	result, err := o.evaluate(ctx, params, false, start)
	if err != nil {
		return o.finish(withID(failed(params, err, nil), recordID), start)
	}

	_, err = runStage(ctx, o, StagePersist, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, o.store.Update(ctx, recordID, db.RecordUpdate{Params: params, Result: *result})
	})
	if err != nil {
		return o.finish(withID(failed(params, err, result), recordID), start)
	}

	return o.finish(succeeded(params, result, recordID), start)
}

func withID(out types.Outcome, id uuid.UUID) types.Outcome {
	out.RecordID = &id
	return out
}
