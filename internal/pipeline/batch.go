package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-screener/internal/types"
)

// EvaluateCandidates evaluates every candidate and returns one outcome per input, in input order.
// A failing candidate never stops the others.
func (o *Orchestrator) EvaluateCandidates(ctx context.Context, candidates []types.CandidateParams) []types.Outcome {
	start := time.Now()
	outcomes := make([]types.Outcome, len(candidates))

	var g errgroup.Group
	g.SetLimit(o.cfg.BatchConcurrency)
	for i, params := range candidates {
		i, params := i, params
		g.Go(func() error {
			outcomes[i] = o.evaluateIsolated(ctx, params)
			return nil
		})
	}
	_ = g.Wait()

	failures := 0
	for _, out := range outcomes {
		if !out.Success {
			failures++
		}
	}
	o.logger.Info("batch completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("succeeded", len(candidates)-failures),
		zap.Int("failed", failures),
		zap.Duration("elapsed", time.Since(start)),
	)
	return outcomes
}

// evaluateIsolated runs one batch item under its own timeout and converts panics into failures
func (o *Orchestrator) evaluateIsolated(ctx context.Context, params types.CandidateParams) (out types.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("recovered panic in batch item", zap.String("candidate", params.CandidateName), zap.Any("panic", r))
			out = o.finish(failed(params, &PanicError{Value: r}, nil), start)
		}
	}()

	if o.cfg.CandidateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.CandidateTimeout)
		defer cancel()
	}
	return o.EvaluateCandidate(ctx, params)
}
