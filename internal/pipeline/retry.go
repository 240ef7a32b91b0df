package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jonathan/candidate-screener/internal/llm"
)

// withRetry runs fn, retrying only retryable oracle failures up to retries extra times
func withRetry[T any](ctx context.Context, retries int, initial time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if retries <= 0 {
		return fn(ctx)
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = initial
	expo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(retries)), ctx)

	var out T
	err := backoff.Retry(func() error {
		v, err := fn(ctx)
		if err == nil {
			out = v
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
	return out, err
}

func isRetryable(err error) bool {
	var malformed *llm.MalformedJSONError
	if errors.As(err, &malformed) {
		return false
	}
	var oracle *llm.OracleError
	return errors.As(err, &oracle) && oracle.Retryable()
}
