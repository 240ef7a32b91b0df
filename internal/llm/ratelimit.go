package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// rateLimitedClient spaces oracle calls to stay under a provider's request quota
type rateLimitedClient struct {
	next    Client
	limiter *rate.Limiter
}

// WithRateLimit wraps client so that at most requestsPerMinute calls start per minute,
// with up to burst calls allowed back to back. A non-positive rate returns client unchanged.
func WithRateLimit(client Client, requestsPerMinute, burst int) Client {
	if requestsPerMinute <= 0 {
		return client
	}
	if burst < 1 {
		burst = 1
	}
	limit := rate.Every(time.Minute / time.Duration(requestsPerMinute))
	return &rateLimitedClient{next: client, limiter: rate.NewLimiter(limit, burst)}
}

func (c *rateLimitedClient) Complete(ctx context.Context, systemPrompt string, messages []Message, opts Options) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		// Wait fails early when the next token would arrive after the deadline.
		return "", fmt.Errorf("waiting for oracle rate limit: %w", context.DeadlineExceeded)
	}
	return c.next.Complete(ctx, systemPrompt, messages, opts)
}

func (c *rateLimitedClient) Model(tier ModelTier) string {
	return c.next.Model(tier)
}

func (c *rateLimitedClient) Close() error {
	return c.next.Close()
}
