package llm

import (
	"context"
	"time"

	"github.com/jonathan/candidate-screener/internal/observability"
	"go.uber.org/zap"
)

const logPreviewLimit = 300

// loggingClient logs every oracle exchange at debug level
type loggingClient struct {
	next   Client
	logger *zap.Logger
}

// WithLogging wraps client so that requests, responses and failures are logged
func WithLogging(client Client, logger *zap.Logger) Client {
	if logger == nil {
		return client
	}
	return &loggingClient{next: client, logger: logger}
}

func (c *loggingClient) Complete(ctx context.Context, systemPrompt string, messages []Message, opts Options) (string, error) {
	prompt := ""
	if len(messages) > 0 {
		prompt = messages[len(messages)-1].Content
	}
	c.logger.Debug("oracle request",
		zap.String("tier", string(opts.Tier)),
		zap.Bool("json", opts.JSON),
		zap.Int("messages", len(messages)),
		zap.String("prompt_preview", observability.TruncateForLog(prompt, logPreviewLimit)),
	)

	start := time.Now()
	out, err := c.next.Complete(ctx, systemPrompt, messages, opts)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Debug("oracle request failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return "", err
	}

	c.logger.Debug("oracle response",
		zap.Duration("elapsed", elapsed),
		zap.Int("chars", len(out)),
		zap.String("response_preview", observability.TruncateForLog(out, logPreviewLimit)),
	)
	return out, nil
}

func (c *loggingClient) Model(tier ModelTier) string {
	return c.next.Model(tier)
}

func (c *loggingClient) Close() error {
	return c.next.Close()
}
