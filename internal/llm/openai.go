package llm

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIClient implements Client for OpenAI-compatible chat completion APIs
type OpenAIClient struct {
	client openai.Client
	config *Config
}

// NewOpenAIClient creates a client for OpenAI or any compatible host set through BaseURL
func NewOpenAIClient(config *Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	// Retries are owned by the pipeline, so the SDK must not repeat requests itself
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		config: config,
	}, nil
}

// Complete sends a chat completion request
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt string, messages []Message, opts Options) (string, error) {
	modelName, temperature, maxTokens := c.config.resolve(opts)
	if modelName == "" {
		return "", &OracleError{Provider: ProviderOpenAI, Message: fmt.Sprintf("no model configured for tier %s", opts.Tier)}
	}

	params := openai.ChatCompletionNewParams{
		Model:               modelName,
		Messages:            toOpenAIMessages(systemPrompt, messages),
		MaxCompletionTokens: openai.Int(int64(maxTokens)),
		Temperature:         openai.Float(temperature),
	}
	if opts.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", mapOpenAIError(modelName, err)
	}
	if len(resp.Choices) == 0 {
		return "", &OracleError{Provider: ProviderOpenAI, Model: modelName, Message: "no choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the model name for a tier
func (c *OpenAIClient) Model(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client holds no dedicated resources
func (c *OpenAIClient) Close() error {
	return nil
}

func toOpenAIMessages(systemPrompt string, messages []Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if systemPrompt != "" {
		result = append(result, openai.SystemMessage(systemPrompt))
	}
	for _, m := range messages {
		if m.Role == RoleAssistant {
			result = append(result, openai.AssistantMessage(m.Content))
			continue
		}
		result = append(result, openai.UserMessage(m.Content))
	}
	return result
}

// mapOpenAIError converts SDK and transport errors into an OracleError
func mapOpenAIError(model string, err error) *OracleError {
	oe := &OracleError{Provider: ProviderOpenAI, Model: model, Message: "request failed", Cause: err}

	var apiErr *openai.Error
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		oe.Message = "request cancelled"
	case errors.As(err, &apiErr):
		oe.StatusCode = apiErr.StatusCode
		if apiErr.Message != "" {
			oe.Message = apiErr.Message
		}
	case errors.As(err, &netErr):
		oe.Network = true
	}
	return oe
}
