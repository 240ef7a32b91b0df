package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete sends the system instruction and chat history to Gemini
func (c *GeminiClient) Complete(ctx context.Context, systemPrompt string, messages []Message, opts Options) (string, error) {
	modelName, temperature, maxTokens := c.config.resolve(opts)
	if modelName == "" {
		return "", &OracleError{Provider: ProviderGemini, Message: fmt.Sprintf("no model configured for tier %s", opts.Tier)}
	}
	if len(messages) == 0 {
		return "", &OracleError{Provider: ProviderGemini, Model: modelName, Message: "no messages to send"}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(float32(temperature))
	model.SetMaxOutputTokens(int32(maxTokens))
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}
	if opts.JSON {
		model.ResponseMIMEType = "application/json"
	}

	history, last := toGeminiHistory(messages)
	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", mapGeminiError(modelName, err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &OracleError{Provider: ProviderGemini, Model: modelName, Message: "empty response", Cause: err}
	}
	return text, nil
}

// Model returns the model name for a tier
func (c *GeminiClient) Model(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// toGeminiHistory splits messages into prior chat history and the final user turn
func toGeminiHistory(messages []Message) ([]*genai.Content, string) {
	history := make([]*genai.Content, 0, len(messages)-1)
	for _, m := range messages[:len(messages)-1] {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history, messages[len(messages)-1].Content
}

// mapGeminiError converts SDK and transport errors into an OracleError
func mapGeminiError(model string, err error) *OracleError {
	oe := &OracleError{Provider: ProviderGemini, Model: model, Message: "request failed", Cause: err}

	var apiErr *googleapi.Error
	var blocked *genai.BlockedError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		oe.Message = "request cancelled"
	case errors.As(err, &apiErr):
		oe.StatusCode = apiErr.Code
		oe.Message = apiErr.Message
	case errors.As(err, &blocked):
		oe.Message = "response blocked by safety filters"
	case errors.As(err, &netErr):
		oe.Network = true
	}
	return oe
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
