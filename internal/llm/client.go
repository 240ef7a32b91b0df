package llm

import (
	"context"
	"fmt"
)

// Role identifies the author of a chat message
type Role string

// Message roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in the conversation sent to the oracle
type Message struct {
	Role    Role
	Content string
}

// UserMessage builds a user turn
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Options control a single completion. Zero values fall back to the client configuration.
type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
	Tier        ModelTier
	JSON        bool
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete sends the system prompt and messages and returns the raw response text
	Complete(ctx context.Context, systemPrompt string, messages []Message, opts Options) (string, error)
	// Model returns the provider model configured for a tier
	Model(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfigFor(ProviderGemini)
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config)
	case ProviderOpenAI:
		return NewOpenAIClient(config)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
