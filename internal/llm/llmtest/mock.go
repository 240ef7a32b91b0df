// Package llmtest provides test doubles for llm.Client.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/candidate-screener/internal/llm"
)

// Call records one Complete invocation
type Call struct {
	SystemPrompt string
	Messages     []llm.Message
	Options      llm.Options
}

// Prompt returns the content of the last message
func (c Call) Prompt() string {
	if len(c.Messages) == 0 {
		return ""
	}
	return c.Messages[len(c.Messages)-1].Content
}

// MockClient implements llm.Client for testing
type MockClient struct {
	CompleteFunc func(ctx context.Context, systemPrompt string, messages []llm.Message, opts llm.Options) (string, error)
	ModelFunc    func(tier llm.ModelTier) string
	CloseFunc    func() error

	mu    sync.Mutex
	calls []Call
}

// Complete records the call and delegates to CompleteFunc
func (m *MockClient) Complete(ctx context.Context, systemPrompt string, messages []llm.Message, opts llm.Options) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{SystemPrompt: systemPrompt, Messages: messages, Options: opts})
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, messages, opts)
	}
	return `{"overall_score": 75, "reasoning": "Mock reasoning"}`, nil
}

// Model returns the configured model for a tier
func (m *MockClient) Model(tier llm.ModelTier) string {
	if m.ModelFunc != nil {
		return m.ModelFunc(tier)
	}
	return "mock-model"
}

// Close releases nothing unless CloseFunc is set
func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns a copy of the recorded calls
func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many calls were made
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Routes maps a system-prompt substring to the responder for matching calls
type Routes map[string]func(ctx context.Context, prompt string) (string, error)

// NewRouted returns a mock that dispatches on the system prompt. Unmatched calls get fallback.
func NewRouted(routes Routes, fallback string) *MockClient {
	return &MockClient{
		CompleteFunc: func(ctx context.Context, systemPrompt string, messages []llm.Message, _ llm.Options) (string, error) {
			prompt := ""
			if len(messages) > 0 {
				prompt = messages[len(messages)-1].Content
			}
			for key, respond := range routes {
				if strings.Contains(systemPrompt, key) {
					return respond(ctx, prompt)
				}
			}
			return fallback, nil
		},
	}
}

// Reply returns a responder that always yields body
func Reply(body string) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) {
		return body, nil
	}
}

// Fail returns a responder that always fails with err
func Fail(err error) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) {
		return "", err
	}
}

// System-prompt fragments identifying each evaluation stage
const (
	RouteParser      = "resume parser"
	RouteSkills      = "technical recruiter"
	RouteExperience  = "hiring manager"
	RouteCulturalFit = "organizational psychologist"
)
