package llm

import (
	"context"
	"sync"
)

// stubClient returns canned responses and records every call
type stubClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []Options
	systems   []string
}

func (s *stubClient) Complete(_ context.Context, systemPrompt string, _ []Message, opts Options) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, opts)
	s.systems = append(s.systems, systemPrompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	out := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return out, nil
}

func (s *stubClient) Model(tier ModelTier) string {
	return "stub-" + string(tier)
}

func (s *stubClient) Close() error {
	return nil
}
