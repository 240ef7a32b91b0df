package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestToGeminiHistory(t *testing.T) {
	history, last := toGeminiHistory([]Message{
		UserMessage("first"),
		{Role: RoleAssistant, Content: "reply"},
		UserMessage("final"),
	})

	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, genai.Text("reply"), history[1].Parts[0])
	assert.Equal(t, "final", last)
}

func TestMapGeminiError(t *testing.T) {
	t.Run("api status", func(t *testing.T) {
		err := mapGeminiError("gemini-2.5-flash", fmt.Errorf("wrapped: %w", &googleapi.Error{Code: 503, Message: "overloaded"}))
		assert.Equal(t, 503, err.StatusCode)
		assert.Equal(t, "overloaded", err.Message)
		assert.True(t, err.Retryable())
	})

	t.Run("client error", func(t *testing.T) {
		err := mapGeminiError("m", &googleapi.Error{Code: 400, Message: "bad"})
		assert.False(t, err.Retryable())
	})

	t.Run("deadline", func(t *testing.T) {
		err := mapGeminiError("m", context.DeadlineExceeded)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.False(t, err.Retryable())
	})

	t.Run("network", func(t *testing.T) {
		err := mapGeminiError("m", &net.OpError{Op: "dial", Err: errors.New("refused")})
		assert.True(t, err.Network)
		assert.True(t, err.Retryable())
	})
}

func TestExtractTextFromResponse(t *testing.T) {
	_, err := extractTextFromResponse(nil)
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	text, err := extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text("{\"a\":"), genai.Text("1}")}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfigFor(ProviderGemini))
	assert.Error(t, err)
}
