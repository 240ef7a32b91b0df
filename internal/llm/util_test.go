package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"overall_score\": 80}\n```",
			expected: `{"overall_score": 80}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"overall_score\": 80}\n```",
			expected: `{"overall_score": 80}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"overall_score\": 80}\n```",
			expected: `{"overall_score": 80}`,
		},
		{
			name:     "plain JSON",
			input:    `{"overall_score": 80}`,
			expected: `{"overall_score": 80}`,
		},
		{
			name:     "fenced JSON followed by commentary",
			input:    "```json\n{\"overall_score\": 80}\n```\nHope this helps.",
			expected: `{"overall_score": 80}`,
		},
		{
			name:     "no JSON at all",
			input:    "I cannot evaluate this resume.",
			expected: "I cannot evaluate this resume.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_PreambleText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before JSON object",
			input:    "As requested, here is the evaluation:\n{\"overall_score\": 72}",
			expected: `{"overall_score": 72}`,
		},
		{
			name:     "preamble before JSON array",
			input:    "Here are the skills:\n[\"Go\", \"SQL\"]",
			expected: `["Go", "SQL"]`,
		},
		{
			name:     "JSON with trailing text",
			input:    "{\"reasoning\": \"ok\"}\n\nLet me know if you need anything else!",
			expected: `{"reasoning": "ok"}`,
		},
		{
			name:     "object before inner array",
			input:    "Result: {\"strengths\": [\"Go\"]}",
			expected: `{"strengths": ["Go"]}`,
		},
		{
			name:     "JSON with escaped quotes",
			input:    "Result: {\"reasoning\": \"He said \\\"hello\\\"\"}",
			expected: `{"reasoning": "He said \"hello\""}`,
		},
		{
			name:     "unbalanced object is returned as is",
			input:    "{\"overall_score\": 80",
			expected: `{"overall_score": 80`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple object", `{"key": "value"}`, `{"key": "value"}`},
		{"nested objects", `{"outer": {"inner": "value"}}`, `{"outer": {"inner": "value"}}`},
		{"object with trailing text", `{"key": "value"} and more`, `{"key": "value"}`},
		{"string with braces inside", `{"template": "Hello {name}!"}`, `{"template": "Hello {name}!"}`},
		{"empty input", "", ""},
		{"not starting with brace", "not json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple array", `["a", "b"]`, `["a", "b"]`},
		{"nested arrays", `[[1, 2], [3, 4]]`, `[[1, 2], [3, 4]]`},
		{"array of objects", `[{"id": 1}, {"id": 2}]`, `[{"id": 1}, {"id": 2}]`},
		{"bracket inside string", `["a]", "b"] tail`, `["a]", "b"]`},
		{"empty input", "", ""},
		{"not starting with bracket", "not array", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONArray(tt.input))
		})
	}
}
