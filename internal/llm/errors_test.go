package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOracleError_Retryable(t *testing.T) {
	tests := []struct {
		name string
		err  OracleError
		want bool
	}{
		{"429", OracleError{StatusCode: 429}, true},
		{"500", OracleError{StatusCode: 500}, true},
		{"503", OracleError{StatusCode: 503}, true},
		{"400", OracleError{StatusCode: 400}, false},
		{"404", OracleError{StatusCode: 404}, false},
		{"network", OracleError{Network: true}, true},
		{"unknown", OracleError{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Retryable())
		})
	}
}

func TestOracleError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &OracleError{Provider: ProviderGemini, Model: "gemini-2.5-flash", StatusCode: 502, Message: "bad gateway", Cause: cause}

	assert.Equal(t, "gemini oracle call failed for model gemini-2.5-flash (status 502): bad gateway: boom", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestMalformedJSONError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &MalformedJSONError{Raw: "{", Fields: []string{"overall_score"}, Cause: cause}

	assert.Contains(t, err.Error(), "overall_score")
	assert.True(t, errors.Is(err, cause))
}
