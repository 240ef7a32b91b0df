package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want types.ErrorKind
	}{
		{"nil", nil, ""},
		{"validation", &ValidationError{Message: "bad"}, types.ErrorKindValidation},
		{"scoring validation", &scoring.ValidationError{Message: "empty"}, types.ErrorKindValidation},
		{"not found", &db.NotFoundError{ID: uuid.New()}, types.ErrorKindNotFound},
		{"deadline", context.DeadlineExceeded, types.ErrorKindTimeout},
		{"wrapped deadline", fmt.Errorf("skills: %w", context.DeadlineExceeded), types.ErrorKindTimeout},
		{"malformed", fmt.Errorf("skills: %w", &llm.MalformedJSONError{Raw: "x"}), types.ErrorKindMalformedJSON},
		{"oracle", fmt.Errorf("parser: %w", &llm.OracleError{StatusCode: 500}), types.ErrorKindOracle},
		{"persistence", &db.PersistenceError{Op: "save", Cause: errors.New("down")}, types.ErrorKindPersistence},
		{"panic", &PanicError{Value: "x"}, types.ErrorKindInternal},
		{"other", errors.New("mystery"), types.ErrorKindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&llm.OracleError{StatusCode: 429}))
	assert.True(t, isRetryable(fmt.Errorf("wrapped: %w", &llm.OracleError{StatusCode: 502})))
	assert.True(t, isRetryable(&llm.OracleError{Network: true}))
	assert.False(t, isRetryable(&llm.OracleError{StatusCode: 400}))
	assert.False(t, isRetryable(&llm.MalformedJSONError{Raw: "{"}))
	assert.False(t, isRetryable(errors.New("other")))
	assert.False(t, isRetryable(context.Canceled))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Message: "candidate_email is required", Fields: []string{"candidate_email"}}
	assert.Equal(t, "validation error in candidate_email: candidate_email is required", err.Error())
	assert.Equal(t, "validation error: bad", (&ValidationError{Message: "bad"}).Error())
}
