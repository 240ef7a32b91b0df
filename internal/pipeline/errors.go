package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/types"
)

// ValidationError represents caller input rejected before any oracle call
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation error in %s: %s", strings.Join(e.Fields, ", "), e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// fromValidator converts validator field errors into a ValidationError
func fromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Message: err.Error()}
	}

	fields := make([]string, 0, len(fieldErrs))
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
		msgs = append(msgs, describeFieldError(fe))
	}
	return &ValidationError{Message: strings.Join(msgs, "; "), Fields: fields}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// Classify maps an error to the kind reported on a failed outcome
func Classify(err error) types.ErrorKind {
	var (
		validationErr *ValidationError
		scoringErr    *scoring.ValidationError
		notFoundErr   *db.NotFoundError
		malformedErr  *llm.MalformedJSONError
		oracleErr     *llm.OracleError
		persistErr    *db.PersistenceError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr), errors.As(err, &scoringErr):
		return types.ErrorKindValidation
	case errors.As(err, &notFoundErr):
		return types.ErrorKindNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return types.ErrorKindTimeout
	case errors.As(err, &malformedErr):
		return types.ErrorKindMalformedJSON
	case errors.As(err, &oracleErr):
		return types.ErrorKindOracle
	case errors.As(err, &persistErr):
		return types.ErrorKindPersistence
	default:
		return types.ErrorKindInternal
	}
}

// PanicError carries a recovered panic from one batch item
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic during evaluation: %v", e.Value)
}
