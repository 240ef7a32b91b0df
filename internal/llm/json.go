package llm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jonathan/candidate-screener/internal/schemas"
)

var errEmptyResponse = errors.New("empty response")

// CompleteJSON requests a JSON completion, validates it against the named embedded schema and decodes it into T.
// Oracle failures are returned unchanged. Unusable output is reported as *MalformedJSONError.
func CompleteJSON[T any](ctx context.Context, client Client, systemPrompt string, messages []Message, opts Options, schema string) (T, error) {
	var zero T

	if schema != "" {
		if _, err := schemas.Load(schema); err != nil {
			return zero, err
		}
	}

	opts.JSON = true
	raw, err := client.Complete(ctx, systemPrompt, messages, opts)
	if err != nil {
		return zero, err
	}

	cleaned := CleanJSONBlock(raw)
	if cleaned == "" {
		return zero, &MalformedJSONError{Raw: raw, Cause: errEmptyResponse}
	}

	if schema != "" {
		if err := schemas.Validate(schema, cleaned); err != nil {
			malformed := &MalformedJSONError{Raw: raw, Cause: err}
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				malformed.Fields = validationErr.Fields()
			}
			return zero, malformed
		}
	}

	var out T
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return zero, &MalformedJSONError{Raw: raw, Cause: err}
	}
	return out, nil
}
