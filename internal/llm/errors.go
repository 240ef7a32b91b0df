package llm

import (
	"fmt"
	"net/http"
)

// OracleError represents a transport, timeout or non-2xx failure from the provider
type OracleError struct {
	Provider   Provider
	Model      string
	StatusCode int
	Message    string
	// Network is set when the request failed before any HTTP status was received
	Network bool
	Cause   error
}

func (e *OracleError) Error() string {
	status := ""
	if e.StatusCode != 0 {
		status = fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s oracle call failed for model %s%s: %s: %v", e.Provider, e.Model, status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s oracle call failed for model %s%s: %s", e.Provider, e.Model, status, e.Message)
}

func (e *OracleError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether repeating the call could succeed (rate limits, server errors, network failures)
func (e *OracleError) Retryable() bool {
	return e.Network ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// MalformedJSONError represents oracle output that is not valid JSON or violates the expected schema
type MalformedJSONError struct {
	Raw    string
	Fields []string
	Cause  error
}

func (e *MalformedJSONError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("malformed oracle JSON (fields %v): %v", e.Fields, e.Cause)
	}
	return fmt.Sprintf("malformed oracle JSON: %v", e.Cause)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}
