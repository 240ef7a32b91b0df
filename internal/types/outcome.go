package types

import "github.com/google/uuid"

// ErrorKind classifies why an evaluation failed
type ErrorKind string

// Error kinds reported on failed outcomes
const (
	ErrorKindOracle        ErrorKind = "oracle"
	ErrorKindMalformedJSON ErrorKind = "malformed_json"
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindPersistence   ErrorKind = "persistence"
	ErrorKindNotFound      ErrorKind = "not_found"
	ErrorKindTimeout       ErrorKind = "timeout"
	ErrorKindInternal      ErrorKind = "internal"
)

// Outcome is the result contract returned at the orchestrator boundary
type Outcome struct {
	Success          bool              `json:"success"`
	RecordID         *uuid.UUID        `json:"record_id,omitempty"`
	CandidateName    string            `json:"candidate_name"`
	CandidateEmail   string            `json:"candidate_email"`
	Result           *EvaluationResult `json:"result,omitempty"`
	ErrorKind        ErrorKind         `json:"error_kind,omitempty"`
	Error            string            `json:"error,omitempty"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
}
