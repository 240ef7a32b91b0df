package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Record is one persisted candidate evaluation
type Record struct {
	ID              uuid.UUID              `json:"id"`
	Params          types.CandidateParams  `json:"params"`
	Result          types.EvaluationResult `json:"result"`
	EvaluationCount int                    `json:"evaluation_count"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// NewRecord builds an unsaved record from the inputs and result of one evaluation
func NewRecord(params types.CandidateParams, result types.EvaluationResult) *Record {
	return &Record{
		Params:          params,
		Result:          result,
		EvaluationCount: 1,
	}
}

// RecordUpdate replaces the inputs and scoring fields of a stored record
type RecordUpdate struct {
	Params types.CandidateParams
	Result types.EvaluationResult
}

// clone returns a deep copy so callers never share slices with the store
func (r *Record) clone() (*Record, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	var out Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &out, nil
}
