package pipeline

import (
	"time"

	"github.com/jonathan/candidate-screener/internal/scoring"
)

// FailurePolicy decides what happens when a specialist stage fails
type FailurePolicy string

const (
	// PolicyAbort fails the evaluation on the first specialist error
	PolicyAbort FailurePolicy = "abort"
	// PolicyDegrade substitutes a labeled degraded result and continues
	PolicyDegrade FailurePolicy = "degrade"
)

// Config tunes orchestration behavior
type Config struct {
	FailurePolicy         FailurePolicy
	ConcurrentSpecialists bool
	// StageTimeout bounds each stage including its retries; zero disables it
	StageTimeout time.Duration
	// CandidateTimeout bounds one candidate in a batch; zero disables it
	CandidateTimeout     time.Duration
	BatchConcurrency     int
	OracleRetries        int
	RetryInitialInterval time.Duration
	// ParseCacheTTL is how long parsed resumes are reused; zero disables the cache
	ParseCacheTTL time.Duration
	Weights       scoring.Weights
}

// DefaultConfig returns the reference orchestration settings
func DefaultConfig() Config {
	return Config{
		FailurePolicy:         PolicyAbort,
		ConcurrentSpecialists: true,
		StageTimeout:          60 * time.Second,
		CandidateTimeout:      5 * time.Minute,
		BatchConcurrency:      1,
		OracleRetries:         0,
		RetryInitialInterval:  500 * time.Millisecond,
		ParseCacheTTL:         30 * time.Minute,
		Weights:               scoring.DefaultWeights(),
	}
}

func (c Config) withDefaults() Config {
	if c.FailurePolicy == "" {
		c.FailurePolicy = PolicyAbort
	}
	if c.BatchConcurrency < 1 {
		c.BatchConcurrency = 1
	}
	if c.OracleRetries < 0 {
		c.OracleRetries = 0
	}
	if c.RetryInitialInterval <= 0 {
		c.RetryInitialInterval = 500 * time.Millisecond
	}
	return c
}
