package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps evaluation records in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]*Record),
		now:     time.Now,
	}
}

// Save stores a copy of rec under a fresh ID
func (s *MemoryStore) Save(ctx context.Context, rec *Record) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, &PersistenceError{Op: "save", Cause: err}
	}
	stored, err := rec.clone()
	if err != nil {
		return uuid.Nil, &PersistenceError{Op: "save", Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	stored.ID = uuid.New()
	stored.EvaluationCount = 1
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.records[stored.ID] = stored
	return stored.ID, nil
}

// Load returns a copy of the record with the given ID
func (s *MemoryStore) Load(ctx context.Context, id uuid.UUID) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}

	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	out, err := rec.clone()
	if err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}
	return out, nil
}

// Update replaces the params and result of a record, preserving its ID and creation time
func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, upd RecordUpdate) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "update", ID: id, Cause: err}
	}
	next, err := (&Record{Params: upd.Params, Result: upd.Result}).clone()
	if err != nil {
		return &PersistenceError{Op: "update", ID: id, Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	rec.Params = next.Params
	rec.Result = next.Result
	rec.EvaluationCount++
	rec.UpdatedAt = s.now().UTC()
	return nil
}

// List returns summaries matching filters, newest first
func (s *MemoryStore) List(_ context.Context, filters ListFilters) ([]Summary, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	s.mu.RLock()
	recs := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		if filters.Decision != "" && string(r.Result.Decision) != filters.Decision {
			continue
		}
		if filters.Email != "" && !strings.EqualFold(r.Params.CandidateEmail, filters.Email) {
			continue
		}
		recs = append(recs, r)
	}
	s.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if len(recs) > filters.Limit {
		recs = recs[:filters.Limit]
	}

	summaries := make([]Summary, 0, len(recs))
	for _, r := range recs {
		summaries = append(summaries, Summary{
			ID:              r.ID,
			CandidateName:   r.Params.CandidateName,
			CandidateEmail:  r.Params.CandidateEmail,
			JobTitle:        r.Params.JobTitle,
			FinalScore:      r.Result.FinalScore,
			Decision:        string(r.Result.Decision),
			Status:          string(r.Result.Status),
			EvaluationCount: r.EvaluationCount,
		})
	}
	return summaries, nil
}
