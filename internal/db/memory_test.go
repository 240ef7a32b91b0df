package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(score int, decision types.Decision) *Record {
	return NewRecord(
		types.CandidateParams{
			CandidateName:  "Grace Hopper",
			CandidateEmail: "grace@example.com",
			JobTitle:       "Compiler Engineer",
			RequiredSkills: []string{"COBOL"},
		},
		types.EvaluationResult{FinalScore: score, Decision: decision, Status: types.StatusAccepted},
	)
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.Save(ctx, sampleRecord(82, types.DecisionYes))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	rec, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, 1, rec.EvaluationCount)
	assert.Equal(t, 82, rec.Result.FinalScore)
	assert.False(t, rec.CreatedAt.IsZero())

	// Mutating the loaded copy must not leak into the store
	rec.Params.RequiredSkills[0] = "Fortran"
	again, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"COBOL"}, again.Params.RequiredSkills)
}

func TestMemoryStore_LoadMissing(t *testing.T) {
	store := NewMemoryStore()
	id := uuid.New()

	_, err := store.Load(context.Background(), id)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, id, nf.ID)
}

func TestMemoryStore_UpdatePreservesIdentity(t *testing.T) {
	store := NewMemoryStore()
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return clock }
	ctx := context.Background()

	id, err := store.Save(ctx, sampleRecord(50, types.DecisionNo))
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	upd := RecordUpdate{
		Params: types.CandidateParams{CandidateName: "Grace Hopper", JobTitle: "Staff Engineer"},
		Result: types.EvaluationResult{FinalScore: 91, Decision: types.DecisionStrongYes},
	}
	require.NoError(t, store.Update(ctx, id, upd))

	rec, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, 2, rec.EvaluationCount)
	assert.Equal(t, 91, rec.Result.FinalScore)
	assert.Equal(t, "Staff Engineer", rec.Params.JobTitle)
	assert.True(t, rec.CreatedAt.Before(rec.UpdatedAt))
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	err := NewMemoryStore().Update(context.Background(), uuid.New(), RecordUpdate{})
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Save(ctx, sampleRecord(10, types.DecisionStrongNo))
	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_ListFilters(t *testing.T) {
	store := NewMemoryStore()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ctx := context.Background()

	_, err := store.Save(ctx, sampleRecord(95, types.DecisionStrongYes))
	require.NoError(t, err)
	_, err = store.Save(ctx, sampleRecord(30, types.DecisionStrongNo))
	require.NoError(t, err)
	latest, err := store.Save(ctx, sampleRecord(92, types.DecisionStrongYes))
	require.NoError(t, err)

	all, err := store.List(ctx, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, latest, all[0].ID)

	strong, err := store.List(ctx, ListFilters{Decision: "strong_yes", Limit: 1})
	require.NoError(t, err)
	require.Len(t, strong, 1)
	assert.Equal(t, 92, strong[0].FinalScore)
}
