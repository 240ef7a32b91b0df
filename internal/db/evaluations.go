package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Save inserts a new evaluation record and returns its server-assigned ID
func (db *DB) Save(ctx context.Context, rec *Record) (uuid.UUID, error) {
	paramsJSON, resultJSON, err := marshalPayload(rec.Params, rec.Result)
	if err != nil {
		return uuid.Nil, &PersistenceError{Op: "save", Cause: err}
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO candidate_evaluations
			(candidate_name, candidate_email, job_title, params, result, final_score, decision, status, confidence)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		rec.Params.CandidateName, rec.Params.CandidateEmail, rec.Params.JobTitle,
		paramsJSON, resultJSON,
		rec.Result.FinalScore, string(rec.Result.Decision), string(rec.Result.Status), rec.Result.Confidence,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, &PersistenceError{Op: "save", Cause: err}
	}
	return id, nil
}

// Load retrieves an evaluation record by ID
func (db *DB) Load(ctx context.Context, id uuid.UUID) (*Record, error) {
	var rec Record
	var paramsJSON, resultJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, params, result, evaluation_count, created_at, updated_at
		 FROM candidate_evaluations WHERE id = $1`,
		id,
	).Scan(&rec.ID, &paramsJSON, &resultJSON, &rec.EvaluationCount, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}

	if err := json.Unmarshal(paramsJSON, &rec.Params); err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: fmt.Errorf("failed to unmarshal params: %w", err)}
	}
	if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: fmt.Errorf("failed to unmarshal result: %w", err)}
	}
	return &rec, nil
}

// Update replaces the params and scoring fields of a record and bumps its evaluation count.
// The ID and creation time are preserved.
func (db *DB) Update(ctx context.Context, id uuid.UUID, upd RecordUpdate) error {
	paramsJSON, resultJSON, err := marshalPayload(upd.Params, upd.Result)
	if err != nil {
		return &PersistenceError{Op: "update", ID: id, Cause: err}
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE candidate_evaluations
		 SET candidate_name = $2, candidate_email = $3, job_title = $4,
		     params = $5, result = $6,
		     final_score = $7, decision = $8, status = $9, confidence = $10,
		     evaluation_count = evaluation_count + 1, updated_at = NOW()
		 WHERE id = $1`,
		id,
		upd.Params.CandidateName, upd.Params.CandidateEmail, upd.Params.JobTitle,
		paramsJSON, resultJSON,
		upd.Result.FinalScore, string(upd.Result.Decision), string(upd.Result.Status), upd.Result.Confidence,
	)
	if err != nil {
		return &PersistenceError{Op: "update", ID: id, Cause: err}
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// Summary is a lightweight view of a record for listing
type Summary struct {
	ID              uuid.UUID `json:"id"`
	CandidateName   string    `json:"candidate_name"`
	CandidateEmail  string    `json:"candidate_email"`
	JobTitle        string    `json:"job_title"`
	FinalScore      int       `json:"final_score"`
	Decision        string    `json:"decision"`
	Status          string    `json:"status"`
	EvaluationCount int       `json:"evaluation_count"`
}

// ListFilters holds optional filters for listing records
type ListFilters struct {
	Decision string
	Email    string
	Limit    int
}

// List retrieves recent evaluation summaries, newest first
func (db *DB) List(ctx context.Context, filters ListFilters) ([]Summary, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, candidate_name, candidate_email, job_title, final_score, decision, status, evaluation_count
		FROM candidate_evaluations WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Decision != "" {
		query += fmt.Sprintf(" AND decision = $%d", argNum)
		args = append(args, filters.Decision)
		argNum++
	}
	if filters.Email != "" {
		query += fmt.Sprintf(" AND candidate_email ILIKE $%d", argNum)
		args = append(args, filters.Email)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Cause: err}
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.CandidateName, &s.CandidateEmail, &s.JobTitle, &s.FinalScore, &s.Decision, &s.Status, &s.EvaluationCount); err != nil {
			return nil, &PersistenceError{Op: "list", Cause: fmt.Errorf("failed to scan record: %w", err)}
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list", Cause: err}
	}
	return summaries, nil
}

func marshalPayload(params, result any) ([]byte, []byte, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return paramsJSON, resultJSON, nil
}
