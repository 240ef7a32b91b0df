package db

import (
	"fmt"

	"github.com/google/uuid"
)

// PersistenceError represents a store read or write that failed
type PersistenceError struct {
	Op    string
	ID    uuid.UUID
	Cause error
}

func (e *PersistenceError) Error() string {
	if e.ID != uuid.Nil {
		return fmt.Sprintf("persistence %s %s failed: %v", e.Op, e.ID, e.Cause)
	}
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// NotFoundError represents a lookup for a record that does not exist
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("evaluation record not found: %s", e.ID)
}
