package skills

import "fmt"

// CatalogError represents an invalid or unreadable skill catalog
type CatalogError struct {
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("skill catalog error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("skill catalog error: %s", e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}
