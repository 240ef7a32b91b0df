package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/jonathan/candidate-screener/internal/fetch"
)

// Metadata describes where an ingested resume came from and what was kept of it
type Metadata struct {
	Source      string    `json:"source"`
	Filename    string    `json:"filename,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Bytes       int       `json:"bytes"`
	Lines       int       `json:"lines"`
	Timestamp   time.Time `json:"timestamp"`
	// Hash is the hex SHA-256 of the cleaned text, so identical resumes from different sources compare equal.
	Hash string `json:"hash"`
}

func describe(doc *fetch.Document, source, cleaned string) *Metadata {
	sum := sha256.Sum256([]byte(cleaned))
	return &Metadata{
		Source:      source,
		Filename:    doc.Filename,
		Provider:    string(doc.Provider),
		ContentType: doc.MediaType(),
		Bytes:       doc.Size(),
		Lines:       strings.Count(cleaned, "\n") + 1,
		Timestamp:   time.Now().UTC(),
		Hash:        hex.EncodeToString(sum[:]),
	}
}
