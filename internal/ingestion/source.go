package ingestion

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/candidate-screener/internal/fetch"
)

// ErrEmptyResume is returned when a source yields no text after cleaning
var ErrEmptyResume = errors.New("resume has no text content")

// IsURL reports whether source should be downloaded rather than read from disk
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Ingest loads resume text from a local path or an http(s) link
func Ingest(ctx context.Context, source string, opts *fetch.Options) (string, *Metadata, error) {
	if IsURL(source) {
		return IngestFromURL(ctx, source, opts)
	}
	return IngestFromFile(source)
}

// IngestFromFile reads a resume file and returns the cleaned text with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	doc := &fetch.Document{
		SourceURL:   path,
		URL:         path,
		Provider:    "file",
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Content:     content,
	}
	return fromDocument(doc, path)
}

// IngestFromURL downloads a resume from a direct or cloud share link
func IngestFromURL(ctx context.Context, urlStr string, opts *fetch.Options) (string, *Metadata, error) {
	doc, err := fetch.Download(ctx, urlStr, opts)
	if err != nil {
		return "", nil, err
	}
	return fromDocument(doc, urlStr)
}

func fromDocument(doc *fetch.Document, source string) (string, *Metadata, error) {
	text, err := doc.Text()
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%s: %w", source, ErrEmptyResume)
	}

	return cleaned, describe(doc, source, cleaned), nil
}
