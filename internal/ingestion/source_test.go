package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-screener/internal/fetch"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestFromFile_Text(t *testing.T) {
	path := writeFile(t, "jane.txt", "Jane   Doe\r\n\r\n\r\n\r\n- 5 years of Python")

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\n- 5 years of Python", text)
	assert.Equal(t, path, meta.Source)
	assert.Equal(t, "jane.txt", meta.Filename)
	assert.Equal(t, "file", meta.Provider)
	assert.Equal(t, "text/plain", meta.ContentType)
	assert.Len(t, meta.Hash, 64)
	assert.Equal(t, 3, meta.Lines)
	assert.False(t, meta.Timestamp.IsZero())
}

func TestIngestFromFile_HTML(t *testing.T) {
	path := writeFile(t, "resume.html", `<html><body><nav>menu</nav><main><h1>Jane Doe</h1><p>Go   developer</p></main></body></html>`)

	text, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", text)
	assert.Equal(t, "text/html", meta.ContentType)
}

func TestIngestFromFile_Binary(t *testing.T) {
	path := writeFile(t, "resume.pdf", "%PDF-1.4\x00\x01")

	_, _, err := IngestFromFile(path)
	assert.ErrorIs(t, err, fetch.ErrUnsupportedContent)
}

func TestIngestFromFile_Empty(t *testing.T) {
	path := writeFile(t, "blank.txt", "   \n\n\t")

	_, _, err := IngestFromFile(path)
	assert.ErrorIs(t, err, ErrEmptyResume)
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	_, _, err := IngestFromFile("/nonexistent/resume.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_HashTracksContent(t *testing.T) {
	_, a, err := IngestFromFile(writeFile(t, "a.txt", "Python"))
	require.NoError(t, err)
	_, b, err := IngestFromFile(writeFile(t, "b.txt", "Python   "))
	require.NoError(t, err)
	_, c, err := IngestFromFile(writeFile(t, "c.txt", "Go"))
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestIngest_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Jane Doe\n\n\n\nExpert Go developer"))
	}))
	defer server.Close()

	text, meta, err := Ingest(context.Background(), server.URL+"/cv/jane.txt", nil)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\nExpert Go developer", text)
	assert.Equal(t, "direct", meta.Provider)
	assert.Equal(t, "jane.txt", meta.Filename)
	assert.Equal(t, 31, meta.Bytes)
}

func TestIngest_URLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, _, err := Ingest(context.Background(), server.URL+"/cv.pdf", nil)
	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/cv.pdf"))
	assert.True(t, IsURL("HTTP://example.com/cv.pdf"))
	assert.False(t, IsURL("./resumes/jane.txt"))
	assert.False(t, IsURL("/tmp/https.txt"))
}
