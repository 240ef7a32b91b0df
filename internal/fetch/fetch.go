// Package fetch downloads resumes from direct and cloud-storage share links
// and turns HTML or plain-text bodies into evaluation-ready text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultMaxBytes caps a single download at 50 MB.
const DefaultMaxBytes int64 = 50 << 20

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CandidateScreener/1.0)"

var (
	// ErrTooLarge is returned when a body exceeds Options.MaxBytes.
	ErrTooLarge = errors.New("file exceeds maximum size")
	// ErrUnsupportedContent is returned when text is requested from a binary document.
	ErrUnsupportedContent = errors.New("content type does not carry extractable text")
)

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
	Headers   map[string]string
	// Client overrides the HTTP client; Timeout is ignored when set.
	Client *http.Client
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		MaxBytes:  DefaultMaxBytes,
		UserAgent: DefaultUserAgent,
	}
}

func (o *Options) withDefaults() *Options {
	out := DefaultOptions()
	if o == nil {
		return out
	}
	if o.Timeout > 0 {
		out.Timeout = o.Timeout
	}
	if o.MaxBytes > 0 {
		out.MaxBytes = o.MaxBytes
	}
	if o.UserAgent != "" {
		out.UserAgent = o.UserAgent
	}
	out.Headers = o.Headers
	out.Client = o.Client
	return out
}

func (o *Options) httpClient() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return &http.Client{Timeout: o.Timeout}
}

// response is a fully read, size-capped HTTP response.
type response struct {
	finalURL    string
	statusCode  int
	contentType string
	disposition string
	body        []byte
}

// get performs a GET and reads at most opts.MaxBytes of the body.
func get(ctx context.Context, urlStr string, opts *Options) (*response, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := opts.httpClient().Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	if resp.ContentLength > opts.MaxBytes {
		return nil, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("declared size %d bytes over limit %d", resp.ContentLength, opts.MaxBytes),
			Cause:   ErrTooLarge,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBytes+1))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if int64(len(body)) > opts.MaxBytes {
		return nil, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("body over limit %d bytes", opts.MaxBytes),
			Cause:   ErrTooLarge,
		}
	}

	return &response{
		finalURL:    resp.Request.URL.String(),
		statusCode:  resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		disposition: resp.Header.Get("Content-Disposition"),
		body:        body,
	}, nil
}

// ExtractMainText parses HTML and returns the readable body text.
// Noise elements are removed first; the first matching content selector wins,
// falling back to the body element.
func ExtractMainText(html string, contentSelectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, script, style, noscript, form, .cookie-banner, .popup").Remove()

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	// Block elements are separated by newlines so list items stay on their own lines.
	mainContent.Find("p, li, div, br, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(mainContent.Text()), nil
}

// ResumeSelectors returns selectors for hosted resume and portfolio pages.
func ResumeSelectors() []string {
	return []string{
		"main",
		"article",
		"#resume",
		".resume",
		".markdown-body",
		".content",
		"#content",
	}
}

// cleanWhitespace trims each line and drops empty ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
