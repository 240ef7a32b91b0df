package fetch

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	driveConfirmPattern     = regexp.MustCompile(`confirm=([a-zA-Z0-9_-]+)`)
	driveDownloadURLPattern = regexp.MustCompile(`"downloadUrl":"([^"]+)"`)
)

// Document is a downloaded resume file.
type Document struct {
	// SourceURL is the link the caller supplied.
	SourceURL string
	// URL is the address the bytes were finally served from.
	URL         string
	Provider    Provider
	Filename    string
	ContentType string
	Content     []byte
}

// Size returns the document length in bytes.
func (d *Document) Size() int {
	return len(d.Content)
}

// Download fetches the file behind a direct or cloud share link.
func Download(ctx context.Context, urlStr string, opts *Options) (*Document, error) {
	opts = opts.withDefaults()
	provider := DetectProvider(urlStr)

	var (
		resp *response
		err  error
	)
	if provider == ProviderGoogleDrive {
		resp, err = downloadDrive(ctx, urlStr, opts)
	} else {
		resp, err = get(ctx, DirectURL(urlStr), opts)
	}
	if err != nil {
		return nil, err
	}

	return &Document{
		SourceURL:   urlStr,
		URL:         resp.finalURL,
		Provider:    provider,
		Filename:    filename(resp, defaultFilename(provider, urlStr)),
		ContentType: resp.contentType,
		Content:     resp.body,
	}, nil
}

// downloadDrive follows the virus-scan interstitial Drive serves for large files.
func downloadDrive(ctx context.Context, urlStr string, opts *Options) (*response, error) {
	id, ok := DriveFileID(urlStr)
	if !ok {
		return nil, &Error{URL: urlStr, Message: "could not find Google Drive file id"}
	}

	resp, err := get(ctx, driveURL(id, ""), opts)
	if err != nil {
		return nil, err
	}
	if !isDriveInterstitial(resp) {
		return resp, nil
	}

	page := string(resp.body)
	if m := driveConfirmPattern.FindStringSubmatch(page); m != nil {
		return get(ctx, driveURL(id, m[1]), opts)
	}
	if m := driveDownloadURLPattern.FindStringSubmatch(page); m != nil {
		direct := strings.NewReplacer(`\u003d`, "=", `\u0026`, "&").Replace(m[1])
		return get(ctx, direct, opts)
	}
	return get(ctx, driveURL(id, "t"), opts)
}

func isDriveInterstitial(resp *response) bool {
	if bytes.Contains(resp.body, []byte("virus-scan-warning")) || bytes.Contains(resp.body, []byte("download_warning")) {
		return true
	}
	if !strings.Contains(resp.contentType, "text/html") {
		return false
	}
	head := resp.body
	if len(head) > 100 {
		head = head[:100]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<!doctype"))
}

// filename prefers Content-Disposition, then the last URL segment when it has an extension.
func filename(resp *response, fallback string) string {
	if resp.disposition != "" {
		if _, params, err := mime.ParseMediaType(resp.disposition); err == nil {
			if name := params["filename"]; name != "" {
				return name
			}
		}
	}
	if parsed, err := url.Parse(resp.finalURL); err == nil {
		base := path.Base(parsed.Path)
		if unescaped, err := url.PathUnescape(base); err == nil {
			base = unescaped
		}
		if strings.Contains(base, ".") {
			return base
		}
	}
	return fallback
}

// MediaType returns the declared media type, sniffing the body when none was sent.
func (d *Document) MediaType() string {
	ct := d.ContentType
	if ct == "" {
		ct = http.DetectContentType(d.Content)
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mediaType
}

// Text returns the document as plain text. HTML is reduced to its readable content
// and text formats pass through. Binary formats such as PDF and DOCX return
// ErrUnsupportedContent and need an external extractor.
func (d *Document) Text() (string, error) {
	mediaType := d.MediaType()
	switch {
	case mediaType == "text/html", mediaType == "application/xhtml+xml":
		return ExtractMainText(string(d.Content), ResumeSelectors())
	case strings.HasPrefix(mediaType, "text/"), mediaType == "application/json":
		if !utf8.Valid(d.Content) {
			return "", fmt.Errorf("%s: %w: body is not valid UTF-8", d.Filename, ErrUnsupportedContent)
		}
		return string(d.Content), nil
	default:
		return "", fmt.Errorf("%s (%s): %w", d.Filename, mediaType, ErrUnsupportedContent)
	}
}
