package fetch

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Provider identifies where a resume link is hosted.
type Provider string

const (
	// ProviderGoogleDrive covers drive.google.com and docs.google.com links
	ProviderGoogleDrive Provider = "google_drive"
	// ProviderDropbox covers dropbox.com share links
	ProviderDropbox Provider = "dropbox"
	// ProviderOneDrive covers onedrive.live.com, sharepoint and 1drv.ms links
	ProviderOneDrive Provider = "onedrive"
	// ProviderGitHub covers github.com blob links and raw content
	ProviderGitHub Provider = "github"
	// ProviderDirect is any other URL, fetched as is
	ProviderDirect Provider = "direct"
)

var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/document/d/([a-zA-Z0-9_-]+)`),
}

const driveDownloadURL = "https://drive.google.com/uc"

// DetectProvider identifies the hosting provider from a URL.
func DetectProvider(urlStr string) Provider {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ProviderDirect
	}
	host := strings.ToLower(parsed.Hostname())

	switch {
	case hostMatches(host, "drive.google.com"), hostMatches(host, "docs.google.com"):
		return ProviderGoogleDrive
	case hostMatches(host, "dropbox.com"):
		return ProviderDropbox
	case hostMatches(host, "onedrive.live.com"), hostMatches(host, "1drv.ms"), strings.HasSuffix(host, ".sharepoint.com"):
		return ProviderOneDrive
	case hostMatches(host, "github.com"), hostMatches(host, "raw.githubusercontent.com"):
		return ProviderGitHub
	default:
		return ProviderDirect
	}
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// DriveFileID extracts the file id from the known Google Drive URL shapes.
func DriveFileID(urlStr string) (string, bool) {
	for _, p := range driveIDPatterns {
		if m := p.FindStringSubmatch(urlStr); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// DirectURL rewrites a share link into the URL that serves the file bytes.
// Links that need no rewriting, or cannot be parsed, are returned unchanged.
func DirectURL(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	switch DetectProvider(urlStr) {
	case ProviderGoogleDrive:
		if id, ok := DriveFileID(urlStr); ok {
			return driveURL(id, "")
		}
	case ProviderDropbox:
		q := parsed.Query()
		q.Del("raw")
		q.Set("dl", "1")
		parsed.RawQuery = q.Encode()
		return parsed.String()
	case ProviderOneDrive:
		q := parsed.Query()
		if q.Get("download") != "1" {
			q.Set("download", "1")
			parsed.RawQuery = q.Encode()
		}
		return parsed.String()
	case ProviderGitHub:
		if hostMatches(strings.ToLower(parsed.Hostname()), "github.com") {
			parsed.Host = "raw.githubusercontent.com"
			parsed.Path = strings.Replace(parsed.Path, "/blob/", "/", 1)
			return parsed.String()
		}
	}
	return urlStr
}

func driveURL(id, confirm string) string {
	q := url.Values{}
	q.Set("id", id)
	q.Set("export", "download")
	if confirm != "" {
		q.Set("confirm", confirm)
	}
	return driveDownloadURL + "?" + q.Encode()
}

// defaultFilename is used when neither the headers nor the URL name the file.
func defaultFilename(p Provider, urlStr string) string {
	switch p {
	case ProviderGoogleDrive:
		if id, ok := DriveFileID(urlStr); ok {
			return "google_drive_" + id + ".pdf"
		}
		return "google_drive_file.pdf"
	case ProviderDropbox:
		return "dropbox_file.pdf"
	case ProviderOneDrive:
		return "onedrive_file.pdf"
	default:
		if parsed, err := url.Parse(urlStr); err == nil {
			if base := path.Base(parsed.Path); base != "." && base != "/" {
				return base
			}
		}
		return "downloaded_file"
	}
}
