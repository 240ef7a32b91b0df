package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		url  string
		want Provider
	}{
		{"https://drive.google.com/file/d/abc/view", ProviderGoogleDrive},
		{"https://docs.google.com/document/d/abc/edit", ProviderGoogleDrive},
		{"https://www.dropbox.com/s/abc/resume.pdf?dl=0", ProviderDropbox},
		{"https://1drv.ms/b/s!abc", ProviderOneDrive},
		{"https://onedrive.live.com/redir?resid=abc", ProviderOneDrive},
		{"https://contoso-my.sharepoint.com/personal/doc.pdf", ProviderOneDrive},
		{"https://github.com/jane/cv/blob/main/resume.md", ProviderGitHub},
		{"https://raw.githubusercontent.com/jane/cv/main/resume.md", ProviderGitHub},
		{"https://example.com/resume.pdf", ProviderDirect},
		{"https://notgithub.com/resume.pdf", ProviderDirect},
		{"::bad", ProviderDirect},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectProvider(tt.url))
		})
	}
}

func TestDriveFileID(t *testing.T) {
	for _, u := range []string{
		"https://drive.google.com/file/d/1AbC-_x/view",
		"https://drive.google.com/open?id=1AbC-_x",
		"https://drive.google.com/uc?id=1AbC-_x&export=download",
	} {
		id, ok := DriveFileID(u)
		assert.True(t, ok, u)
		assert.Equal(t, "1AbC-_x", id, u)
	}

	_, ok := DriveFileID("https://drive.google.com/drive/my-drive")
	assert.False(t, ok)
}

func TestDirectURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "drive view link",
			in:   "https://drive.google.com/file/d/abc/view?usp=sharing",
			want: "https://drive.google.com/uc?export=download&id=abc",
		},
		{
			name: "dropbox preview",
			in:   "https://www.dropbox.com/s/abc/resume.pdf?dl=0",
			want: "https://www.dropbox.com/s/abc/resume.pdf?dl=1",
		},
		{
			name: "dropbox without query",
			in:   "https://www.dropbox.com/s/abc/resume.pdf",
			want: "https://www.dropbox.com/s/abc/resume.pdf?dl=1",
		},
		{
			name: "onedrive",
			in:   "https://onedrive.live.com/redir?resid=abc",
			want: "https://onedrive.live.com/redir?download=1&resid=abc",
		},
		{
			name: "onedrive already direct",
			in:   "https://onedrive.live.com/redir?download=1&resid=abc",
			want: "https://onedrive.live.com/redir?download=1&resid=abc",
		},
		{
			name: "github blob",
			in:   "https://github.com/jane/cv/blob/main/resume.md",
			want: "https://raw.githubusercontent.com/jane/cv/main/resume.md",
		},
		{
			name: "github raw unchanged",
			in:   "https://raw.githubusercontent.com/jane/cv/main/resume.md",
			want: "https://raw.githubusercontent.com/jane/cv/main/resume.md",
		},
		{
			name: "direct unchanged",
			in:   "https://example.com/resume.pdf?v=2",
			want: "https://example.com/resume.pdf?v=2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectURL(tt.in))
		})
	}
}

func TestDefaultFilename(t *testing.T) {
	assert.Equal(t, "google_drive_abc.pdf", defaultFilename(ProviderGoogleDrive, "https://drive.google.com/file/d/abc/view"))
	assert.Equal(t, "dropbox_file.pdf", defaultFilename(ProviderDropbox, "https://dropbox.com/s/x"))
	assert.Equal(t, "resume", defaultFilename(ProviderDirect, "https://example.com/cv/resume"))
	assert.Equal(t, "downloaded_file", defaultFilename(ProviderDirect, "https://example.com/"))
}
