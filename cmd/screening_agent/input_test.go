package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-screener/internal/types"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// newCandidateCommand returns a throwaway command with the candidate flags parsed from args
func newCandidateCommand(t *testing.T, args ...string) (*cobra.Command, *candidateFlags) {
	t.Helper()
	f := &candidateFlags{}
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, f
}

func TestCandidateFlags_FlagsOnly(t *testing.T) {
	resume := writeTemp(t, "jane.txt", "Jane   Doe\n\n\n\nSenior Python developer")
	job := writeTemp(t, "job.txt", "Build   APIs")

	cmd, f := newCandidateCommand(t,
		"--resume", resume,
		"--name", "Jane Doe",
		"--email", "jane@example.com",
		"--job-title", "Backend Engineer",
		"--job-file", job,
		"--required", "Python, Flask",
		"--required", "SQL",
		"--preferred", "Docker",
		"--experience", "3",
		"--seniority", "Senior",
	)

	params, err := f.params(context.Background(), cmd, nil)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\nSenior Python developer", params.ResumeText)
	assert.Equal(t, "Build APIs", params.JobDescription)
	assert.Equal(t, []string{"Python", "Flask", "SQL"}, params.RequiredSkills)
	assert.Equal(t, []string{"Docker"}, params.PreferredSkills)
	assert.Equal(t, 3.0, params.RequiredExperience)
	assert.Equal(t, types.SenioritySenior, params.SeniorityLevel)
}

func TestJobFile_SameTextForEvaluateAndReevaluate(t *testing.T) {
	job := writeTemp(t, "job.html", `<html><body><nav>Careers</nav><main><h1>Backend   Engineer</h1><p>Build APIs in Go</p></main></body></html>`)

	cmd, f := newCandidateCommand(t, "--job-file", job)
	params, err := f.params(context.Background(), cmd, nil)
	require.NoError(t, err)

	overrides, err := buildOverrides(cmd, f, "")
	require.NoError(t, err)
	require.NotNil(t, overrides.JobDescription)

	assert.Equal(t, "Backend Engineer\nBuild APIs in Go", params.JobDescription)
	assert.Equal(t, params.JobDescription, *overrides.JobDescription)
}

func TestJobFile_Missing(t *testing.T) {
	_, err := readJobFile("/nonexistent/job.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read job file")
}

func TestCandidateFlags_FlagsOverrideInputFile(t *testing.T) {
	input := writeTemp(t, "candidate.json", `{
		"candidate_name": "Jane Doe",
		"candidate_email": "jane@example.com",
		"resume_text": "Python developer",
		"job_title": "Engineer",
		"job_description": "Build things",
		"required_skills": ["Python"],
		"required_experience": 2,
		"seniority_level": "mid"
	}`)

	cmd, f := newCandidateCommand(t, "--input", input, "--job-title", "Staff Engineer", "--seniority", "lead")

	params, err := f.params(context.Background(), cmd, nil)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", params.CandidateName)
	assert.Equal(t, "Python developer", params.ResumeText)
	assert.Equal(t, "Staff Engineer", params.JobTitle)
	assert.Equal(t, types.SeniorityLead, params.SeniorityLevel)
	assert.Equal(t, 2.0, params.RequiredExperience)
}

func TestCandidateFlags_ResumeFlagReplacesInlineText(t *testing.T) {
	input := writeTemp(t, "candidate.json", `{"candidate_name": "Jane", "resume_text": "old text"}`)
	resume := writeTemp(t, "new.txt", "new text")

	cmd, f := newCandidateCommand(t, "--input", input, "--resume", resume)

	params, err := f.params(context.Background(), cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "new text", params.ResumeText)
}

func TestCandidateFlags_MissingResume(t *testing.T) {
	cmd, f := newCandidateCommand(t, "--name", "Jane", "--resume", "/nonexistent/resume.txt")

	_, err := f.params(context.Background(), cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load resume for Jane")
}

func TestLoadBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Go developer"))
	}))
	defer server.Close()

	resume := writeTemp(t, "bob.txt", "Java developer")
	entries := []map[string]any{
		{"candidate_name": "Alice", "resume_text": "Inline resume"},
		{"candidate_name": "Bob", "resume_source": resume},
		{"candidate_name": "Carol", "resume_source": server.URL + "/carol.txt"},
		{"candidate_name": "Dan", "resume_source": "/nonexistent/dan.txt"},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	path := writeTemp(t, "batch.json", string(data))

	var warned []string
	candidates, err := loadBatch(context.Background(), path, nil, func(name string, _ error) {
		warned = append(warned, name)
	})
	require.NoError(t, err)

	require.Len(t, candidates, 4)
	assert.Equal(t, "Inline resume", candidates[0].ResumeText)
	assert.Equal(t, "Java developer", candidates[1].ResumeText)
	assert.Equal(t, "Go developer", candidates[2].ResumeText)
	assert.Empty(t, candidates[3].ResumeText)
	assert.Equal(t, []string{"Dan"}, warned)
}

func TestLoadBatch_InvalidJSON(t *testing.T) {
	path := writeTemp(t, "batch.json", `{"not": "an array"}`)

	_, err := loadBatch(context.Background(), path, nil, nil)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestBuildOverrides(t *testing.T) {
	overrides := writeTemp(t, "overrides.json", `{"job_title": "From file", "required_skills": ["Go"]}`)

	f := &candidateFlags{}
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--job-title", "From flag", "--experience", "0", "--seniority", "MID"}))

	o, err := buildOverrides(cmd, f, overrides)
	require.NoError(t, err)

	require.NotNil(t, o.JobTitle)
	assert.Equal(t, "From flag", *o.JobTitle)
	assert.Equal(t, []string{"Go"}, o.RequiredSkills)
	require.NotNil(t, o.RequiredExperience)
	assert.Equal(t, 0.0, *o.RequiredExperience)
	require.NotNil(t, o.SeniorityLevel)
	assert.Equal(t, types.SeniorityMid, *o.SeniorityLevel)
	assert.Nil(t, o.CandidateName)
	assert.Nil(t, o.ResumeText)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("text"))
	assert.NoError(t, checkFormat("json"))
	assert.Error(t, checkFormat("yaml"))
}

func TestQuickCommand(t *testing.T) {
	quickSkills = []string{"Python", " Django", "Docker"}
	quickRequired = []string{"python", "flask"}
	quickPreferred = []string{"docker"}
	quickFormat = "json"
	t.Cleanup(func() { quickSkills, quickRequired, quickPreferred, quickFormat = nil, nil, nil, "text" })

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runQuickCmd(cmd, nil))

	var result types.QuickSkillsResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 50, result.RequiredMatchPercentage)
	assert.Equal(t, "weak", result.Recommendation)
	assert.Equal(t, []string{"flask"}, result.MissingRequired)
}

func TestQuickCommand_EmptyInput(t *testing.T) {
	quickSkills, quickRequired, quickFormat = nil, nil, "text"

	err := runQuickCmd(&cobra.Command{}, nil)
	assert.Error(t, err)
}
