package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/fetch"
	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/types"
)

// candidateFile is one candidate as written in an input file. ResumeSource, a path or
// link, is read into ResumeText when the latter is empty.
type candidateFile struct {
	types.CandidateParams
	ResumeSource string `json:"resume_source,omitempty"`
}

// candidateFlags are the flags shared by commands that take one candidate
type candidateFlags struct {
	input          string
	resume         string
	name           string
	email          string
	phone          string
	jobTitle       string
	jobDescription string
	jobFile        string
	required       []string
	preferred      []string
	experience     float64
	seniority      string
	industry       string
}

func (f *candidateFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "JSON file with candidate parameters (flags override its values)")
	fs.StringVarP(&f.resume, "resume", "r", "", "Resume file path or URL (Google Drive, Dropbox, OneDrive, GitHub or direct)")
	fs.StringVarP(&f.name, "name", "n", "", "Candidate name")
	fs.StringVar(&f.email, "email", "", "Candidate email")
	fs.StringVar(&f.phone, "phone", "", "Candidate phone")
	fs.StringVar(&f.jobTitle, "job-title", "", "Job title")
	fs.StringVar(&f.jobDescription, "job-description", "", "Job description text")
	fs.StringVar(&f.jobFile, "job-file", "", "Path to a file holding the job description")
	fs.StringSliceVar(&f.required, "required", nil, "Required skills (comma separated or repeated)")
	fs.StringSliceVar(&f.preferred, "preferred", nil, "Preferred skills (comma separated or repeated)")
	fs.Float64Var(&f.experience, "experience", 0, "Required years of experience")
	fs.StringVar(&f.seniority, "seniority", "", "Seniority level: entry, mid, senior, lead or executive")
	fs.StringVar(&f.industry, "industry", "", "Industry preference")
}

// params merges the input file with explicitly set flags and resolves the resume source
func (f *candidateFlags) params(ctx context.Context, cmd *cobra.Command, opts *fetch.Options) (types.CandidateParams, error) {
	var entry candidateFile
	if f.input != "" {
		if err := readJSONFile(f.input, &entry); err != nil {
			return types.CandidateParams{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("resume") {
		entry.ResumeSource = f.resume
		entry.ResumeText = ""
	}
	if changed("name") {
		entry.CandidateName = f.name
	}
	if changed("email") {
		entry.CandidateEmail = f.email
	}
	if changed("phone") {
		entry.CandidatePhone = f.phone
	}
	if changed("job-title") {
		entry.JobTitle = f.jobTitle
	}
	if changed("job-description") {
		entry.JobDescription = f.jobDescription
	}
	if changed("job-file") {
		text, err := readJobFile(f.jobFile)
		if err != nil {
			return types.CandidateParams{}, err
		}
		entry.JobDescription = text
	}
	if changed("required") {
		entry.RequiredSkills = trimAll(f.required)
	}
	if changed("preferred") {
		entry.PreferredSkills = trimAll(f.preferred)
	}
	if changed("experience") {
		entry.RequiredExperience = f.experience
	}
	if changed("seniority") {
		entry.SeniorityLevel = types.SeniorityLevel(strings.ToLower(f.seniority))
	}
	if changed("industry") {
		entry.IndustryPreference = f.industry
	}

	return resolveResume(ctx, entry, opts)
}

// resolveResume reads the resume source into ResumeText when no text was given inline
func resolveResume(ctx context.Context, entry candidateFile, opts *fetch.Options) (types.CandidateParams, error) {
	params := entry.CandidateParams
	if params.ResumeText != "" || entry.ResumeSource == "" {
		return params, nil
	}
	text, _, err := ingestion.Ingest(ctx, entry.ResumeSource, opts)
	if err != nil {
		return params, fmt.Errorf("failed to load resume for %s: %w", orUnknown(params.CandidateName), err)
	}
	params.ResumeText = text
	return params, nil
}

// loadBatch reads a JSON array of candidates and resolves each resume source.
// A resume that cannot be loaded is left empty so validation reports it for that candidate only.
func loadBatch(ctx context.Context, path string, opts *fetch.Options, warn func(string, error)) ([]types.CandidateParams, error) {
	var entries []candidateFile
	if err := readJSONFile(path, &entries); err != nil {
		return nil, err
	}

	out := make([]types.CandidateParams, 0, len(entries))
	for _, entry := range entries {
		params, err := resolveResume(ctx, entry, opts)
		if err != nil && warn != nil {
			warn(entry.CandidateName, err)
		}
		out = append(out, params)
	}
	return out, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orUnknown(name string) string {
	if name == "" {
		return "unnamed candidate"
	}
	return name
}

// addFormatFlag registers --format on cmd
func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "o", "text", "Output format: text or json")
}

func checkFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want text or json)", format)
	}
}

// readJobFile loads a job description from a text or HTML file
func readJobFile(path string) (string, error) {
	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job file: %w", err)
	}
	return text, nil
}
