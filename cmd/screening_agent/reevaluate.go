package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/types"
)

var reevaluateCommand = &cobra.Command{
	Use:   "reevaluate <evaluation-id>",
	Short: "Re-run a stored evaluation with optional overrides",
	Long: `Loads a stored evaluation, applies any overrides and runs the full pipeline again.
The record keeps its ID and creation time; its evaluation count is incremented.`,
	Args: cobra.ExactArgs(1),
	RunE: runReevaluateCmd,
}

var (
	reevalOverrides string
	reevalFlags     candidateFlags
	reevalFormat    string
)

func init() {
	reevaluateCommand.Flags().StringVar(&reevalOverrides, "overrides", "", "JSON file with fields to override")
	reevalFlags.register(reevaluateCommand)
	_ = reevaluateCommand.Flags().MarkHidden("input")
	addFormatFlag(reevaluateCommand, &reevalFormat)
	rootCmd.AddCommand(reevaluateCommand)
}

func runReevaluateCmd(cmd *cobra.Command, args []string) error {
	if err := checkFormat(reevalFormat); err != nil {
		return err
	}
	ctx := cmd.Context()

	overrides, err := buildOverrides(cmd, &reevalFlags, reevalOverrides)
	if err != nil {
		return err
	}

	a, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireDatabase(); err != nil {
		return err
	}

	out := a.orchestrator.ReEvaluateCandidate(ctx, args[0], overrides)
	if reevalFormat == "json" {
		if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintOutcome(out)
	}

	if !out.Success {
		return fmt.Errorf("re-evaluation failed (%s)", out.ErrorKind)
	}
	return nil
}

// buildOverrides reads the overrides file and layers explicitly set flags on top
func buildOverrides(cmd *cobra.Command, f *candidateFlags, path string) (types.CandidateOverrides, error) {
	var o types.CandidateOverrides
	if path != "" {
		if err := readJSONFile(path, &o); err != nil {
			return o, err
		}
	}

	changed := cmd.Flags().Changed
	str := func(flag, value string, target **string) {
		if changed(flag) {
			v := value
			*target = &v
		}
	}
	str("name", f.name, &o.CandidateName)
	str("email", f.email, &o.CandidateEmail)
	str("phone", f.phone, &o.CandidatePhone)
	str("job-title", f.jobTitle, &o.JobTitle)
	str("job-description", f.jobDescription, &o.JobDescription)
	str("industry", f.industry, &o.IndustryPreference)

	if changed("job-file") {
		text, err := readJobFile(f.jobFile)
		if err != nil {
			return o, err
		}
		o.JobDescription = &text
	}
	if changed("resume") {
		text, _, err := ingestion.Ingest(cmd.Context(), f.resume, nil)
		if err != nil {
			return o, fmt.Errorf("failed to load resume: %w", err)
		}
		o.ResumeText = &text
	}
	if changed("required") {
		o.RequiredSkills = trimAll(f.required)
	}
	if changed("preferred") {
		o.PreferredSkills = trimAll(f.preferred)
	}
	if changed("experience") {
		years := f.experience
		o.RequiredExperience = &years
	}
	if changed("seniority") {
		level := types.SeniorityLevel(strings.ToLower(f.seniority))
		o.SeniorityLevel = &level
	}
	return o, nil
}
