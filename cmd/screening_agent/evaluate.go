package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/observability"
)

var evaluateCommand = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one candidate against a job and store the result",
	Long: `Runs resume parsing, the skills, experience and cultural-fit analyses and score synthesis
for a single candidate, then persists the evaluation.

Candidate parameters can come from a JSON file (--input) and/or flags. --resume accepts a local
file or a share link, which is downloaded and converted to text.`,
	Example: `  screening_agent evaluate --resume resume.txt --name "Jane Doe" --email jane@example.com \
    --job-title "Backend Engineer" --job-file job.txt --required Go,PostgreSQL --experience 3 --seniority mid`,
	RunE: runEvaluateCmd,
}

var (
	evaluateFlags  candidateFlags
	evaluateFormat string
)

func init() {
	evaluateFlags.register(evaluateCommand)
	addFormatFlag(evaluateCommand, &evaluateFormat)
	rootCmd.AddCommand(evaluateCommand)
}

func runEvaluateCmd(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(evaluateFormat); err != nil {
		return err
	}
	ctx := cmd.Context()

	a, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	params, err := evaluateFlags.params(ctx, cmd, nil)
	if err != nil {
		return err
	}

	out := a.orchestrator.EvaluateCandidate(ctx, params)
	if evaluateFormat == "json" {
		if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintOutcome(out)
	}

	if !out.Success {
		return fmt.Errorf("evaluation failed (%s)", out.ErrorKind)
	}
	return nil
}
