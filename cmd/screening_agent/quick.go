package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/scoring"
)

var quickCommand = &cobra.Command{
	Use:   "quick",
	Short: "Compare a skill list against required and preferred skills without calling a model",
	Example: `  screening_agent quick --skills python,django,docker --required python,flask --preferred docker`,
	RunE: runQuickCmd,
}

var (
	quickSkills    []string
	quickRequired  []string
	quickPreferred []string
	quickFormat    string
)

func init() {
	quickCommand.Flags().StringSliceVar(&quickSkills, "skills", nil, "Candidate skills")
	quickCommand.Flags().StringSliceVar(&quickRequired, "required", nil, "Required skills")
	quickCommand.Flags().StringSliceVar(&quickPreferred, "preferred", nil, "Preferred skills")
	addFormatFlag(quickCommand, &quickFormat)
	rootCmd.AddCommand(quickCommand)
}

func runQuickCmd(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(quickFormat); err != nil {
		return err
	}

	result, err := scoring.QuickSkillsEvaluation(trimAll(quickSkills), trimAll(quickRequired), trimAll(quickPreferred))
	if err != nil {
		return err
	}

	if quickFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintQuickSkills(result)
	return nil
}
