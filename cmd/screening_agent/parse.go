package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/types"
)

var parseCommand = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume into structured data without scoring it",
	RunE:  runParseCmd,
}

var (
	parseResume string
	parseName   string
	parseEmail  string
	parsePhone  string
	parseFormat string
)

func init() {
	parseCommand.Flags().StringVarP(&parseResume, "resume", "r", "", "Resume file path or URL")
	parseCommand.Flags().StringVarP(&parseName, "name", "n", "", "Candidate name hint")
	parseCommand.Flags().StringVar(&parseEmail, "email", "", "Candidate email hint")
	parseCommand.Flags().StringVar(&parsePhone, "phone", "", "Candidate phone hint")
	addFormatFlag(parseCommand, &parseFormat)
	_ = parseCommand.MarkFlagRequired("resume")
	rootCmd.AddCommand(parseCommand)
}

func runParseCmd(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(parseFormat); err != nil {
		return err
	}
	if parseResume == "" {
		return errors.New("--resume is required")
	}
	ctx := cmd.Context()

	text, _, err := ingestion.Ingest(ctx, parseResume, nil)
	if err != nil {
		return err
	}

	a, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	resume, err := a.orchestrator.ParseResumeOnly(ctx, text, types.ResumeHints{
		Name:  parseName,
		Email: parseEmail,
		Phone: parsePhone,
	})
	if err != nil {
		return err
	}

	if parseFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), resume)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintParsedResume(resume)
	return nil
}
