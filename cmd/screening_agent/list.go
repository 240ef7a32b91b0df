package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/db"
)

var listCommand = &cobra.Command{
	Use:   "list",
	Short: "List stored evaluations, newest first",
	RunE:  runListCmd,
}

var (
	listDecision string
	listEmail    string
	listLimit    int
	listFormat   string
)

func init() {
	listCommand.Flags().StringVar(&listDecision, "decision", "", "Only show this decision (strong_yes, yes, maybe, no, strong_no)")
	listCommand.Flags().StringVar(&listEmail, "email", "", "Filter by candidate email (ILIKE pattern)")
	listCommand.Flags().IntVar(&listLimit, "limit", 50, "Maximum rows")
	addFormatFlag(listCommand, &listFormat)
	rootCmd.AddCommand(listCommand)
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(listFormat); err != nil {
		return err
	}

	cfg, logger, err := newLoggedConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url is not set: use DATABASE_URL or the config file")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	rows, err := database.List(ctx, db.ListFilters{Decision: listDecision, Email: listEmail, Limit: listLimit})
	if err != nil {
		return err
	}

	if listFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), rows)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCANDIDATE\tJOB\tSCORE\tDECISION\tRUNS")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n", r.ID, r.CandidateName, r.JobTitle, r.FinalScore, r.Decision, r.EvaluationCount)
	}
	return w.Flush()
}
