package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/fetch"
	"github.com/jonathan/candidate-screener/internal/ingestion"
)

var fetchResumeCommand = &cobra.Command{
	Use:   "fetch-resume <url>",
	Short: "Download a resume from a direct or cloud share link",
	Long: `Resolves Google Drive, Dropbox, OneDrive and GitHub share links to their file and downloads it.

With --text the document is converted to cleaned text; HTML and plain-text files are supported.
Without it the raw bytes are written to --out.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetchResumeCmd,
}

var (
	fetchOut      string
	fetchText     bool
	fetchMaxMB    int64
	fetchTimeout  time.Duration
	fetchMetadata bool
)

func init() {
	fetchResumeCommand.Flags().StringVar(&fetchOut, "out", "", "Write the result to this file instead of stdout")
	fetchResumeCommand.Flags().BoolVar(&fetchText, "text", false, "Convert the document to cleaned text")
	fetchResumeCommand.Flags().Int64Var(&fetchMaxMB, "max-mb", fetch.DefaultMaxBytes>>20, "Maximum download size in megabytes")
	fetchResumeCommand.Flags().DurationVar(&fetchTimeout, "timeout", fetch.DefaultTimeout, "Download timeout")
	fetchResumeCommand.Flags().BoolVar(&fetchMetadata, "metadata", false, "Print download metadata as JSON to stderr")
	rootCmd.AddCommand(fetchResumeCommand)
}

func runFetchResumeCmd(cmd *cobra.Command, args []string) error {
	opts := &fetch.Options{Timeout: fetchTimeout, MaxBytes: fetchMaxMB << 20}

	var payload []byte
	if fetchText {
		text, meta, err := ingestion.IngestFromURL(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		payload = []byte(text + "\n")
		if fetchMetadata {
			if err := writeJSON(cmd.ErrOrStderr(), meta); err != nil {
				return err
			}
		}
	} else {
		if fetchOut == "" {
			return errors.New("--out is required when downloading raw bytes (or use --text)")
		}
		doc, err := fetch.Download(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		payload = doc.Content
		if fetchMetadata {
			if err := writeJSON(cmd.ErrOrStderr(), map[string]any{
				"source":       doc.SourceURL,
				"url":          doc.URL,
				"provider":     doc.Provider,
				"filename":     doc.Filename,
				"content_type": doc.MediaType(),
				"bytes":        doc.Size(),
			}); err != nil {
				return err
			}
		}
	}

	if fetchOut == "" {
		_, err := cmd.OutOrStdout().Write(payload)
		return err
	}
	if err := os.WriteFile(fetchOut, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fetchOut, err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d bytes to %s\n", len(payload), fetchOut)
	return nil
}
