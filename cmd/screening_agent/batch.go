package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/observability"
)

var batchCommand = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a list of candidates from a JSON file",
	Long: `Evaluates every candidate in a JSON array. Each entry has the same fields as the
evaluate --input file; resume_source may name a file or link instead of inline resume_text.

A failure affects only that candidate. Results are reported in input order.`,
	RunE: runBatchCmd,
}

var (
	batchInput       string
	batchOutput      string
	batchFormat      string
	batchMetricsAddr string
	batchConcurrency int
)

func init() {
	batchCommand.Flags().StringVarP(&batchInput, "input", "i", "", "JSON file with an array of candidates")
	batchCommand.Flags().StringVar(&batchOutput, "out", "", "Write the outcomes as JSON to this file")
	batchCommand.Flags().StringVar(&batchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the batch runs (e.g. :9090)")
	batchCommand.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Candidates evaluated at once (overrides pipeline.batch_concurrency)")
	addFormatFlag(batchCommand, &batchFormat)
	_ = batchCommand.MarkFlagRequired("input")

	_ = settings.BindPFlag("pipeline.batch_concurrency", batchCommand.Flags().Lookup("concurrency"))
	rootCmd.AddCommand(batchCommand)
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(batchFormat); err != nil {
		return err
	}
	ctx := cmd.Context()

	a, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if batchMetricsAddr != "" {
		stop := serveMetrics(a, batchMetricsAddr)
		defer stop()
	}

	candidates, err := loadBatch(ctx, batchInput, nil, func(name string, err error) {
		a.logger.Warn("resume could not be loaded", zap.String("candidate", name), zap.Error(err))
	})
	if err != nil {
		return err
	}

	outcomes := a.orchestrator.EvaluateCandidates(ctx, candidates)

	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := writeJSON(f, outcomes); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write outcomes: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if batchFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), outcomes)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintBatchSummary(outcomes)
	return nil
}

// serveMetrics exposes /metrics in the background and returns a func that shuts it down
func serveMetrics(a *application, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
