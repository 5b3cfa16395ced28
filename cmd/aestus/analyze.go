package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ternarybob/aestus/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full sentiment and volatility analysis",
	Long: `Fetches prices and headlines for the configured symbol and date range,
scores daily sentiment, fits the volatility model, and writes plots plus a
summary into the output directory.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl-C aborts the run cleanly mid-fetch
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn().Msg("Interrupt received, aborting run")
		cancel()
	}()

	runner := pipeline.NewRunner(config, logger)
	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info().
		Str("run_id", result.RunID).
		Int("artifacts", len(result.Artifacts)).
		Str("output", config.Output.Dir).
		Msg("Report written")
	return nil
}
