package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestus/internal/common"
)

var (
	// Command-line flags
	configFile string
	flagSymbol string
	flagFrom   string
	flagTo     string
	flagOutput string

	// Global state, resolved in setup
	config *common.Config
	logger arbor.ILogger
)

var rootCmd = &cobra.Command{
	Use:   "aestus",
	Short: "Narrative sentiment and volatility analysis for a single equity",
	Long: `Aestus fetches daily prices and news headlines for one ticker, scores
the headlines against a polarity lexicon, aligns daily sentiment with log
returns, fits an AR(1)+GARCH(1,1) volatility model, and renders diagnostic
plots with a run summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Bare invocation runs the analysis
	RunE: runAnalyze,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (defaults to ./aestus.toml when present)")
	rootCmd.PersistentFlags().StringVarP(&flagSymbol, "symbol", "s", "", "Ticker to analyze (overrides config, e.g. NASDAQ:AAPL)")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Analysis start date, 2006-01-02 (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "Analysis end date, 2006-01-02 (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Report output directory (overrides config)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves configuration and initializes logging.
//
// Startup sequence (required order):
//  1. Load .env, then config (defaults -> file -> env)
//  2. Apply CLI overrides (highest priority)
//  3. Validate
//  4. Initialize logger, print banner
func setup() error {
	godotenv.Load()

	path := configFile
	if path == "" {
		if _, err := os.Stat("aestus.toml"); err == nil {
			path = "aestus.toml"
		}
	}

	var err error
	config, err = common.LoadFromFile(path)
	if err != nil {
		return err
	}

	common.ApplyFlagOverrides(config, flagSymbol, flagFrom, flagTo, flagOutput)

	if err := config.Validate(); err != nil {
		return err
	}

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	if path != "" {
		logger.Debug().Str("config", path).Msg("Configuration loaded")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
