package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// DateFormat is the calendar date layout used throughout the pipeline.
const DateFormat = "2006-01-02"

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Analysis    AnalysisConfig  `toml:"analysis"`
	Provider    ProviderConfig  `toml:"provider"`
	Headlines   HeadlinesConfig `toml:"headlines"`
	Lexicon     LexiconConfig   `toml:"lexicon"`
	Model       ModelConfig     `toml:"model"`
	Output      OutputConfig    `toml:"output"`
	Logging     LoggingConfig   `toml:"logging"`
}

// AnalysisConfig describes the symbol and date range under analysis
type AnalysisConfig struct {
	Symbol string `toml:"symbol" validate:"required"` // Exchange-qualified ticker (e.g., "NASDAQ:AAPL" or "AAPL")
	From   string `toml:"from" validate:"required"`   // Start date, "2006-01-02"
	To     string `toml:"to"`                         // End date, defaults to today when empty
}

// ProviderConfig contains market-data provider settings
type ProviderConfig struct {
	APIKey    string `toml:"api_key" validate:"required"`
	BaseURL   string `toml:"base_url"`   // Override for testing; empty uses the provider default
	RateLimit int    `toml:"rate_limit"` // Requests per second
}

// HeadlinesConfig describes where the headline corpus comes from
type HeadlinesConfig struct {
	Source     string `toml:"source" validate:"oneof=file provider"` // "file" (delimited corpus) or "provider" (news endpoint)
	File       string `toml:"file"`                                  // Path to delimited corpus, required when source = "file"
	DateColumn string `toml:"date_column"`                           // Column holding the publication date
	TextColumn string `toml:"text_column"`                           // Column holding the headline text
	DateLayout string `toml:"date_layout"`                           // Go time layout for the date column
}

// LexiconConfig describes the polarity lexicon source
type LexiconConfig struct {
	File string `toml:"file"` // Optional word,polarity CSV; empty uses the embedded default lexicon
}

// ModelConfig contains volatility-model settings.
// Mean and variance orders are fixed at AR(1)/GARCH(1,1) with normal
// innovations; only presentation-level knobs are exposed here.
type ModelConfig struct {
	VaRConfidence float64 `toml:"var_confidence" validate:"gt=0,lt=1"` // Value-at-risk confidence level
	ACFLags       int     `toml:"acf_lags" validate:"gt=0"`            // Lags rendered in autocorrelation plots
}

// OutputConfig contains report output settings
type OutputConfig struct {
	Dir string `toml:"dir"` // Directory for rendered plots and the run summary
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in aestus.toml; model orders are
// fixed in code for reproducibility.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Analysis: AnalysisConfig{
			From: time.Now().AddDate(-1, 0, 0).Format(DateFormat), // One year lookback
		},
		Provider: ProviderConfig{
			RateLimit: 10,
		},
		Headlines: HeadlinesConfig{
			Source:     "file",
			DateColumn: "Date",
			TextColumn: "News",
			DateLayout: DateFormat,
		},
		Model: ModelConfig{
			VaRConfidence: 0.95,
			ACFLags:       20,
		},
		Output: OutputConfig{
			Dir: "./output",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("AESTUS_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if symbol := os.Getenv("AESTUS_SYMBOL"); symbol != "" {
		config.Analysis.Symbol = symbol
	}
	if from := os.Getenv("AESTUS_FROM"); from != "" {
		config.Analysis.From = from
	}
	if to := os.Getenv("AESTUS_TO"); to != "" {
		config.Analysis.To = to
	}

	if apiKey := os.Getenv("AESTUS_PROVIDER_API_KEY"); apiKey != "" {
		config.Provider.APIKey = apiKey
	} else if apiKey := os.Getenv("EODHD_API_TOKEN"); apiKey != "" {
		config.Provider.APIKey = apiKey
	}
	if baseURL := os.Getenv("AESTUS_PROVIDER_BASE_URL"); baseURL != "" {
		config.Provider.BaseURL = baseURL
	}
	if rateLimit := os.Getenv("AESTUS_PROVIDER_RATE_LIMIT"); rateLimit != "" {
		if rl, err := strconv.Atoi(rateLimit); err == nil {
			config.Provider.RateLimit = rl
		}
	}

	if source := os.Getenv("AESTUS_HEADLINES_SOURCE"); source != "" {
		config.Headlines.Source = source
	}
	if file := os.Getenv("AESTUS_HEADLINES_FILE"); file != "" {
		config.Headlines.File = file
	}

	if file := os.Getenv("AESTUS_LEXICON_FILE"); file != "" {
		config.Lexicon.File = file
	}

	if dir := os.Getenv("AESTUS_OUTPUT_DIR"); dir != "" {
		config.Output.Dir = dir
	}

	if level := os.Getenv("AESTUS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
// Command-line flags have highest priority.
func ApplyFlagOverrides(config *Config, symbol, from, to, outputDir string) {
	if symbol != "" {
		config.Analysis.Symbol = symbol
	}
	if from != "" {
		config.Analysis.From = from
	}
	if to != "" {
		config.Analysis.To = to
	}
	if outputDir != "" {
		config.Output.Dir = outputDir
	}
}

// Validate checks the resolved configuration for structural problems before
// the pipeline starts.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.Parse(DateFormat, c.Analysis.From); err != nil {
		return fmt.Errorf("invalid analysis.from %q: %w", c.Analysis.From, err)
	}
	if c.Analysis.To != "" {
		if _, err := time.Parse(DateFormat, c.Analysis.To); err != nil {
			return fmt.Errorf("invalid analysis.to %q: %w", c.Analysis.To, err)
		}
	}
	if c.Headlines.Source == "file" && c.Headlines.File == "" {
		return fmt.Errorf("headlines.file is required when headlines.source is \"file\"")
	}
	return nil
}

// DateRange returns the parsed analysis window. An empty "to" resolves to
// today's date.
func (c *Config) DateRange() (time.Time, time.Time, error) {
	from, err := time.Parse(DateFormat, c.Analysis.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to := time.Now().UTC().Truncate(24 * time.Hour)
	if c.Analysis.To != "" {
		to, err = time.Parse(DateFormat, c.Analysis.To)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("analysis window ends (%s) before it starts (%s)",
			to.Format(DateFormat), from.Format(DateFormat))
	}
	return from, to, nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
