// Package pipeline wires the four analysis stages into a single run:
// price and headline acquisition, lexicon scoring, return alignment, and
// volatility estimation with report rendering. A run is linear and
// side-effect free except for the report directory; any stage error aborts
// the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestus/internal/common"
	"github.com/ternarybob/aestus/internal/corpus"
	"github.com/ternarybob/aestus/internal/eodhd"
	"github.com/ternarybob/aestus/internal/garch"
	"github.com/ternarybob/aestus/internal/lexicon"
	"github.com/ternarybob/aestus/internal/report"
	"github.com/ternarybob/aestus/internal/sentiment"
	"github.com/ternarybob/aestus/internal/series"
)

// providerNewsLimit caps a single news request; the provider maximum.
const providerNewsLimit = 1000

// VolatilityEstimate is a fitted conditional standard deviation attached to
// the calendar date of the return observation it describes.
type VolatilityEstimate struct {
	Date              time.Time
	ConditionalStdDev float64
}

// Result is the output of one full run.
type Result struct {
	RunID  string
	Symbol string

	// Records is the full merged price/sentiment table, ordered by date.
	Records []series.MergedRecord
	// Scored is Records restricted to dates present in both series.
	Scored []series.MergedRecord

	Fit        *garch.Fit
	Volatility []VolatilityEstimate

	// DriftWarnings counts scored return dates that had no matching
	// conditional standard deviation after the date join.
	DriftWarnings int

	Artifacts []string
}

// Runner executes the analysis pipeline for one configured symbol.
type Runner struct {
	config *common.Config
	client *eodhd.Client
	logger arbor.ILogger
}

// NewRunner builds a runner and its provider client from configuration.
func NewRunner(config *common.Config, logger arbor.ILogger) *Runner {
	opts := []eodhd.ClientOption{
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.Provider.RateLimit),
	}
	if config.Provider.BaseURL != "" {
		opts = append(opts, eodhd.WithBaseURL(config.Provider.BaseURL))
	}
	return &Runner{
		config: config,
		client: eodhd.NewClient(config.Provider.APIKey, opts...),
		logger: logger,
	}
}

// Run executes the full pipeline and renders the report.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ticker := common.ParseTicker(r.config.Analysis.Symbol)
	symbol := ticker.ProviderSymbol()

	from, to, err := r.config.DateRange()
	if err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("run_id", runID).
		Str("symbol", symbol).
		Str("from", from.Format(common.DateFormat)).
		Str("to", to.Format(common.DateFormat)).
		Msg("Starting analysis run")

	prices, err := r.loadPrices(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	headlines, err := r.loadHeadlines(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	lex, err := r.loadLexicon()
	if err != nil {
		return nil, err
	}

	scores := sentiment.NewScorer(lex).ScoreHeadlines(headlines)
	r.logger.Info().
		Int("prices", len(prices)).
		Int("headlines", len(headlines)).
		Int("scored_days", len(scores)).
		Msg("Inputs loaded and scored")

	records, err := series.Align(prices, scores)
	if err != nil {
		return nil, err
	}

	dates, returns := series.Returns(records)
	fit, err := garch.Estimate(returns)
	if err != nil {
		return nil, err
	}

	scored := series.RestrictToScored(records)
	volatility, drift := r.attachVolatility(scored, dates, fit.Sigma)

	result := &Result{
		RunID:         runID,
		Symbol:        symbol,
		Records:       records,
		Scored:        scored,
		Fit:           fit,
		Volatility:    volatility,
		DriftWarnings: drift,
	}

	artifacts, err := r.render(result, dates, returns, records)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	p := fit.Params
	r.logger.Info().
		Str("run_id", runID).
		Str("mu", fmt.Sprintf("%.6g", p.Mu)).
		Str("phi", fmt.Sprintf("%.6g", p.Phi)).
		Str("omega", fmt.Sprintf("%.6g", p.Omega)).
		Str("alpha", fmt.Sprintf("%.6g", p.Alpha)).
		Str("beta", fmt.Sprintf("%.6g", p.Beta)).
		Str("persistence", fmt.Sprintf("%.4f", p.Persistence())).
		Str("log_likelihood", fmt.Sprintf("%.4f", fit.LogLikelihood)).
		Int("drift_warnings", drift).
		Msg("Analysis run complete")

	return result, nil
}

// loadPrices fetches daily closes and converts them into the ordered price
// series. Adjusted close is preferred so splits and dividends do not show
// up as spurious returns.
func (r *Runner) loadPrices(ctx context.Context, symbol string, from, to time.Time) ([]series.PricePoint, error) {
	eod, err := r.client.GetEOD(ctx, symbol, from, to)
	if err != nil {
		if eodhd.IsUnknownSymbol(err) {
			return nil, &DataUnavailableError{Stage: "prices", Symbol: symbol, Err: err}
		}
		return nil, err
	}
	if len(eod) == 0 {
		return nil, &DataUnavailableError{Stage: "prices", Symbol: symbol}
	}

	prices := make([]series.PricePoint, 0, len(eod))
	for _, d := range eod {
		px := d.AdjustedClose
		if px == 0 {
			px = d.Close
		}
		prices = append(prices, series.PricePoint{Date: d.Date, Close: px})
	}
	return prices, nil
}

// loadHeadlines reads the corpus from the configured source: a local
// delimited file, or the provider's news endpoint.
func (r *Runner) loadHeadlines(ctx context.Context, symbol string, from, to time.Time) ([]sentiment.Headline, error) {
	switch r.config.Headlines.Source {
	case "provider":
		items, err := r.client.GetNews(ctx, symbol, from, to, providerNewsLimit)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, &DataUnavailableError{Stage: "headlines", Symbol: symbol}
		}
		headlines := make([]sentiment.Headline, 0, len(items))
		for _, item := range items {
			headlines = append(headlines, sentiment.Headline{Date: item.Date, Text: item.Title})
		}
		return headlines, nil

	default:
		opts := corpus.Options{
			DateColumn: r.config.Headlines.DateColumn,
			TextColumn: r.config.Headlines.TextColumn,
			DateLayout: r.config.Headlines.DateLayout,
			Comma:      ',',
		}
		headlines, err := corpus.Load(r.config.Headlines.File, opts)
		if err != nil {
			return nil, &DataUnavailableError{Stage: "headlines", Symbol: symbol, Err: err}
		}
		return headlines, nil
	}
}

func (r *Runner) loadLexicon() (*lexicon.Lexicon, error) {
	if r.config.Lexicon.File != "" {
		lex, err := lexicon.LoadFile(r.config.Lexicon.File)
		if err != nil {
			return nil, err
		}
		r.logger.Debug().Str("file", r.config.Lexicon.File).Int("words", lex.Len()).Msg("Loaded lexicon file")
		return lex, nil
	}
	return lexicon.Default(), nil
}

// attachVolatility joins conditional standard deviations onto the scored
// records by date. Each fitted sigma carries the date of the return it
// describes, so the join is exact; a scored return date with no sigma is a
// drift warning, logged and counted rather than silently shifted over.
func (r *Runner) attachVolatility(scored []series.MergedRecord, dates []time.Time, sigma []float64) ([]VolatilityEstimate, int) {
	byDate := make(map[time.Time]float64, len(dates))
	for i, d := range dates {
		byDate[d] = sigma[i]
	}

	estimates := make([]VolatilityEstimate, 0, len(scored))
	drift := 0
	for _, rec := range scored {
		if rec.Return == nil {
			continue
		}
		s, ok := byDate[rec.Date]
		if !ok {
			drift++
			r.logger.Warn().
				Str("date", rec.Date.Format(common.DateFormat)).
				Msg("Alignment drift: scored return date has no conditional volatility")
			continue
		}
		estimates = append(estimates, VolatilityEstimate{Date: rec.Date, ConditionalStdDev: s})
	}
	return estimates, drift
}

func (r *Runner) render(result *Result, dates []time.Time, returns []float64, records []series.MergedRecord) ([]string, error) {
	scoreByDate := make(map[time.Time]*int, len(records))
	for _, rec := range records {
		scoreByDate[rec.Date] = rec.Score
	}
	scores := make([]*int, len(dates))
	for i, d := range dates {
		scores[i] = scoreByDate[d]
	}

	renderer, err := report.NewRenderer(r.config.Output.Dir, r.logger)
	if err != nil {
		return nil, err
	}
	return renderer.Render(&report.Data{
		Symbol:        result.Symbol,
		RunID:         result.RunID,
		Dates:         dates,
		Returns:       returns,
		Scores:        scores,
		Fit:           result.Fit,
		VaRConfidence: r.config.Model.VaRConfidence,
		ACFLags:       r.config.Model.ACFLags,
		DriftWarnings: result.DriftWarnings,
	})
}
