// Package report renders the diagnostic plots and the run summary for a
// fitted volatility model. Plots are written as PNG files into a single
// output directory; rendering failures abort the run like any other error.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestus/internal/garch"
)

// Data carries everything a full report needs. Dates, Returns and Scores are
// positionally aligned, one entry per cleaned return observation; Scores is
// nil-padded where the date had no headlines.
type Data struct {
	Symbol string
	RunID  string

	Dates   []time.Time
	Returns []float64
	Scores  []*int

	Fit           *garch.Fit
	VaRConfidence float64
	ACFLags       int
	DriftWarnings int
}

// Renderer writes report artifacts into a directory.
type Renderer struct {
	dir    string
	logger arbor.ILogger
}

// NewRenderer creates the output directory if needed.
func NewRenderer(dir string, logger arbor.ILogger) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &Renderer{dir: dir, logger: logger}, nil
}

// Render produces every diagnostic artifact and returns the written paths.
func (r *Renderer) Render(data *Data) ([]string, error) {
	type step struct {
		name string
		fn   func(*Data, string) error
	}
	steps := []step{
		{"sentiment_overlay.png", r.sentimentOverlay},
		{"conditional_volatility.png", r.volatilityBand},
		{"value_at_risk.png", r.valueAtRisk},
		{"acf_returns.png", r.acfReturns},
		{"acf_squared_residuals.png", r.acfSquaredResiduals},
		{"residual_density.png", r.residualDensity},
		{"residual_qq.png", r.residualQQ},
		{"news_impact.png", r.newsImpact},
		{"summary.txt", r.writeSummary},
	}

	written := make([]string, 0, len(steps))
	for _, s := range steps {
		path := filepath.Join(r.dir, s.name)
		if err := s.fn(data, path); err != nil {
			return written, fmt.Errorf("failed to render %s: %w", s.name, err)
		}
		r.logger.Debug().Str("path", path).Msg("Report artifact written")
		written = append(written, path)
	}
	return written, nil
}

func (r *Renderer) writeSummary(data *Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p := data.Fit.Params
	fmt.Fprintf(f, "Run:            %s\n", data.RunID)
	fmt.Fprintf(f, "Symbol:         %s\n", data.Symbol)
	if n := len(data.Dates); n > 0 {
		fmt.Fprintf(f, "Period:         %s to %s (%d observations)\n",
			data.Dates[0].Format("2006-01-02"), data.Dates[n-1].Format("2006-01-02"), n)
	}
	fmt.Fprintf(f, "\nAR(1) mean equation\n")
	fmt.Fprintf(f, "  mu:           %.6g\n", p.Mu)
	fmt.Fprintf(f, "  phi:          %.6g\n", p.Phi)
	fmt.Fprintf(f, "\nGARCH(1,1) variance equation\n")
	fmt.Fprintf(f, "  omega:        %.6g\n", p.Omega)
	fmt.Fprintf(f, "  alpha:        %.6g\n", p.Alpha)
	fmt.Fprintf(f, "  beta:         %.6g\n", p.Beta)
	fmt.Fprintf(f, "  persistence:  %.6g\n", p.Persistence())
	fmt.Fprintf(f, "\nLog-likelihood: %.4f\n", data.Fit.LogLikelihood)
	fmt.Fprintf(f, "Daily vol:      %.4f%% (long run)\n", 100*dailyVol(p))
	fmt.Fprintf(f, "Annualized vol: %.2f%%\n", 100*annualizedVol(p))
	fmt.Fprintf(f, "VaR level:      %.0f%%\n", 100*data.VaRConfidence)
	fmt.Fprintf(f, "Drift warnings: %d\n", data.DriftWarnings)
	return nil
}
