package report

import (
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ternarybob/aestus/internal/garch"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 4.5 * vg.Inch
	// trading days used to annualize daily volatility
	tradingDays = 252
)

var (
	colorReturn = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	colorScore  = color.RGBA{R: 214, G: 94, B: 0, A: 255}
	colorSigma  = color.RGBA{R: 0, G: 114, B: 178, A: 255}
	colorBound  = color.RGBA{R: 204, G: 0, B: 0, A: 255}
)

func dailyVol(p garch.Params) float64 {
	return math.Sqrt(p.UnconditionalVariance())
}

func annualizedVol(p garch.Params) float64 {
	return dailyVol(p) * math.Sqrt(tradingDays)
}

func newTimePlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())
	return p
}

func timeXYs(data *Data, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(ys))
	for i := range ys {
		xys[i].X = float64(data.Dates[i].Unix())
		xys[i].Y = ys[i]
	}
	return xys
}

func styledLine(xys plotter.XYs, c color.Color) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Width = vg.Points(1)
	return l, nil
}

// sentimentOverlay plots |return| against the daily sentiment score scaled
// down by 100 so both series fit a single axis.
func (r *Renderer) sentimentOverlay(data *Data, path string) error {
	p := newTimePlot("Absolute returns vs sentiment — "+data.Symbol, "|log return| / score ÷ 100")

	absXYs := make(plotter.XYs, len(data.Returns))
	for i, ret := range data.Returns {
		absXYs[i].X = float64(data.Dates[i].Unix())
		absXYs[i].Y = math.Abs(ret)
	}
	absLine, err := styledLine(absXYs, colorReturn)
	if err != nil {
		return err
	}

	scoreXYs := make(plotter.XYs, 0, len(data.Scores))
	for i, s := range data.Scores {
		if s == nil {
			continue
		}
		scoreXYs = append(scoreXYs, plotter.XY{
			X: float64(data.Dates[i].Unix()),
			Y: float64(*s) / 100,
		})
	}
	scoreLine, err := styledLine(scoreXYs, colorScore)
	if err != nil {
		return err
	}

	p.Add(absLine, scoreLine)
	p.Legend.Add("|return|", absLine)
	p.Legend.Add("score/100", scoreLine)
	p.Legend.Top = true
	return p.Save(plotWidth, plotHeight, path)
}

// volatilityBand plots returns inside the +/- conditional standard deviation
// band from the fit.
func (r *Renderer) volatilityBand(data *Data, path string) error {
	p := newTimePlot("Conditional volatility — "+data.Symbol, "Log return")

	retLine, err := styledLine(timeXYs(data, data.Returns), colorReturn)
	if err != nil {
		return err
	}

	upper := make([]float64, len(data.Fit.Sigma))
	lower := make([]float64, len(data.Fit.Sigma))
	for i, s := range data.Fit.Sigma {
		upper[i] = data.Fit.CondMean[i] + s
		lower[i] = data.Fit.CondMean[i] - s
	}
	upLine, err := styledLine(timeXYs(data, upper), colorSigma)
	if err != nil {
		return err
	}
	downLine, err := styledLine(timeXYs(data, lower), colorSigma)
	if err != nil {
		return err
	}

	p.Add(retLine, upLine, downLine)
	p.Legend.Add("return", retLine)
	p.Legend.Add("±1 conditional sd", upLine)
	p.Legend.Top = true
	return p.Save(plotWidth, plotHeight, path)
}

func (r *Renderer) valueAtRisk(data *Data, path string) error {
	p := newTimePlot("Value at risk — "+data.Symbol, "Log return")

	retLine, err := styledLine(timeXYs(data, data.Returns), colorReturn)
	if err != nil {
		return err
	}
	vaRLine, err := styledLine(timeXYs(data, data.Fit.ValueAtRisk(data.VaRConfidence)), colorBound)
	if err != nil {
		return err
	}
	vaRLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(retLine, vaRLine)
	p.Legend.Add("return", retLine)
	p.Legend.Add("VaR lower bound", vaRLine)
	p.Legend.Top = true
	return p.Save(plotWidth, plotHeight, path)
}

func (r *Renderer) acfReturns(data *Data, path string) error {
	return r.acfPlot(data.Returns, data.ACFLags, "ACF of returns — "+data.Symbol, path)
}

func (r *Renderer) acfSquaredResiduals(data *Data, path string) error {
	squared := make([]float64, len(data.Fit.Standardized))
	for i, z := range data.Fit.Standardized {
		squared[i] = z * z
	}
	return r.acfPlot(squared, data.ACFLags, "ACF of squared standardized residuals — "+data.Symbol, path)
}

// acfPlot draws sample autocorrelations as bars with the white-noise 95%
// band. Lag zero is omitted; it is 1 by construction.
func (r *Renderer) acfPlot(series []float64, lags int, title, path string) error {
	acf := garch.ACF(series, lags)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Lag"
	p.Y.Label.Text = "Autocorrelation"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(plotter.Values(acf[1:]), vg.Points(6))
	if err != nil {
		return err
	}
	bars.Color = colorSigma
	bars.XMin = 1
	p.Add(bars)

	bound := garch.ConfidenceBound(len(series))
	for _, b := range []float64{bound, -bound} {
		line, err := styledLine(plotter.XYs{
			{X: 0.5, Y: b},
			{X: float64(lags) + 0.5, Y: b},
		}, colorBound)
		if err != nil {
			return err
		}
		line.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(line)
	}
	return p.Save(plotWidth, plotHeight, path)
}

// residualDensity draws a normalized histogram of standardized residuals
// with the standard normal density overlaid.
func (r *Renderer) residualDensity(data *Data, path string) error {
	p := plot.New()
	p.Title.Text = "Standardized residual density — " + data.Symbol
	p.X.Label.Text = "Standardized residual"
	p.Y.Label.Text = "Density"
	p.Add(plotter.NewGrid())

	hist, err := plotter.NewHist(plotter.Values(data.Fit.Standardized), 40)
	if err != nil {
		return err
	}
	hist.Normalize(1)
	p.Add(hist)

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	pdf := plotter.NewFunction(norm.Prob)
	pdf.Color = colorBound
	pdf.Width = vg.Points(1.5)
	p.Add(pdf)
	p.Legend.Add("N(0,1)", pdf)
	p.Legend.Top = true
	return p.Save(plotWidth, plotHeight, path)
}

// residualQQ plots empirical quantiles of the standardized residuals against
// theoretical normal quantiles, with the identity reference line.
func (r *Renderer) residualQQ(data *Data, path string) error {
	n := len(data.Fit.Standardized)
	sorted := make([]float64, n)
	copy(sorted, data.Fit.Standardized)
	sort.Float64s(sorted)

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = norm.Quantile((float64(i) + 0.5) / float64(n))
		pts[i].Y = sorted[i]
	}

	p := plot.New()
	p.Title.Text = "Normal QQ plot — " + data.Symbol
	p.X.Label.Text = "Theoretical quantile"
	p.Y.Label.Text = "Empirical quantile"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.Color = colorSigma
	scatter.Radius = vg.Points(1.5)
	p.Add(scatter)

	lo, hi := pts[0].X, pts[n-1].X
	ident, err := styledLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}}, colorBound)
	if err != nil {
		return err
	}
	p.Add(ident)
	return p.Save(plotWidth, plotHeight, path)
}

func (r *Renderer) newsImpact(data *Data, path string) error {
	shocks, variances := data.Fit.NewsImpactCurve(121)
	xys := make(plotter.XYs, len(shocks))
	for i := range shocks {
		xys[i].X = shocks[i]
		xys[i].Y = variances[i]
	}

	p := plot.New()
	p.Title.Text = "News impact curve — " + data.Symbol
	p.X.Label.Text = "Shock ε"
	p.Y.Label.Text = "Next-period variance"
	p.Add(plotter.NewGrid())

	line, err := styledLine(xys, colorSigma)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1.5)
	p.Add(line)
	return p.Save(plotWidth, plotHeight, path)
}
