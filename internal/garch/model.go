// Package garch fits an AR(1) mean / GARCH(1,1) variance model with normal
// innovations to a daily log-return series. Parameter estimation is
// delegated to gonum's numerical optimizer; this package supplies the
// likelihood, the parameter transforms that keep the search inside the
// admissible region, and the interpretation of the fitted output.
package garch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Params holds the model parameters.
//
// Mean equation:     r_t = mu + phi*r_{t-1} + eps_t
// Variance equation: sigma2_t = omega + alpha*eps2_{t-1} + beta*sigma2_{t-1}
type Params struct {
	Mu    float64 `json:"mu"`
	Phi   float64 `json:"phi"`
	Omega float64 `json:"omega"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Persistence returns alpha + beta, the rate at which variance shocks decay.
func (p Params) Persistence() float64 {
	return p.Alpha + p.Beta
}

// UnconditionalVariance returns the long-run variance implied by the fit.
func (p Params) UnconditionalVariance() float64 {
	return p.Omega / (1 - p.Persistence())
}

// UnconditionalMean returns the long-run mean of the AR(1) process.
func (p Params) UnconditionalMean() float64 {
	return p.Mu / (1 - p.Phi)
}

// admissible reports whether the parameters define a stationary model with
// positive variance.
func (p Params) admissible() bool {
	return p.Omega > 0 &&
		p.Alpha >= 0 && p.Beta >= 0 &&
		p.Persistence() < 1 &&
		math.Abs(p.Phi) < 1
}

// Fit is the fitted model over an input return series. All per-observation
// slices have the same length as the input and are positionally aligned
// to it.
type Fit struct {
	Params        Params
	LogLikelihood float64

	// Sigma is the conditional standard deviation per observation.
	Sigma []float64
	// CondMean is the conditional mean mu + phi*r_{t-1} per observation.
	CondMean []float64
	// Residuals are eps_t = r_t - CondMean_t.
	Residuals []float64
	// Standardized are eps_t / sigma_t; approximately N(0,1) under the model.
	Standardized []float64
}

// ValueAtRisk returns the per-observation lower return bound at the given
// confidence level (e.g. 0.95): CondMean_t - z*Sigma_t.
func (f *Fit) ValueAtRisk(confidence float64) []float64 {
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(confidence)
	vaR := make([]float64, len(f.Sigma))
	for i := range f.Sigma {
		vaR[i] = f.CondMean[i] - z*f.Sigma[i]
	}
	return vaR
}

// NewsImpactCurve evaluates next-period variance as a function of the
// current shock, holding lagged variance at its unconditional level:
// sigma2(eps) = omega + beta*sigma2_bar + alpha*eps^2. The shock grid spans
// +/- 3 unconditional standard deviations.
func (f *Fit) NewsImpactCurve(points int) (shocks, variances []float64) {
	if points < 2 {
		points = 2
	}
	sd := math.Sqrt(f.Params.UnconditionalVariance())
	base := f.Params.Omega + f.Params.Beta*f.Params.UnconditionalVariance()

	shocks = make([]float64, points)
	variances = make([]float64, points)
	for i := 0; i < points; i++ {
		eps := -3*sd + 6*sd*float64(i)/float64(points-1)
		shocks[i] = eps
		variances[i] = base + f.Params.Alpha*eps*eps
	}
	return shocks, variances
}

// EstimationError reports a failed or inadmissible maximum-likelihood fit.
// It is propagated, never retried.
type EstimationError struct {
	Reason string
	Err    error
}

func (e *EstimationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("volatility estimation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("volatility estimation failed: %s", e.Reason)
}

func (e *EstimationError) Unwrap() error {
	return e.Err
}
