package garch

import (
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

const (
	// minObservations is the smallest return series the estimator accepts.
	// GARCH likelihoods on shorter series are too flat to optimize.
	minObservations = 30

	// maxPersistence caps alpha+beta strictly below 1 so the transformed
	// search space never leaves the stationary region.
	maxPersistence = 0.999
)

// Estimate fits the AR(1)+GARCH(1,1) model to a cleaned return series
// (no missing values) by maximum likelihood. The optimizer is Nelder-Mead
// over an unconstrained reparameterization, so every candidate it visits is
// admissible by construction.
func Estimate(returns []float64) (*Fit, error) {
	if len(returns) < minObservations {
		return nil, &EstimationError{Reason: "return series too short"}
	}

	mean, variance := stat.MeanVariance(returns, nil)
	if variance <= 0 || math.IsNaN(variance) {
		return nil, &EstimationError{Reason: "return series has no variance"}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return negLogLikelihood(returns, paramsFromVector(x))
		},
	}

	x0 := startingVector(mean, variance)
	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, &EstimationError{Reason: "optimizer did not converge", Err: err}
	}
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		return nil, &EstimationError{Reason: "likelihood diverged"}
	}

	params := paramsFromVector(result.X)
	if !params.admissible() {
		return nil, &EstimationError{Reason: "fitted parameters outside the admissible region"}
	}

	fit := &Fit{
		Params:        params,
		LogLikelihood: -result.F,
	}
	fit.Sigma, fit.CondMean, fit.Residuals = filter(returns, params)

	fit.Standardized = make([]float64, len(returns))
	for i := range returns {
		if fit.Sigma[i] <= 0 || math.IsNaN(fit.Sigma[i]) {
			return nil, &EstimationError{Reason: "non-positive conditional variance in fitted path"}
		}
		fit.Standardized[i] = fit.Residuals[i] / fit.Sigma[i]
	}

	return fit, nil
}

// paramsFromVector maps the unconstrained optimizer vector into admissible
// model parameters:
//
//	mu    = x0
//	phi   = tanh(x1)                             (-1, 1)
//	omega = exp(x2)                              (0, inf)
//	alpha = maxPersistence * s(x3)               (0, maxPersistence)
//	beta  = (maxPersistence - alpha) * s(x4)     alpha + beta < maxPersistence
//
// where s is the logistic function.
func paramsFromVector(x []float64) Params {
	alpha := maxPersistence * logistic(x[3])
	return Params{
		Mu:    x[0],
		Phi:   math.Tanh(x[1]),
		Omega: math.Exp(x[2]),
		Alpha: alpha,
		Beta:  (maxPersistence - alpha) * logistic(x[4]),
	}
}

// startingVector seeds the search at phi=0 with variance targeting:
// alpha=0.05, beta=0.90, omega chosen so the unconditional variance matches
// the sample variance.
func startingVector(mean, variance float64) []float64 {
	const (
		alpha0 = 0.05
		beta0  = 0.90
	)
	omega0 := variance * (1 - alpha0 - beta0)
	return []float64{
		mean,
		0,
		math.Log(omega0),
		logit(alpha0 / maxPersistence),
		logit(beta0 / (maxPersistence - alpha0)),
	}
}

// negLogLikelihood computes the negative Gaussian log-likelihood of the
// return series under the given parameters, conditioning on the first
// observation for the mean recursion and on the sample residual variance
// for the variance recursion.
func negLogLikelihood(returns []float64, p Params) float64 {
	if !p.admissible() {
		return math.Inf(1)
	}

	sigma, _, residuals := filter(returns, p)

	ll := 0.0
	for i := range returns {
		s2 := sigma[i] * sigma[i]
		if s2 <= 0 || math.IsNaN(s2) {
			return math.Inf(1)
		}
		ll += math.Log(2*math.Pi) + math.Log(s2) + residuals[i]*residuals[i]/s2
	}
	return 0.5 * ll
}

// filter runs the AR(1)+GARCH(1,1) recursions over the return series and
// returns the conditional std dev, conditional mean, and residual per
// observation, positionally aligned to the input.
func filter(returns []float64, p Params) (sigma, condMean, residuals []float64) {
	n := len(returns)
	sigma = make([]float64, n)
	condMean = make([]float64, n)
	residuals = make([]float64, n)

	// The first observation has no lag; use the unconditional AR mean.
	condMean[0] = p.UnconditionalMean()
	residuals[0] = returns[0] - condMean[0]
	for t := 1; t < n; t++ {
		condMean[t] = p.Mu + p.Phi*returns[t-1]
		residuals[t] = returns[t] - condMean[t]
	}

	// Seed the variance recursion with the sample residual variance.
	sumSq := 0.0
	for _, e := range residuals {
		sumSq += e * e
	}
	s2 := sumSq / float64(n)
	if s2 <= 0 {
		s2 = p.Omega
	}

	sigma[0] = math.Sqrt(s2)
	for t := 1; t < n; t++ {
		s2 = p.Omega + p.Alpha*residuals[t-1]*residuals[t-1] + p.Beta*s2
		sigma[t] = math.Sqrt(s2)
	}
	return sigma, condMean, residuals
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}
