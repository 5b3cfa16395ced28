package garch

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ACF computes the sample autocorrelation function of x at lags 0..maxLag.
// acf[0] is always 1. Lags at or beyond the series length are zero.
func ACF(x []float64, maxLag int) []float64 {
	acf := make([]float64, maxLag+1)
	if len(x) == 0 {
		return acf
	}
	acf[0] = 1

	mean := stat.Mean(x, nil)
	denom := 0.0
	for _, v := range x {
		d := v - mean
		denom += d * d
	}
	if denom == 0 {
		return acf
	}

	for k := 1; k <= maxLag && k < len(x); k++ {
		num := 0.0
		for t := k; t < len(x); t++ {
			num += (x[t] - mean) * (x[t-k] - mean)
		}
		acf[k] = num / denom
	}
	return acf
}

// ConfidenceBound returns the +/- band for a white-noise ACF at the 95%
// level, 1.96/sqrt(n).
func ConfidenceBound(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 1.96 / math.Sqrt(float64(n))
}
