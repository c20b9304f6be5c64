// Package gauss provides the Gaussian numeric kernel used by exceedance
// calculations: an error-function approximation and the normal CCDF built
// on it. The approximation reproduces the published Abramowitz and Stegun
// 7.1.26 coefficients so downstream hazard values match reference outputs.
package gauss

import "math"

// Sqrt2 is the precomputed square root of 2.
var Sqrt2 = math.Sqrt(2)

// Sqrt2Pi is the precomputed square root of 2π.
var Sqrt2Pi = math.Sqrt(2 * math.Pi)

// Abramowitz and Stegun 7.1.26 coefficients. Maximum absolute error of the
// approximation is about 1.5e-7.
const (
	erfP  = 0.3275911
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
)

// Erf approximates the Gauss error function. The underlying rational
// approximation is only valid for x ≥ 0; erf is odd so negative arguments
// are computed as erf(x) = -erf(-x).
func Erf(x float64) float64 {
	if x < 0 {
		return -erfBase(-x)
	}
	return erfBase(x)
}

func erfBase(x float64) float64 {
	t := 1 / (1 + erfP*x)
	tsq := t * t
	return 1 - (erfA1*t+
		erfA2*tsq+
		erfA3*tsq*t+
		erfA4*tsq*tsq+
		erfA5*tsq*tsq*t)*math.Exp(-x*x)
}

// NormalCcdf returns the normal complementary cumulative distribution
// P(X > x) for X ~ N(mean, sigma).
func NormalCcdf(mean, sigma, x float64) float64 {
	return (1.0 + Erf((mean-x)/(sigma*Sqrt2))) * 0.5
}

// NormalPdf returns the normal probability density at x.
func NormalPdf(mean, sigma, x float64) float64 {
	return math.Exp((mean-x)*(x-mean)/(2*sigma*sigma)) / (sigma * Sqrt2Pi)
}

// Epsilon returns the standardized normal variate ε = (x - mean) / sigma.
func Epsilon(mean, sigma, x float64) float64 {
	return (x - mean) / sigma
}

// StepFunction returns 1 if x < mean, 0 otherwise; the complementary unit
// step used when ground-motion uncertainty is ignored.
func StepFunction(mean, x float64) float64 {
	if x < mean {
		return 1.0
	}
	return 0.0
}
