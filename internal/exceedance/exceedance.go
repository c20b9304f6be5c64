// Package exceedance computes the probability that a ground-motion or
// magnitude variate exceeds a threshold given an uncertain, possibly
// truncated, normal distribution of predicted values. Truncation policies
// renormalize the complementary cumulative distribution against the
// probability mass remaining inside the truncation bounds.
package exceedance

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/basin-labs/hazcalc/internal/curve"
	"github.com/basin-labs/hazcalc/internal/gauss"
)

// Uncertainty is the immutable description of a predicted value: its mean,
// standard deviation, and truncation level in σ-units. A truncation level
// of 0 places the truncation boundary at the mean. The truncation level is
// ignored by models that do not truncate.
type Uncertainty struct {
	Mean       float64
	StdDev     float64
	TruncLevel float64
}

// NewUncertainty validates that all three fields are finite. A negative
// standard deviation is a caller error that produces a mirrored,
// semantically wrong CCDF; it is rejected here as well.
func NewUncertainty(mean, stdDev, truncLevel float64) (Uncertainty, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"mean", mean},
		{"stddev", stdDev},
		{"truncation level", truncLevel},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return Uncertainty{}, eris.Errorf("exceedance: non-finite %s: %g", f.name, f.v)
		}
	}
	if stdDev < 0 {
		return Uncertainty{}, eris.Errorf("exceedance: negative stddev: %g", stdDev)
	}
	return Uncertainty{Mean: mean, StdDev: stdDev, TruncLevel: truncLevel}, nil
}

// Model selects a truncation policy for exceedance calculations.
type Model string

// Truncation policies. Step ignores the standard deviation entirely,
// yielding a complementary unit step at the mean.
const (
	Step       Model = "STEP"
	None       Model = "NONE"
	UpperOnly  Model = "UPPER_ONLY"
	LowerOnly  Model = "LOWER_ONLY"
	UpperLower Model = "UPPER_LOWER"
)

// ParseModel resolves a policy identifier from configuration. Unknown
// identifiers are an unsupported-operation error.
func ParseModel(s string) (Model, error) {
	switch Model(s) {
	case Step, None, UpperOnly, LowerOnly, UpperLower:
		return Model(s), nil
	}
	return "", eris.Errorf("exceedance: unsupported truncation model %q", s)
}

// Exceedance returns P(X > value) for X described by u, under the
// receiver's truncation policy. Results are always clamped to [0, 1]:
// truncation redistributes probability mass, so the renormalized value can
// drift outside the unit interval from floating-point roundoff or a value
// beyond the truncation bound. Model values must come from this package's
// constants or ParseModel; any other value yields NaN.
func (m Model) Exceedance(u Uncertainty, value float64) float64 {
	switch m {
	case Step:
		return gauss.StepFunction(u.Mean, value)
	case None:
		return boundedCcd(u, value, 0.0, 1.0)
	case UpperOnly:
		return boundedCcd(u, value, upperProb(u), 1.0)
	case LowerOnly:
		return boundedCcd(u, value, 0.0, lowerProb(u))
	case UpperLower:
		pHi := upperProb(u)
		return boundedCcd(u, value, pHi, 1.0-pHi)
	}
	return math.NaN()
}

// ExceedanceCurve overwrites each y-value of c with the exceedance
// probability of the corresponding x-value. Ordering and length are
// preserved; the supplied curve is returned.
func (m Model) ExceedanceCurve(u Uncertainty, c *curve.Curve) *curve.Curve {
	// Bound probabilities depend only on u, so hoist them out of the loop.
	var pHi, pLo float64
	switch m {
	case Step:
		for i := 0; i < c.Len(); i++ {
			c.SetY(i, gauss.StepFunction(u.Mean, c.X(i)))
		}
		return c
	case None:
		pHi, pLo = 0.0, 1.0
	case UpperOnly:
		pHi, pLo = upperProb(u), 1.0
	case LowerOnly:
		pHi, pLo = 0.0, lowerProb(u)
	case UpperLower:
		pHi = upperProb(u)
		pLo = 1.0 - pHi
	default:
		for i := 0; i < c.Len(); i++ {
			c.SetY(i, math.NaN())
		}
		return c
	}
	for i := 0; i < c.Len(); i++ {
		c.SetY(i, boundedCcd(u, c.X(i), pHi, pLo))
	}
	return c
}

// boundedCcd computes the probability that value is exceeded, subject to
// upper and lower probability limits.
func boundedCcd(u Uncertainty, value, pHi, pLo float64) float64 {
	p := gauss.NormalCcdf(u.Mean, u.StdDev, value)
	return clampProb((p - pHi) / (pLo - pHi))
}

// upperProb is the ccdf at μ + nσ.
func upperProb(u Uncertainty) float64 {
	return gauss.NormalCcdf(u.Mean, u.StdDev, u.Mean+u.TruncLevel*u.StdDev)
}

// lowerProb is the ccdf at μ - nσ.
func lowerProb(u Uncertainty) float64 {
	return gauss.NormalCcdf(u.Mean, u.StdDev, u.Mean-u.TruncLevel*u.StdDev)
}

// For truncated distributions p may land outside [0, 1]: above the upper
// bound the renormalized value goes negative, below the lower bound it
// exceeds one.
func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
