package scaling

import (
	"math"

	"github.com/rotisserie/eris"
)

// Shaw (2009) modified regression constants. h is the default down-dip
// width in km.
const (
	shawBeta  = 7.4
	shawH     = 15.0
	shawCZero = 3.98
)

// Lookup table discretization for the magnitude -> area inversion:
// 1001 points spanning log10(area) in [0, 5.5].
const (
	shawTableSize   = 1001
	shawLogAreaSpan = 5.5
)

// Shaw09Mod is the modified Shaw (2009) magnitude-area relationship: a
// width-saturated regression with no closed-form inverse. The
// area-to-magnitude direction is the closed form; the magnitude-to-area
// direction is resolved by linear interpolation over a table built once at
// construction. Rake is ignored by this relationship.
type Shaw09Mod struct {
	areas []float64
	mags  []float64
}

// NewShaw09Mod builds the relationship, including its inversion table. The
// table is immutable afterwards, so the returned value is safe for
// concurrent use.
func NewShaw09Mod() *Shaw09Mod {
	s := &Shaw09Mod{
		areas: make([]float64, shawTableSize),
		mags:  make([]float64, shawTableSize),
	}
	for i := 0; i < shawTableSize; i++ {
		logArea := float64(i) * shawLogAreaSpan / float64(shawTableSize-1)
		area := math.Pow(10, logArea)
		s.areas[i] = area
		s.mags[i] = s.MedianMagnitude(area, 0)
	}
	return s
}

// Name implements MagAreaRelationship.
func (s *Shaw09Mod) Name() string { return "Shaw (2009) Modified" }

// MedianMagnitude computes the median magnitude from rupture area in km²
// using the default down-dip width.
func (s *Shaw09Mod) MedianMagnitude(area, _ float64) float64 {
	return shawMedianMag(area, shawH)
}

// WidthDepMedianMagnitude computes the median magnitude from rupture area
// and an explicit original down-dip width in km (not reduced by any
// aseismicity), overriding the default width.
func (s *Shaw09Mod) WidthDepMedianMagnitude(area, width float64) float64 {
	return shawMedianMag(area, width)
}

func shawMedianMag(area, width float64) float64 {
	numer := math.Max(1.0, math.Sqrt(area/(width*width)))
	denom := (1 + math.Max(1.0, area/(shawBeta*width*width))) / 2
	return shawCZero + math.Log10(area) + 0.6667*math.Log10(numer/denom)
}

// MagnitudeStdDev is not defined for this relationship.
func (s *Shaw09Mod) MagnitudeStdDev(_ float64) float64 { return math.NaN() }

// AreaStdDev is not defined for this relationship.
func (s *Shaw09Mod) AreaStdDev(_ float64) float64 { return math.NaN() }

// MedianArea computes the median rupture area in km² for the supplied
// magnitude by locating the first tabulated crossing of the magnitude and
// interpolating linearly between the bracketing samples. The sampled curve
// is assumed monotonically non-decreasing; if it were not, first-crossing
// lookup would silently mask any later non-monotonic behavior.
func (s *Shaw09Mod) MedianArea(mag, _ float64) (float64, error) {
	if mag < s.mags[0] || mag > s.mags[len(s.mags)-1] {
		return 0, eris.Errorf("scaling: magnitude %g outside invertible range [%.3f, %.3f]",
			mag, s.mags[0], s.mags[len(s.mags)-1])
	}
	for i, m := range s.mags {
		if m < mag {
			continue
		}
		if i == 0 || m == mag {
			return s.areas[i], nil
		}
		// Linear interpolation between the bracketing samples.
		frac := (mag - s.mags[i-1]) / (m - s.mags[i-1])
		return s.areas[i-1] + frac*(s.areas[i]-s.areas[i-1]), nil
	}
	// Unreachable given the range check above.
	return s.areas[len(s.areas)-1], nil
}
