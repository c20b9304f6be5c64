// Package scaling provides empirical magnitude-scaling relationships that
// convert earthquake magnitude to rupture-source area and back. Rake is an
// explicit argument on every call rather than instance state, so a single
// relationship value is safe for concurrent use.
package scaling

import (
	"math"

	"github.com/rotisserie/eris"
)

// MagAreaRelationship gives the median and standard deviation of magnitude
// as a function of rupture area (km²), or vice versa, optionally
// conditioned on rake (degrees). Relationships that do not depend on rake
// ignore it. Standard deviations return NaN when the relationship does not
// define one; NaN means "unavailable", not an error.
type MagAreaRelationship interface {
	// Name identifies the relationship for reporting and registry lookup.
	Name() string

	// MedianMagnitude computes the median magnitude from rupture area in
	// km². Area must be positive.
	MedianMagnitude(area, rake float64) float64

	// MagnitudeStdDev is the standard deviation of magnitude given area,
	// or NaN if unavailable.
	MagnitudeStdDev(rake float64) float64

	// MedianArea computes the median rupture area in km² from moment
	// magnitude. Relationships without a closed-form inverse resolve the
	// area numerically and error if the magnitude falls outside the
	// invertible domain.
	MedianArea(mag, rake float64) (float64, error)

	// AreaStdDev is the standard deviation of log10(area) given
	// magnitude, or NaN if unavailable.
	AreaStdDev(rake float64) float64
}

// Sample is one (area, magnitude) point of a sampled relationship.
type Sample struct {
	Area float64
	Mag  float64
}

// MagAreaFunc is a named, ordered sampling of a relationship, used for
// reporting and visualization, not for inversion.
type MagAreaFunc struct {
	Name    string
	Samples []Sample
}

// SampleMagArea evaluates rel at numArea points with areas log-uniformly
// spaced between areaMin and areaMax inclusive. numArea must be at least 2
// and the area bounds positive and increasing.
func SampleMagArea(rel MagAreaRelationship, areaMin, areaMax float64, numArea int, rake float64) (*MagAreaFunc, error) {
	if numArea < 2 {
		return nil, eris.Errorf("scaling: numArea must be >= 2, got %d", numArea)
	}
	if areaMin <= 0 || areaMax <= areaMin {
		return nil, eris.Errorf("scaling: invalid area bounds [%g, %g]", areaMin, areaMax)
	}

	logMin := math.Log10(areaMin)
	deltaLog := (math.Log10(areaMax) - logMin) / float64(numArea-1)

	samples := make([]Sample, numArea)
	for i := range samples {
		area := math.Pow(10, logMin+deltaLog*float64(i))
		samples[i] = Sample{Area: area, Mag: rel.MedianMagnitude(area, rake)}
	}
	return &MagAreaFunc{Name: rel.Name(), Samples: samples}, nil
}
