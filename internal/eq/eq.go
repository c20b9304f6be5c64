// Package eq holds constants and validators for physical earthquake
// parameters. Validators return the supplied value unchanged for use
// inline, or a DomainError identifying the quantity, the offending value,
// and the legal bounds.
package eq

import (
	"fmt"
	"math"
)

// Depth bounds in km, positive-down per the convention of seismology.
const (
	MinDepth = -5.0
	MaxDepth = 700.0
)

// Magnitude bounds; not bound to any particular magnitude scale.
const (
	MinMag = -2.0
	MaxMag = 9.7
)

// Mu is the shear modulus, 3e10 N·m⁻².
const Mu = 3e10

// Hanks and Kanamori (1997) moment-magnitude scaling constant (N·m).
const scaleNm = 9.05

// DomainError reports a physical parameter outside its legal range.
type DomainError struct {
	Quantity string
	Value    float64
	Min      float64
	Max      float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s [%g] out of range [%g..%g]", e.Quantity, e.Value, e.Min, e.Max)
}

// checkClosed validates value against the closed interval [min, max].
func checkClosed(quantity string, value, min, max float64) (float64, error) {
	if math.IsNaN(value) || value < min || value > max {
		return value, &DomainError{Quantity: quantity, Value: value, Min: min, Max: max}
	}
	return value, nil
}

// checkOpenClosed validates value against the half-open interval (min, max].
func checkOpenClosed(quantity string, value, min, max float64) (float64, error) {
	if math.IsNaN(value) || value <= min || value > max {
		return value, &DomainError{Quantity: quantity, Value: value, Min: min, Max: max}
	}
	return value, nil
}

// CheckDepth ensures -5 ≤ depth ≤ 700 km.
func CheckDepth(depth float64) (float64, error) {
	return checkClosed("depth", depth, MinDepth, MaxDepth)
}

// CheckMagnitude ensures -2.0 ≤ magnitude ≤ 9.7.
func CheckMagnitude(magnitude float64) (float64, error) {
	return checkClosed("magnitude", magnitude, MinMag, MaxMag)
}

// MagToMoment converts moment magnitude to seismic moment in N·m following
// Hanks and Kanamori (1997).
func MagToMoment(magnitude float64) float64 {
	return math.Pow(10, 1.5*magnitude+scaleNm)
}

// MomentToMag converts seismic moment in N·m to moment magnitude following
// Hanks and Kanamori (1997).
func MomentToMag(moment float64) float64 {
	return (math.Log10(moment) - scaleNm) / 1.5
}

// Moment returns the seismic moment of a fault area (m²) and average slip
// (m), assuming shear modulus Mu. Supplying a slip rate yields a moment
// rate.
func Moment(area, slip float64) float64 {
	return Mu * area * slip
}

// Slip returns the average slip (m) across a fault area (m²) with the
// supplied moment (N·m), assuming shear modulus Mu.
func Slip(area, moment float64) float64 {
	return moment / (area * Mu)
}
