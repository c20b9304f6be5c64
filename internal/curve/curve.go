// Package curve provides the ordered xy-sequence that hazard calculations
// are accumulated into. X-values are fixed at construction; y-values are
// overwritten in place by exceedance calculations and combined across
// sources by the hazard driver.
package curve

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// DefaultIMLs are the standard intensity-measure levels (in g) shared across
// all spectral periods. The sequence densifies the range that matters in
// high-hazard areas and extends both tails.
var DefaultIMLs = []float64{
	0.0002, 0.0005,
	0.001, 0.002, 0.00316, 0.00422, 0.00562, 0.0075,
	0.01, 0.0133, 0.0178, 0.0237, 0.0316, 0.0422, 0.0562, 0.075,
	0.1, 0.133, 0.178, 0.237, 0.316, 0.422, 0.562, 0.75,
	1.0, 1.33, 1.78, 2.37, 3.16, 5.01, 7.94,
}

// Curve is an ordered sequence of (x, y) points. The x-values are strictly
// increasing and immutable once set.
type Curve struct {
	xs []float64
	ys []float64
}

// New creates a curve over the supplied x-values with all y-values zero.
// The x-values must be strictly increasing and there must be at least two.
func New(xs []float64) (*Curve, error) {
	if len(xs) < 2 {
		return nil, eris.New("curve: at least 2 x-values required")
	}
	if !sort.Float64sAreSorted(xs) {
		return nil, eris.New("curve: x-values must be increasing")
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] == xs[i-1] {
			return nil, eris.Errorf("curve: duplicate x-value %g", xs[i])
		}
	}
	c := &Curve{
		xs: append([]float64(nil), xs...),
		ys: make([]float64, len(xs)),
	}
	return c, nil
}

// Copy returns a deep copy.
func (c *Curve) Copy() *Curve {
	return &Curve{
		xs: append([]float64(nil), c.xs...),
		ys: append([]float64(nil), c.ys...),
	}
}

// Len returns the number of points.
func (c *Curve) Len() int { return len(c.xs) }

// X returns the x-value at index i.
func (c *Curve) X(i int) float64 { return c.xs[i] }

// Y returns the y-value at index i.
func (c *Curve) Y(i int) float64 { return c.ys[i] }

// SetY overwrites the y-value at index i.
func (c *Curve) SetY(i int, y float64) { c.ys[i] = y }

// Xs returns a copy of the x-values.
func (c *Curve) Xs() []float64 { return append([]float64(nil), c.xs...) }

// Ys returns a copy of the y-values.
func (c *Curve) Ys() []float64 { return append([]float64(nil), c.ys...) }

// Add adds the y-values of other to this curve in place. The curves must
// share the same x-values.
func (c *Curve) Add(other *Curve) error {
	if err := c.checkCompatible(other); err != nil {
		return err
	}
	for i := range c.ys {
		c.ys[i] += other.ys[i]
	}
	return nil
}

// Multiply multiplies the y-values of this curve by those of other in place.
// The curves must share the same x-values.
func (c *Curve) Multiply(other *Curve) error {
	if err := c.checkCompatible(other); err != nil {
		return err
	}
	for i := range c.ys {
		c.ys[i] *= other.ys[i]
	}
	return nil
}

// Scale multiplies every y-value by v in place.
func (c *Curve) Scale(v float64) {
	for i := range c.ys {
		c.ys[i] *= v
	}
}

// Complement sets every y-value to 1-y in place; y-values are assumed to be
// probabilities.
func (c *Curve) Complement() {
	for i := range c.ys {
		c.ys[i] = 1 - c.ys[i]
	}
}

func (c *Curve) checkCompatible(other *Curve) error {
	if other == nil || len(other.xs) != len(c.xs) {
		return eris.New("curve: length mismatch")
	}
	for i := range c.xs {
		if math.Abs(c.xs[i]-other.xs[i]) > 1e-12 {
			return eris.Errorf("curve: x-value mismatch at index %d", i)
		}
	}
	return nil
}

// ClusterExceedance computes the joint probability of exceedance given the
// occurrence of a cluster of events: 1 - [(1-P1) * (1-P2) * ...], where the
// per-event exceedance probabilities are the y-values of the supplied
// curves. The inputs are not modified.
func ClusterExceedance(curves []*Curve) (*Curve, error) {
	if len(curves) == 0 {
		return nil, eris.New("curve: no curves supplied")
	}
	combined := curves[0].Copy()
	combined.Complement()
	for _, c := range curves[1:] {
		cc := c.Copy()
		cc.Complement()
		if err := combined.Multiply(cc); err != nil {
			return nil, err
		}
	}
	combined.Complement()
	return combined, nil
}
