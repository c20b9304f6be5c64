package scaling

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaw09Mod_MedianMagnitude(t *testing.T) {
	s := NewShaw09Mod()

	// Below width saturation the regression reduces to c0 + log10(area).
	assert.InDelta(t, 3.98, s.MedianMagnitude(1, 0), 1e-9)
	assert.InDelta(t, 4.98, s.MedianMagnitude(10, 0), 1e-9)
	assert.InDelta(t, 5.98, s.MedianMagnitude(100, 0), 1e-9)

	// Reference values for the saturated regime, 6+ significant figures.
	assert.InDelta(t, 7.19594996, s.MedianMagnitude(1000, 0), 1e-7)
	assert.InDelta(t, 8.16632147, s.MedianMagnitude(10000, 0), 1e-7)
	assert.InDelta(t, 8.87278231, s.MedianMagnitude(100000, 0), 1e-7)
}

func TestShaw09Mod_RakeIgnored(t *testing.T) {
	s := NewShaw09Mod()
	assert.Equal(t, s.MedianMagnitude(2500, 0), s.MedianMagnitude(2500, -90))
	assert.Equal(t, s.MedianMagnitude(2500, 0), s.MedianMagnitude(2500, 180))
}

func TestShaw09Mod_WidthDepMedianMagnitude(t *testing.T) {
	s := NewShaw09Mod()

	// With the default width the overload matches the plain form.
	assert.Equal(t, s.MedianMagnitude(5000, 0), s.WidthDepMedianMagnitude(5000, 15))

	// A narrower rupture saturates earlier, raising the magnitude.
	assert.Greater(t, s.WidthDepMedianMagnitude(5000, 10), s.MedianMagnitude(5000, 0))
}

func TestShaw09Mod_StdDevsUnavailable(t *testing.T) {
	s := NewShaw09Mod()
	assert.True(t, math.IsNaN(s.MagnitudeStdDev(0)))
	assert.True(t, math.IsNaN(s.AreaStdDev(0)))
}

func TestShaw09Mod_MedianArea_RoundTrip(t *testing.T) {
	s := NewShaw09Mod()
	for _, area := range []float64{2, 50, 1000, 5000, 40000, 200000} {
		mag := s.MedianMagnitude(area, 0)
		got, err := s.MedianArea(mag, 0)
		require.NoError(t, err, "area %v", area)
		// Interpolation tolerance is bounded by the table's sampling
		// density (1001 points over 5.5 decades).
		assert.InEpsilon(t, area, got, 0.02, "area %v", area)
	}
}

func TestShaw09Mod_MedianArea_OutOfRange(t *testing.T) {
	s := NewShaw09Mod()
	_, err := s.MedianArea(3.0, 0)
	assert.Error(t, err)
	_, err = s.MedianArea(9.5, 0)
	assert.Error(t, err)

	// Table endpoints are invertible.
	a, err := s.MedianArea(3.98, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a, 1e-9)
}

func TestSampleMagArea(t *testing.T) {
	s := NewShaw09Mod()
	f, err := SampleMagArea(s, 10, 10000, 31, 0)
	require.NoError(t, err)

	assert.Equal(t, "Shaw (2009) Modified", f.Name)
	require.Len(t, f.Samples, 31)
	assert.InDelta(t, 10.0, f.Samples[0].Area, 1e-9)
	assert.InDelta(t, 10000.0, f.Samples[30].Area, 1e-6)

	// Log-uniform spacing: constant ratio between consecutive areas.
	ratio := f.Samples[1].Area / f.Samples[0].Area
	for i := 2; i < len(f.Samples); i++ {
		assert.InDelta(t, ratio, f.Samples[i].Area/f.Samples[i-1].Area, 1e-9)
	}

	// Magnitudes non-decreasing over the sampled domain.
	for i := 1; i < len(f.Samples); i++ {
		assert.GreaterOrEqual(t, f.Samples[i].Mag, f.Samples[i-1].Mag)
	}
}

func TestSampleMagArea_RejectsBadArgs(t *testing.T) {
	s := NewShaw09Mod()
	_, err := SampleMagArea(s, 10, 10000, 1, 0)
	assert.Error(t, err)
	_, err = SampleMagArea(s, -1, 100, 10, 0)
	assert.Error(t, err)
	_, err = SampleMagArea(s, 100, 100, 10, 0)
	assert.Error(t, err)
}

func TestByName(t *testing.T) {
	rel, err := ByName(IDShaw09Mod)
	require.NoError(t, err)
	assert.Equal(t, "Shaw (2009) Modified", rel.Name())

	_, err = ByName(IDGeometry)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnsupported))

	_, err = ByName("WELLS_COPPERSMITH_94")
	require.Error(t, err)
	assert.False(t, eris.Is(err, ErrUnsupported))
}
