package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validModel = `
name: test-model
sources:
  - name: fault-a
    setting: crustal
    rate: 0.002
    magnitude: 7.1
    rake: -90
    dip: 50
    depth: 10
    scaling: SHAW_09_MOD
    ground_motions:
      SLC: {mean: -1.2, sigma: 0.65}
      PROVO: {mean: -1.8, sigma: 0.65}
  - name: megathrust
    setting: interface
    rate: 0.0005
    magnitude: 9.0
    rake: 90
    dip: 12
    depth: 25
    scaling: GEOMETRY
    ground_motions:
      SLC: {mean: -2.5, sigma: 0.7}
      PROVO: {mean: -2.9, sigma: 0.7}
`

func TestParse_Valid(t *testing.T) {
	m, err := Parse([]byte(validModel))
	require.NoError(t, err)

	assert.Equal(t, "test-model", m.Name)
	require.Len(t, m.Sources, 2)

	a := m.Sources[0]
	assert.Equal(t, Crustal, a.Setting)
	assert.Greater(t, a.RuptureArea, 0.0)
	require.Contains(t, a.GroundMotions, "SLC")
	assert.InDelta(t, -1.2, a.GroundMotions["SLC"].Mean, 1e-9)

	// GEOMETRY sources carry no derived rupture area.
	assert.Equal(t, 0.0, m.Sources[1].RuptureArea)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validModel), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-model", m.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	base := func() string { return validModel }

	tests := []struct {
		name    string
		mutate  func(string) string
		errPart string
	}{
		{"bad magnitude", func(s string) string {
			return replace(s, "magnitude: 7.1", "magnitude: 9.8")
		}, "magnitude"},
		{"bad rake", func(s string) string {
			return replace(s, "rake: -90", "rake: -181")
		}, "rake"},
		{"bad dip", func(s string) string {
			return replace(s, "dip: 50", "dip: 91")
		}, "dip"},
		{"crustal depth too deep", func(s string) string {
			return replace(s, "depth: 10", "depth: 45")
		}, "crustal depth"},
		{"unknown setting", func(s string) string {
			return replace(s, "setting: crustal", "setting: volcanic")
		}, "tectonic setting"},
		{"zero rate", func(s string) string {
			return replace(s, "rate: 0.002", "rate: 0")
		}, "rate"},
		{"unknown scaling", func(s string) string {
			return replace(s, "scaling: SHAW_09_MOD", "scaling: BOGUS")
		}, "relationship"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(base())))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestParse_DefaultScaling(t *testing.T) {
	m, err := Parse([]byte(replace(validModel, "    scaling: SHAW_09_MOD\n", "")))
	require.NoError(t, err)
	assert.Equal(t, "SHAW_09_MOD", m.Sources[0].Scaling)
	assert.Greater(t, m.Sources[0].RuptureArea, 0.0)
}

func TestClusterRates(t *testing.T) {
	withClusters := replace(validModel, "scaling: SHAW_09_MOD", "scaling: SHAW_09_MOD\n    cluster: wasatch")
	m, err := Parse([]byte(withClusters))
	require.NoError(t, err)

	rates, err := m.ClusterRates()
	require.NoError(t, err)
	assert.InDelta(t, 0.002, rates["wasatch"], 1e-12)

	// Mixed rates within one cluster are invalid.
	mixed := replace(withClusters, "rate: 0.0005", "rate: 0.0005\n    cluster: wasatch")
	m, err = Parse([]byte(mixed))
	require.NoError(t, err)
	_, err = m.ClusterRates()
	assert.Error(t, err)
}

func replace(s, old, new string) string {
	return strings.ReplaceAll(s, old, new)
}
