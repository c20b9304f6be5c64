package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSites = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-111.89, 40.76]},
      "properties": {"name": "SLC"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-111.66, 40.23]},
      "properties": {"name": "PROVO"}
    }
  ]
}`

func TestParse_Valid(t *testing.T) {
	sites, err := Parse([]byte(validSites))
	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.Equal(t, "SLC", sites[0].Name)
	assert.InDelta(t, -111.89, sites[0].Lon, 1e-9)
	assert.InDelta(t, 40.76, sites[0].Lat, 1e-9)
	assert.Equal(t, "PROVO", sites[1].Name)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.geojson")
	require.NoError(t, os.WriteFile(path, []byte(validSites), 0o644))

	sites, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sites, 2)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"empty collection", `{"type": "FeatureCollection", "features": []}`},
		{"not a point", `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0,0],[1,1]]}, "properties": {"name": "X"}}]}`},
		{"missing name", `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0,0]}, "properties": {}}]}`},
		{"bad longitude", `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [181, 0]}, "properties": {"name": "X"}}]}`},
		{"bad latitude", `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 91]}, "properties": {"name": "X"}}]}`},
		{"not json", `quake`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestParse_DuplicateNames(t *testing.T) {
	dup := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0,0]}, "properties": {"name": "A"}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [1,1]}, "properties": {"name": "A"}}]}`
	_, err := Parse([]byte(dup))
	assert.Error(t, err)
}
