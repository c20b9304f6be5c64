// Package site loads the named point sites that hazard curves are computed
// for from GeoJSON feature collections.
package site

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Site is a named location of interest.
type Site struct {
	Name string
	Lon  float64
	Lat  float64
}

// Load reads a GeoJSON FeatureCollection of point sites. Each feature must
// be a Point with a "name" property.
func Load(path string) ([]Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "site: read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates GeoJSON site features.
func Parse(data []byte) ([]Site, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "site: unmarshal geojson")
	}
	if len(fc.Features) == 0 {
		return nil, eris.New("site: no features")
	}

	sites := make([]Site, 0, len(fc.Features))
	seen := make(map[string]bool, len(fc.Features))
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(*geom.Point)
		if !ok {
			return nil, eris.Errorf("site: feature %d is not a Point", i)
		}
		name, _ := f.Properties["name"].(string)
		if name == "" {
			return nil, eris.Errorf("site: feature %d missing name property", i)
		}
		if seen[name] {
			return nil, eris.Errorf("site: duplicate site name %q", name)
		}
		seen[name] = true

		lon, lat := pt.X(), pt.Y()
		if lon < -180 || lon > 180 {
			return nil, eris.Errorf("site: %s longitude %g out of range [-180..180]", name, lon)
		}
		if lat < -90 || lat > 90 {
			return nil, eris.Errorf("site: %s latitude %g out of range [-90..90]", name, lat)
		}
		sites = append(sites, Site{Name: name, Lon: lon, Lat: lat})
	}
	return sites, nil
}
