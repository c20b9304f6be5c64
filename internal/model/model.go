// Package model defines the seismic source model consumed by hazard
// calculations and its YAML loader. Ground-motion models themselves are
// external: the model file carries their output, a log-space mean and
// standard deviation per source and site.
package model

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/basin-labs/hazcalc/internal/eq"
	"github.com/basin-labs/hazcalc/internal/scaling"
)

// TectonicSetting categorizes a source for depth validation.
type TectonicSetting string

// Supported tectonic settings.
const (
	Crustal   TectonicSetting = "crustal"
	Interface TectonicSetting = "interface"
	Slab      TectonicSetting = "slab"
)

// GroundMotion is the output of an (external) ground-motion model at one
// site: natural-log mean and standard deviation of the intensity measure.
type GroundMotion struct {
	Mean  float64 `yaml:"mean"`
	Sigma float64 `yaml:"sigma"`
}

// Source is one seismic source: its physical parameters, annual rate of
// occurrence, and precomputed ground motion per site. Sources sharing a
// non-empty Cluster label rupture together and are combined jointly by the
// hazard driver.
type Source struct {
	Name          string                  `yaml:"name"`
	Setting       TectonicSetting         `yaml:"setting"`
	Rate          float64                 `yaml:"rate"`
	Magnitude     float64                 `yaml:"magnitude"`
	Rake          float64                 `yaml:"rake"`
	Dip           float64                 `yaml:"dip"`
	Depth         float64                 `yaml:"depth"`
	Cluster       string                  `yaml:"cluster"`
	Scaling       string                  `yaml:"scaling"`
	GroundMotions map[string]GroundMotion `yaml:"ground_motions"`

	// RuptureArea in km², derived from the source's scaling relationship
	// at load time; zero when the source's geometry is built in.
	RuptureArea float64 `yaml:"-"`
}

// Model is a named collection of sources.
type Model struct {
	Name    string   `yaml:"name"`
	Sources []Source `yaml:"sources"`
}

// Load reads and validates a model file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "model: read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates model YAML: every physical parameter is
// range-checked, the scaling relationship is resolved, and each source's
// rupture area is derived from its magnitude and rake.
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "model: unmarshal")
	}
	if m.Name == "" {
		return nil, eris.New("model: name is required")
	}
	if len(m.Sources) == 0 {
		return nil, eris.New("model: at least one source required")
	}

	for i := range m.Sources {
		if err := validateSource(&m.Sources[i]); err != nil {
			return nil, eris.Wrapf(err, "model: source %q", m.Sources[i].Name)
		}
	}
	return &m, nil
}

func validateSource(s *Source) error {
	if s.Name == "" {
		return eris.New("name is required")
	}
	if s.Rate <= 0 {
		return eris.Errorf("rate must be positive, got %g", s.Rate)
	}
	if len(s.GroundMotions) == 0 {
		return eris.New("at least one site ground motion required")
	}
	for site, gm := range s.GroundMotions {
		if gm.Sigma < 0 {
			return eris.Errorf("negative sigma %g for site %q", gm.Sigma, site)
		}
	}

	if _, err := eq.CheckMagnitude(s.Magnitude); err != nil {
		return err
	}
	if _, err := eq.CheckRake(s.Rake); err != nil {
		return err
	}
	if _, err := eq.CheckDip(s.Dip); err != nil {
		return err
	}

	switch s.Setting {
	case Crustal:
		if _, err := eq.CheckCrustalDepth(s.Depth); err != nil {
			return err
		}
	case Interface:
		if _, err := eq.CheckInterfaceDepth(s.Depth); err != nil {
			return err
		}
	case Slab:
		if _, err := eq.CheckSlabDepth(s.Depth); err != nil {
			return err
		}
	default:
		return eris.Errorf("unknown tectonic setting %q", s.Setting)
	}

	if s.Scaling == "" {
		s.Scaling = scaling.IDShaw09Mod
	}
	if s.Scaling == scaling.IDGeometry {
		return nil
	}
	rel, err := scaling.ByName(s.Scaling)
	if err != nil {
		return err
	}
	area, err := rel.MedianArea(s.Magnitude, s.Rake)
	if err != nil {
		return err
	}
	s.RuptureArea = area
	return nil
}

// ClusterRates verifies that every source in a cluster shares the cluster's
// rate and returns the rate per cluster label.
func (m *Model) ClusterRates() (map[string]float64, error) {
	rates := make(map[string]float64)
	for _, s := range m.Sources {
		if s.Cluster == "" {
			continue
		}
		if r, ok := rates[s.Cluster]; ok {
			if r != s.Rate {
				return nil, eris.Errorf("model: cluster %q has mixed rates %g and %g", s.Cluster, r, s.Rate)
			}
			continue
		}
		rates[s.Cluster] = s.Rate
	}
	return rates, nil
}
