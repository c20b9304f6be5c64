// Package hazard combines a source model with a truncation policy into
// annual-exceedance hazard curves. The numeric core stays pure; this
// driver owns iteration, cluster combination, and per-site concurrency.
package hazard

import (
	"context"
	"math"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/basin-labs/hazcalc/internal/curve"
	"github.com/basin-labs/hazcalc/internal/exceedance"
	"github.com/basin-labs/hazcalc/internal/model"
	"github.com/basin-labs/hazcalc/internal/site"
)

// Calculator computes hazard curves under a fixed truncation policy and
// intensity-measure discretization.
type Calculator struct {
	policy        exceedance.Model
	truncLevel    float64
	imls          []float64
	maxConcurrent int
}

// New creates a Calculator. An empty iml slice selects the default levels;
// maxConcurrent < 1 disables the concurrency limit.
func New(policyID string, truncLevel float64, imls []float64, maxConcurrent int) (*Calculator, error) {
	policy, err := exceedance.ParseModel(policyID)
	if err != nil {
		return nil, err
	}
	if truncLevel < 0 {
		return nil, eris.Errorf("hazard: negative truncation level %g", truncLevel)
	}
	if len(imls) == 0 {
		imls = curve.DefaultIMLs
	}
	// Validate the discretization once up front.
	if _, err := curve.New(imls); err != nil {
		return nil, err
	}
	return &Calculator{
		policy:        policy,
		truncLevel:    truncLevel,
		imls:          imls,
		maxConcurrent: maxConcurrent,
	}, nil
}

// SiteCurve computes the annual-exceedance hazard curve at one site: each
// independent source contributes its exceedance probabilities scaled by
// its rate; clustered sources are first combined into a joint conditional
// exceedance, then scaled by the cluster rate.
func (c *Calculator) SiteCurve(siteName string, m *model.Model) (*curve.Curve, error) {
	total, err := curve.New(c.imls)
	if err != nil {
		return nil, err
	}

	clusterRates, err := m.ClusterRates()
	if err != nil {
		return nil, err
	}
	clusterCurves := make(map[string][]*curve.Curve)

	for _, src := range m.Sources {
		gm, ok := src.GroundMotions[siteName]
		if !ok {
			return nil, eris.Errorf("hazard: source %q has no ground motion for site %q", src.Name, siteName)
		}
		u, err := exceedance.NewUncertainty(gm.Mean, gm.Sigma, c.truncLevel)
		if err != nil {
			return nil, eris.Wrapf(err, "hazard: source %q site %q", src.Name, siteName)
		}

		partial, err := curve.New(c.imls)
		if err != nil {
			return nil, err
		}
		// Ground-motion means are natural-log values; exceedance is
		// evaluated at ln(iml).
		for i := 0; i < partial.Len(); i++ {
			partial.SetY(i, c.policy.Exceedance(u, math.Log(partial.X(i))))
		}

		if src.Cluster != "" {
			clusterCurves[src.Cluster] = append(clusterCurves[src.Cluster], partial)
			continue
		}
		partial.Scale(src.Rate)
		if err := total.Add(partial); err != nil {
			return nil, err
		}
	}

	for label, curves := range clusterCurves {
		joint, err := curve.ClusterExceedance(curves)
		if err != nil {
			return nil, eris.Wrapf(err, "hazard: cluster %q", label)
		}
		joint.Scale(clusterRates[label])
		if err := total.Add(joint); err != nil {
			return nil, err
		}
	}

	return total, nil
}

// Run computes the hazard curve at every site concurrently and returns the
// curves keyed by site name.
func (c *Calculator) Run(ctx context.Context, m *model.Model, sites []site.Site) (map[string]*curve.Curve, error) {
	if len(sites) == 0 {
		return nil, eris.New("hazard: no sites supplied")
	}

	var mu sync.Mutex
	results := make(map[string]*curve.Curve, len(sites))

	g, ctx := errgroup.WithContext(ctx)
	if c.maxConcurrent > 0 {
		g.SetLimit(c.maxConcurrent)
	}
	for _, s := range sites {
		s := s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cv, err := c.SiteCurve(s.Name, m)
			if err != nil {
				return err
			}
			mu.Lock()
			results[s.Name] = cv
			mu.Unlock()

			zap.L().Debug("hazard: site curve computed",
				zap.String("site", s.Name),
				zap.Int("sources", len(m.Sources)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("hazard: run complete",
		zap.String("model", m.Name),
		zap.Int("sites", len(sites)),
		zap.String("policy", string(c.policy)),
	)
	return results, nil
}
