// Package store persists hazard calculation runs and their curves.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/basin-labs/hazcalc/internal/curve"
)

// Run records one hazard calculation.
type Run struct {
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	Policy     string    `json:"policy"`
	TruncLevel float64   `json:"trunc_level"`
	CreatedAt  time.Time `json:"created_at"`
}

// SiteCurve is a persisted hazard curve for one site of a run.
type SiteCurve struct {
	Site  string    `json:"site"`
	IMLs  []float64 `json:"imls"`
	Probs []float64 `json:"probs"`
}

// Store defines the persistence interface for calculation results.
type Store interface {
	CreateRun(ctx context.Context, modelName, policy string, truncLevel float64) (*Run, error)
	SaveCurve(ctx context.Context, runID, siteName string, c *curve.Curve) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	GetCurves(ctx context.Context, runID string) ([]SiteCurve, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(databaseURL)
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	}
	return nil, eris.Errorf("store: unknown driver %q", driver)
}
