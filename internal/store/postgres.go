package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/basin-labs/hazcalc/internal/curve"
)

// Pool abstracts the pgx connection pool so tests can substitute pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	model       TEXT NOT NULL,
	policy      TEXT NOT NULL,
	trunc_level DOUBLE PRECISION NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS run_curves (
	id     TEXT PRIMARY KEY,
	run_id TEXT NOT NULL REFERENCES runs(id),
	site   TEXT NOT NULL,
	imls   JSONB NOT NULL,
	probs  JSONB NOT NULL,
	UNIQUE (run_id, site)
);

CREATE INDEX IF NOT EXISTS idx_runs_model ON runs(model);
CREATE INDEX IF NOT EXISTS idx_run_curves_run_id ON run_curves(run_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, modelName, policy string, truncLevel float64) (*Run, error) {
	run := &Run{
		ID:         uuid.New().String(),
		Model:      modelName,
		Policy:     policy,
		TruncLevel: truncLevel,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, model, policy, trunc_level, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Model, run.Policy, run.TruncLevel, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}
	return run, nil
}

func (s *PostgresStore) SaveCurve(ctx context.Context, runID, siteName string, c *curve.Curve) error {
	imls, err := json.Marshal(c.Xs())
	if err != nil {
		return eris.Wrap(err, "postgres: marshal imls")
	}
	probs, err := json.Marshal(c.Ys())
	if err != nil {
		return eris.Wrap(err, "postgres: marshal probs")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO run_curves (id, run_id, site, imls, probs) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), runID, siteName, string(imls), string(probs),
	)
	return eris.Wrap(err, "postgres: insert curve")
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, model, policy, trunc_level, created_at FROM runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Model, &r.Policy, &r.TruncLevel, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func (s *PostgresStore) GetCurves(ctx context.Context, runID string) ([]SiteCurve, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT site, imls, probs FROM run_curves WHERE run_id = $1 ORDER BY site`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get curves")
	}
	defer rows.Close()

	var curves []SiteCurve
	for rows.Next() {
		var sc SiteCurve
		var imls, probs []byte
		if err := rows.Scan(&sc.Site, &imls, &probs); err != nil {
			return nil, eris.Wrap(err, "postgres: scan curve")
		}
		if err := json.Unmarshal(imls, &sc.IMLs); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal imls")
		}
		if err := json.Unmarshal(probs, &sc.Probs); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal probs")
		}
		curves = append(curves, sc)
	}
	return curves, eris.Wrap(rows.Err(), "postgres: iterate curves")
}
