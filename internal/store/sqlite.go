package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/basin-labs/hazcalc/internal/curve"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	model       TEXT NOT NULL,
	policy      TEXT NOT NULL,
	trunc_level REAL NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS run_curves (
	id     TEXT PRIMARY KEY,
	run_id TEXT NOT NULL REFERENCES runs(id),
	site   TEXT NOT NULL,
	imls   TEXT NOT NULL,
	probs  TEXT NOT NULL,
	UNIQUE (run_id, site)
);

CREATE INDEX IF NOT EXISTS idx_runs_model ON runs(model);
CREATE INDEX IF NOT EXISTS idx_run_curves_run_id ON run_curves(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, modelName, policy string, truncLevel float64) (*Run, error) {
	run := &Run{
		ID:         uuid.New().String(),
		Model:      modelName,
		Policy:     policy,
		TruncLevel: truncLevel,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, model, policy, trunc_level, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Model, run.Policy, run.TruncLevel, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) SaveCurve(ctx context.Context, runID, siteName string, c *curve.Curve) error {
	imls, err := json.Marshal(c.Xs())
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal imls")
	}
	probs, err := json.Marshal(c.Ys())
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal probs")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO run_curves (id, run_id, site, imls, probs) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), runID, siteName, string(imls), string(probs),
	)
	return eris.Wrap(err, "sqlite: insert curve")
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, model, policy, trunc_level, created_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Model, &r.Policy, &r.TruncLevel, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) GetCurves(ctx context.Context, runID string) ([]SiteCurve, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT site, imls, probs FROM run_curves WHERE run_id = ? ORDER BY site`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get curves")
	}
	defer rows.Close()

	var curves []SiteCurve
	for rows.Next() {
		var sc SiteCurve
		var imls, probs string
		if err := rows.Scan(&sc.Site, &imls, &probs); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan curve")
		}
		if err := json.Unmarshal([]byte(imls), &sc.IMLs); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal imls")
		}
		if err := json.Unmarshal([]byte(probs), &sc.Probs); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal probs")
		}
		curves = append(curves, sc)
	}
	return curves, eris.Wrap(rows.Err(), "sqlite: iterate curves")
}
