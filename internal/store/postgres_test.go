package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basin-labs/hazcalc/internal/curve"
)

func TestPostgresStore_CreateRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresWithPool(mock)

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(pgxmock.AnyArg(), "wasatch-2026", "UPPER_ONLY", 3.0, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := store.CreateRun(context.Background(), "wasatch-2026", "UPPER_ONLY", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "wasatch-2026", run.Model)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveCurve(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresWithPool(mock)

	c, err := curve.New([]float64{0.1, 1.0})
	require.NoError(t, err)
	c.SetY(0, 0.5)
	c.SetY(1, 0.25)

	mock.ExpectExec(`INSERT INTO run_curves`).
		WithArgs(pgxmock.AnyArg(), "run-123", "SLC", `[0.1,1]`, `[0.5,0.25]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.SaveCurve(context.Background(), "run-123", "SLC", c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresWithPool(mock)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, model, policy, trunc_level, created_at FROM runs`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "model", "policy", "trunc_level", "created_at"}).
			AddRow("run-1", "wasatch-2026", "UPPER_ONLY", 3.0, now).
			AddRow("run-2", "wasatch-2026", "NONE", 0.0, now))

	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "UPPER_ONLY", runs[0].Policy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCurves(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresWithPool(mock)

	mock.ExpectQuery(`SELECT site, imls, probs FROM run_curves`).
		WithArgs("run-123").
		WillReturnRows(pgxmock.NewRows([]string{"site", "imls", "probs"}).
			AddRow("SLC", []byte(`[0.1,1]`), []byte(`[0.5,0.25]`)))

	curves, err := store.GetCurves(context.Background(), "run-123")
	require.NoError(t, err)
	require.Len(t, curves, 1)
	assert.Equal(t, "SLC", curves[0].Site)
	assert.Equal(t, []float64{0.1, 1}, curves[0].IMLs)
	assert.Equal(t, []float64{0.5, 0.25}, curves[0].Probs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
