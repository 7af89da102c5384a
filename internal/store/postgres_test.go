package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwisener01/re-onmarket/internal/dealfinder"
)

func testPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgresCreateRun(t *testing.T) {
	s, mock := testPostgres(t)

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(pgxmock.AnyArg(), "Memphis, TN", pgxmock.AnyArg(),
			StatusRunning, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateRun(context.Background(), dealfinder.Criteria{Location: "Memphis, TN"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, StatusRunning, run.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCompleteRun(t *testing.T) {
	s, mock := testPostgres(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE runs SET").
		WithArgs(StatusComplete, pgxmock.AnyArg(), pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.CompleteRun(context.Background(), id, StatusComplete,
		&dealfinder.Results{APICalls: 3})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetRun(t *testing.T) {
	s, mock := testPostgres(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM runs WHERE").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "location", "criteria", "status", "results", "created_at", "updated_at"}).
			AddRow(id, "Memphis, TN", []byte(`{"location":"Memphis, TN"}`),
				StatusComplete, []byte(`{"api_calls":7}`), now, now))

	run, err := s.GetRun(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "Memphis, TN", run.Criteria.Location)
	require.NotNil(t, run.Results)
	assert.Equal(t, 7, run.Results.APICalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListRuns(t *testing.T) {
	s, mock := testPostgres(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM runs ORDER BY created_at DESC").
		WithArgs(20).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "location", "criteria", "status", "results", "created_at", "updated_at"}).
			AddRow(uuid.New(), "a", []byte(`{}`), StatusComplete, []byte(nil), now, now).
			AddRow(uuid.New(), "b", []byte(`{}`), StatusFailed, []byte(nil), now, now))

	runs, err := s.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].Location)
	assert.Nil(t, runs[0].Results)
	require.NoError(t, mock.ExpectationsWereMet())
}
