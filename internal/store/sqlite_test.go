package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwisener01/re-onmarket/internal/config"
	"github.com/kwisener01/re-onmarket/internal/dealfinder"
)

func testSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteRunLifecycle(t *testing.T) {
	s := testSQLite(t)
	ctx := context.Background()

	criteria := dealfinder.Criteria{Location: "Memphis, TN", MaxPrice: 150000, MinBeds: 3}

	run, err := s.CreateRun(ctx, criteria)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, StatusRunning, run.Status)

	results := &dealfinder.Results{Criteria: criteria, APICalls: 4}
	require.NoError(t, s.CompleteRun(ctx, run.ID, StatusComplete, results))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "Memphis, TN", got.Location)
	assert.Equal(t, StatusComplete, got.Status)
	assert.Equal(t, 150000.0, got.Criteria.MaxPrice)
	require.NotNil(t, got.Results)
	assert.Equal(t, 4, got.Results.APICalls)
}

func TestSQLiteCompleteRunWithoutResults(t *testing.T) {
	s := testSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, dealfinder.Criteria{Location: "x"})
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, run.ID, StatusFailed, nil))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Nil(t, got.Results)
}

func TestSQLiteListRuns(t *testing.T) {
	s := testSQLite(t)
	ctx := context.Background()

	for _, loc := range []string{"a", "b", "c"} {
		_, err := s.CreateRun(ctx, dealfinder.Criteria{Location: loc})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	all, err := s.ListRuns(ctx, 0) // default limit
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLiteGetRunMissing(t *testing.T) {
	s := testSQLite(t)

	_, err := s.GetRun(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
