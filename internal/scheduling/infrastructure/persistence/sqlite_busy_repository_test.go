package persistence_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/chronosuggest/engine/internal/scheduling/infrastructure/persistence"
)

func setupBusyTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, persistence.RunMigrations(context.Background(), sqlDB))
	return sqlDB
}

func TestSQLiteBusyRepository_CommitThenBusyIntervals_RoundTrips(t *testing.T) {
	db := setupBusyTestDB(t)
	defer db.Close()
	repo := persistence.NewSQLiteBusyRepository(db)

	start := time.Date(2025, time.November, 27, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	require.NoError(t, repo.Commit(context.Background(), "user-1", start, end))

	intervals, err := repo.BusyIntervals(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, "user-1", intervals[0].UserID)
	assert.True(t, start.Equal(intervals[0].Start))
	assert.True(t, end.Equal(intervals[0].End))
}

func TestSQLiteBusyRepository_BusyIntervals_ScopedByUser(t *testing.T) {
	db := setupBusyTestDB(t)
	defer db.Close()
	repo := persistence.NewSQLiteBusyRepository(db)

	start := time.Date(2025, time.November, 27, 14, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Commit(context.Background(), "user-1", start, start.Add(time.Hour)))
	require.NoError(t, repo.Commit(context.Background(), "user-2", start, start.Add(time.Hour)))

	intervals, err := repo.BusyIntervals(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, intervals, 1)
}

func TestSQLiteBusyRepository_BusyIntervals_OrderedByStart(t *testing.T) {
	db := setupBusyTestDB(t)
	defer db.Close()
	repo := persistence.NewSQLiteBusyRepository(db)

	later := time.Date(2025, time.November, 27, 16, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, time.November, 27, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Commit(context.Background(), "user-1", later, later.Add(time.Hour)))
	require.NoError(t, repo.Commit(context.Background(), "user-1", earlier, earlier.Add(time.Hour)))

	intervals, err := repo.BusyIntervals(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	assert.True(t, intervals[0].Start.Before(intervals[1].Start))
}

func TestSQLiteBusyRepository_Release_RemovesMatchingInterval(t *testing.T) {
	db := setupBusyTestDB(t)
	defer db.Close()
	repo := persistence.NewSQLiteBusyRepository(db)

	start := time.Date(2025, time.November, 27, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	require.NoError(t, repo.Commit(context.Background(), "user-1", start, end))
	require.NoError(t, repo.Release(context.Background(), "user-1", start, end))

	intervals, err := repo.BusyIntervals(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, intervals)
}
