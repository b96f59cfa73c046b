package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/profile-finder/internal/model"
	"github.com/sells-group/profile-finder/internal/store"
	"github.com/sells-group/profile-finder/pkg/search"
)

func storeFilterAll() store.RunFilter {
	return store.RunFilter{Limit: 100}
}

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:        "abc12345-6789-0000-0000-000000000000",
			Status:    model.RunStatusComplete,
			Total:     10,
			Found:     7,
			CreatedAt: now,
			UpdatedAt: now.Add(2 * time.Minute),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Status:    model.RunStatusRunning,
			Total:     3,
			CreatedAt: now.Add(-1 * time.Hour),
			UpdatedAt: now.Add(-1 * time.Hour),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "abc12345")
	assert.NotContains(t, output, "abc12345-6789")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "7/10")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "2025-06-15 10:30")
	assert.Contains(t, output, "2m0s")
}

func TestRunsStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	runs := []model.Run{
		{ID: "1", Status: model.RunStatusComplete, Total: 10, Found: 6, CreatedAt: now, UpdatedAt: now.Add(60 * time.Second)},
		{ID: "2", Status: model.RunStatusComplete, Total: 10, Found: 2, CreatedAt: now, UpdatedAt: now.Add(120 * time.Second)},
		{ID: "3", Status: model.RunStatusFailed, Total: 5},
		{ID: "4", Status: model.RunStatusRunning, Total: 5},
	}

	s := computeRunStats(runs)
	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, 2, s.Complete)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Running)
	assert.Equal(t, 20, s.Queries)
	assert.Equal(t, 8, s.Found)
	assert.InDelta(t, 0.4, s.HitRate(), 1e-9)
	assert.InDelta(t, 90.0, s.AvgDurSecs, 1e-9)

	var buf bytes.Buffer
	formatRunStats(&buf, s)
	assert.Contains(t, buf.String(), "Total runs:")
	assert.Contains(t, buf.String(), "8 (40.0%)")
	assert.Contains(t, buf.String(), "Avg duration:")
}

func TestRunsStats_Empty(t *testing.T) {
	s := computeRunStats(nil)
	assert.Zero(t, s.Runs)
	assert.Zero(t, s.HitRate())

	var buf bytes.Buffer
	formatRunStats(&buf, s)
	assert.NotContains(t, buf.String(), "Avg duration:")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789"))
	assert.Equal(t, "short", truncateID("short"))
}

func TestRunsCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	t.Chdir(dir)
	t.Setenv("PROFILE_FINDER_STORE_DRIVER", "sqlite")
	t.Setenv("PROFILE_FINDER_STORE_DATABASE_URL", dbPath)
	t.Setenv("PROFILE_FINDER_LOG_LEVEL", "error")

	ctx := context.Background()
	st, err := store.NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Migrate(ctx))
	run, err := st.CreateRun(ctx, []model.Query{{Name: "Jane Doe"}})
	require.NoError(t, err)
	require.NoError(t, st.CompleteRun(ctx, run.ID, []model.SearchResult{{Success: true, ProfileURL: "https://www.linkedin.com/in/janedoe"}}))
	require.NoError(t, st.SetCachedHits(ctx, "stale", []search.Hit{{URL: "u"}}, -time.Hour))
	require.NoError(t, st.Close())

	execute := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(args)
		t.Cleanup(func() {
			rootCmd.SetOut(nil)
			rootCmd.SetArgs(nil)
		})
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	assert.Contains(t, execute("runs", "list"), truncateID(run.ID))
	assert.Contains(t, execute("runs", "show", run.ID), "linkedin.com/in/janedoe")
	assert.Contains(t, execute("runs", "stats"), "Complete:")
	assert.Contains(t, execute("runs", "prune-cache"), "Deleted 1 expired")
}

func TestRunsCommands_RequireStore(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROFILE_FINDER_STORE_DRIVER", "none")
	t.Setenv("PROFILE_FINDER_LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"runs", "list"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver")
}
