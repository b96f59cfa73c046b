package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/profile-finder/internal/model"
)

func batchQueries() []model.Query {
	return []model.Query{
		{Name: "Jane Doe", Company: "Acme"},
		{Name: ""},
		{Name: "John Smith", Company: "Initech"},
	}
}

func TestProcessBatch_OrderAndRun(t *testing.T) {
	srv, _ := fakeDuckDuckGo(t)
	c := testConfig(t, srv.URL)
	c.Store.Driver = "sqlite"
	c.Store.DatabaseURL = filepath.Join(t.TempDir(), "runs.db")
	c.Finder.MaxWorkers = 2

	env, err := initFinder(context.Background(), c, "batch")
	require.NoError(t, err)
	defer env.Close()

	var progress bytes.Buffer
	results, err := processBatch(context.Background(), env, batchQueries(), progressPrinter(&progress))
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.Equal(t, model.ErrInvalidQuery, results[1].Error)
	assert.Equal(t, model.ErrNotFound, results[2].Error)

	assert.Equal(t, 3, strings.Count(progress.String(), "\n"))
	assert.Contains(t, progress.String(), "#1 found")
	assert.Contains(t, progress.String(), "#2 InvalidQuery")

	runs, err := env.Store.ListRuns(context.Background(), storeFilterAll())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.RunStatusComplete, runs[0].Status)
	assert.Equal(t, 3, runs[0].Total)
	assert.Equal(t, 1, runs[0].Found)
}

func TestProcessBatch_Empty(t *testing.T) {
	c := testConfig(t, "http://localhost")
	env, err := initFinder(context.Background(), c, "batch")
	require.NoError(t, err)
	defer env.Close()

	results, err := processBatch(context.Background(), env, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProcessBatch_Cancelled(t *testing.T) {
	srv, _ := fakeDuckDuckGo(t)
	c := testConfig(t, srv.URL)
	env, err := initFinder(context.Background(), c, "batch")
	require.NoError(t, err)
	defer env.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := processBatch(ctx, env, batchQueries(), nil)
	assert.Error(t, err)
	assert.Len(t, results, 3)
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := progressPrinter(&buf)
	p(1, 2, 1, model.Failed(model.ErrSearchUnavailable))
	p(2, 2, 0, model.SearchResult{Success: true})

	assert.Equal(t, "[1/2] #2 SearchUnavailable\n[2/2] #1 found\n", buf.String())
}

func TestBatchCommand_EndToEnd(t *testing.T) {
	srv, _ := fakeDuckDuckGo(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "people.csv")
	output := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(input, []byte("name,company\nJane Doe,Acme\nJohn Smith,Initech\n"), 0o600))

	t.Chdir(dir)
	t.Setenv("PROFILE_FINDER_DUCKDUCKGO_BASE_URL", srv.URL)
	t.Setenv("PROFILE_FINDER_FINDER_DELAY_BETWEEN_REQUESTS", "0")
	t.Setenv("PROFILE_FINDER_LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"batch", "--input", input, "--output", output, "--format", "csv", "--quiet"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		batchInput, batchOutput, batchFormat, batchQuiet = "", "", "json", false
	})
	require.NoError(t, rootCmd.Execute())

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Jane Doe", records[1][0])
	assert.Equal(t, "true", records[1][4])
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", records[1][5])
	assert.Equal(t, "John Smith", records[2][0])
	assert.Equal(t, "NotFound", records[2][15])
}

func TestBatchCommand_BadFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROFILE_FINDER_LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"batch", "--input", "people.csv", "--format", "xml"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		batchInput, batchFormat = "", "json"
	})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")
}
