// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/md-elections/internal/output"
	"github.com/pdiddy/md-elections/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "openelections")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	store, err := NewStore(types.ResultsConfig{IndexDir: filepath.Join(tmpDir, "index")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, outDir
}

func writeOutput(t *testing.T, outDir, date string, rows []types.Row) string {
	t.Helper()
	path := filepath.Join(outDir, date+"__md__general__county.csv")
	_, err := output.WriteCSV(path, rows)
	require.NoError(t, err)
	return path
}

func rows1998() []types.Row {
	return []types.Row{
		{County: "Somerset", Office: "Governor", Party: "DEM", Candidate: "Parris N. Glendening", Votes: 3000, Winner: true},
		{County: "Somerset", Office: "Governor", Party: "REP", Candidate: "Ellen R. Sauerbrey", Votes: 3500},
		{County: "Kent", Office: "Governor", Party: "DEM", Candidate: "Parris N. Glendening", Votes: 4000, Winner: true},
		{County: "Kent", Office: "Governor", Party: "REP", Candidate: "Ellen R. Sauerbrey", Votes: 2500},
		{County: "Kent", Office: "Comptroller", Party: "DEM", Candidate: "William Donald Schaefer", Votes: 5000, Winner: true},
	}
}

func rows2002() []types.Row {
	return []types.Row{
		{County: "Kent", Office: "Governor", Party: "REP", Candidate: "Robert L. Ehrlich", Votes: 4200, Winner: true},
	}
}

func ingest(t *testing.T, store *Store, outDir string) (IngestSummary, string) {
	t.Helper()
	var log bytes.Buffer
	summary, err := store.Ingest(context.Background(), outDir, &log)
	require.NoError(t, err)
	return summary, log.String()
}

// --- tests ---

func TestIngest(t *testing.T) {
	store, outDir := testSetup(t)
	writeOutput(t, outDir, "19981103", rows1998())
	writeOutput(t, outDir, "20021105", rows2002())
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "notes.csv"), []byte("x"), 0o644))

	summary, log := ingest(t, store, outDir)
	assert.Equal(t, 2, summary.Indexed)
	assert.Equal(t, 2, summary.Total())
	assert.Contains(t, log, "indexing 19981103 (5 rows)")

	elections, err := store.Elections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Election{
		{Date: "19981103", SourceFile: "19981103__md__general__county.csv", RowCount: 5},
		{Date: "20021105", SourceFile: "20021105__md__general__county.csv", RowCount: 1},
	}, elections)
}

func TestIngest_Incremental(t *testing.T) {
	store, outDir := testSetup(t)
	path := writeOutput(t, outDir, "19981103", rows1998())

	summary, _ := ingest(t, store, outDir)
	assert.Equal(t, 1, summary.Indexed)

	summary, log := ingest(t, store, outDir)
	assert.Equal(t, 1, summary.Skipped)
	assert.Contains(t, log, "skipped  19981103")

	writeOutput(t, outDir, "19981103", rows1998()[:2])
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	summary, _ = ingest(t, store, outDir)
	assert.Equal(t, 1, summary.Updated)

	got, err := store.Query(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestIngest_BadFile(t *testing.T) {
	store, outDir := testSetup(t)
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "19981103__md__general__county.csv"), []byte("not,a,results,file\n"), 0o644))

	summary, log := ingest(t, store, outDir)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, log, "failed   19981103")
}

func TestQuery(t *testing.T) {
	store, outDir := testSetup(t)
	writeOutput(t, outDir, "19981103", rows1998())
	writeOutput(t, outDir, "20021105", rows2002())
	ingest(t, store, outDir)
	ctx := context.Background()

	tests := []struct {
		name      string
		opts      QueryOptions
		wantCount int
	}{
		{name: "all", opts: QueryOptions{}, wantCount: 6},
		{name: "by election", opts: QueryOptions{ElectionDate: "20021105"}, wantCount: 1},
		{name: "by county", opts: QueryOptions{County: "Kent"}, wantCount: 4},
		{name: "office substring any case", opts: QueryOptions{Office: "governor"}, wantCount: 5},
		{name: "candidate substring", opts: QueryOptions{Candidate: "Glendening"}, wantCount: 2},
		{name: "party", opts: QueryOptions{Party: "REP"}, wantCount: 3},
		{name: "winners", opts: QueryOptions{WinnersOnly: true}, wantCount: 4},
		{name: "combined", opts: QueryOptions{County: "Kent", Office: "Governor", WinnersOnly: true}, wantCount: 2},
		{name: "limit", opts: QueryOptions{MaxResults: 2}, wantCount: 2},
		{name: "no match", opts: QueryOptions{County: "Garrett"}, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.opts)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}

	got, err := store.Query(ctx, QueryOptions{ElectionDate: "19981103", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Result{ElectionDate: "19981103", Row: rows1998()[0]}, got[0])
}

func TestTotals(t *testing.T) {
	store, outDir := testSetup(t)
	writeOutput(t, outDir, "19981103", rows1998())
	ingest(t, store, outDir)

	got, err := store.Totals(context.Background(), QueryOptions{Office: "Governor"})
	require.NoError(t, err)

	assert.Equal(t, []Total{
		{ElectionDate: "19981103", Office: "Governor", Candidate: "Parris N. Glendening", Party: "DEM", Votes: 7000, Winner: true},
		{ElectionDate: "19981103", Office: "Governor", Candidate: "Ellen R. Sauerbrey", Party: "REP", Votes: 6000},
	}, got)
}

func TestExport(t *testing.T) {
	store, outDir := testSetup(t)
	writeOutput(t, outDir, "20021105", rows2002())
	ingest(t, store, outDir)
	ctx := context.Background()

	yamlPath, err := store.ExportYAML(ctx, QueryOptions{})
	require.NoError(t, err)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)

	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "20021105", fromYAML[0]["election_date"])
	assert.Equal(t, "Robert L. Ehrlich", fromYAML[0]["candidate"])
	assert.Equal(t, 4200, fromYAML[0]["votes"])

	jsonPath, err := store.ExportJSON(ctx, QueryOptions{County: "Garrett"})
	require.NoError(t, err)
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)

	var fromJSON []Result
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Empty(t, fromJSON)
	assert.Equal(t, "[]", string(data))
}
