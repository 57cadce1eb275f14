// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cord19-explorer/internal/dataset"
	"github.com/pdiddy/cord19-explorer/internal/export"
	"github.com/pdiddy/cord19-explorer/internal/store"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

const metadata = `cord_uid,title,abstract,journal,publish_time
a1,COVID vaccine study,Vaccines work.,Nature,2020-05-01
a2,,No title,Science,2021-01-01
a3,Unrelated paper,,Science,bad-date
a4,Vaccine hesitancy survey,,,2021-03-04
a5,Lung imaging findings,Text,Nature,2019-12-30
`

func setup(t *testing.T, content string) types.BatchConfig {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "metadata.csv")
	require.NoError(t, os.WriteFile(data, []byte(content), 0o644))
	return types.BatchConfig{
		AnalysisConfig: types.AnalysisConfig{DataFile: data},
		OutputDir:      filepath.Join(dir, "out"),
	}
}

func TestRunWritesOutputs(t *testing.T) {
	cfg := setup(t, metadata)

	var out strings.Builder
	res, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)

	assert.Equal(t, 5, res.RawRows)
	assert.Equal(t, 3, res.Cleaned)
	for _, name := range []string{CleanedCSV, YearsPNG, JournalsPNG, SummaryYAML} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, name))
	}
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, CleanedXLSX))

	log := out.String()
	assert.Contains(t, log, "Data cleaned! Remaining rows: 3")
	assert.Contains(t, log, "Missing values in key columns:")
	assert.Contains(t, log, "Top 10 journals:")
	assert.Contains(t, log, "Analysis complete!")

	tbl, err := dataset.Load(filepath.Join(cfg.OutputDir, CleanedCSV))
	require.NoError(t, err)
	assert.Equal(t, []string(export.CleanedColumns), tbl.Columns())
	assert.Equal(t, 3, tbl.Len())
}

func TestRunSummaryFile(t *testing.T) {
	cfg := setup(t, metadata)
	_, err := Run(context.Background(), cfg, &strings.Builder{})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(cfg.OutputDir, SummaryYAML))
	require.NoError(t, err)
	defer f.Close()

	sf, err := export.ReadSummaryYAML(f)
	require.NoError(t, err)
	assert.Equal(t, 3, sf.Cleaned)
	require.NotNil(t, sf.Range)
	assert.Equal(t, types.YearRange{Min: 2019, Max: 2021}, *sf.Range)
	assert.Equal(t, types.Count{Key: "Nature", Count: 2}, sf.Summary.Journals[0])
	assert.Equal(t, types.Count{Key: "vaccine", Count: 2}, sf.Summary.Words[0])
	assert.Contains(t, sf.StopWords, "patients")
}

func TestRunMissingFileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := types.BatchConfig{
		AnalysisConfig: types.AnalysisConfig{DataFile: filepath.Join(dir, "metadata.csv")},
		OutputDir:      filepath.Join(dir, "out"),
	}

	_, err := Run(context.Background(), cfg, &strings.Builder{})
	require.ErrorIs(t, err, dataset.ErrMissingInputFile)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestRunNoCleanRows(t *testing.T) {
	cfg := setup(t, "title,abstract,journal,publish_time\nA,,,bad\n")

	var out strings.Builder
	res, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Cleaned)
	assert.Contains(t, out.String(), "No data: skipped papers_per_year.png")
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, YearsPNG))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, CleanedCSV))
}

func TestRunOptionalOutputs(t *testing.T) {
	cfg := setup(t, metadata)
	cfg.WriteXLSX = true
	cfg.SQLitePath = filepath.Join(cfg.OutputDir, "metadata.db")
	cfg.StopWords = types.StopWordsBatch

	var out strings.Builder
	res, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Snapshot check: 3 rows, top journal Nature (2)")
	assert.Contains(t, res.Files, filepath.Join(cfg.OutputDir, CleanedXLSX))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, CleanedXLSX))

	s, err := store.Open(cfg.SQLitePath)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRunRepeatedColumns(t *testing.T) {
	cfg := setup(t, "title,title,journal,publish_time\nVaccine study,Other,Cell,2020-02-02\n")

	var out strings.Builder
	res, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cleaned)
	assert.Contains(t, out.String(), "Columns: title, title.1, journal, publish_time")
}

func TestRunBadStopWordList(t *testing.T) {
	cfg := setup(t, metadata)
	cfg.StopWords = "nope"
	_, err := Run(context.Background(), cfg, &strings.Builder{})
	assert.Error(t, err)
}
