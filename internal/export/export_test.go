// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/cord19-explorer/internal/analysis"
	"github.com/pdiddy/cord19-explorer/internal/dataset"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

func sampleRecords() []types.CleanedRecord {
	return []types.CleanedRecord{
		{
			Title: "Vaccine trial, phase \"II\"", Abstract: "Line one\nline two",
			Journal: "Nature", PublishTime: "2020-05-01",
			PublishDate: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), Year: 2020,
		},
		{
			Title: "Masks", Abstract: types.NoAbstract,
			Journal: types.UnknownJournal, PublishTime: "2021",
			PublishDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Year: 2021,
		},
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "cleaned_metadata_2019_2021.csv", FileName(types.YearRange{Min: 2019, Max: 2021}, "csv"))
	assert.Equal(t, "cleaned_metadata_2020_2020.xlsx", FileName(types.YearRange{Min: 2020, Max: 2020}, "xlsx"))
}

func TestWriteCSVSampleColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SampleColumns, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"publish_date", "title", "journal", "abstract"}, rows[0])
	assert.Equal(t, []string{"2020-05-01", "Vaccine trial, phase \"II\"", "Nature", "Line one\nline two"}, rows[1])
}

func TestWriteCSVEmptyWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SampleColumns, nil))
	assert.Equal(t, "publish_date,title,journal,abstract\n", buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	recs := sampleRecords()
	path := filepath.Join(t.TempDir(), "cleaned_metadata.csv")
	require.NoError(t, SaveCSV(path, CleanedColumns, recs))

	tbl, err := dataset.Load(path)
	require.NoError(t, err)
	assert.Equal(t, len(recs), tbl.Len())

	reloaded := dataset.Clean(tbl.Records())
	require.Len(t, reloaded, len(recs))
	for i := range recs {
		assert.Equal(t, SampleColumns.Row(recs[i]), SampleColumns.Row(reloaded[i]))
		assert.Equal(t, recs[i].Year, reloaded[i].Year)
	}
}

func TestSampleExportRoundTrip(t *testing.T) {
	recs := sampleRecords()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SampleColumns, recs))

	tbl, err := dataset.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, len(recs), tbl.Len())

	got := tbl.Records()
	for i, r := range recs {
		assert.Equal(t, r.Title, got[i].Title)
		assert.Equal(t, r.Journal, got[i].Journal)
		assert.Equal(t, r.Abstract, got[i].Abstract)
	}
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, CleanedColumns, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string(CleanedColumns), rows[0])
	assert.Equal(t, "Masks", rows[2][0])
	assert.Equal(t, "2021", rows[2][5])
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned_metadata.xlsx")
	require.NoError(t, SaveXLSX(path, SampleColumns, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSummaryYAMLRoundTrip(t *testing.T) {
	sf := SummaryFile{
		Input:     "metadata.csv",
		Generated: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		RawRows:   10,
		Cleaned:   2,
		Range:     &types.YearRange{Min: 2020, Max: 2021},
		StopWords: analysis.BatchStopWords().Sorted(),
		Summary:   analysis.Summarize(sampleRecords(), analysis.DefaultOptions()),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryYAML(&buf, sf))
	assert.True(t, strings.Contains(buf.String(), "year_range:"))

	got, err := ReadSummaryYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, sf, *got)
}
