// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/cord19-explorer/internal/dataset"
	"github.com/pdiddy/cord19-explorer/internal/store"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

const metadataCSV = `cord_uid,title,abstract,journal,publish_time
a1,COVID vaccine study,Vaccines work.,Nature,2020-05-01
a2,,No title here,Science,2021-01-01
a3,Vaccine trial results,,Nature,2020-07-15
a4,Masks and transmission,,,2021-03-02
a5,"Lungs, imaging and outcomes",Text,Lancet,2019-12-30 00:00:00
`

func newTestServer(t *testing.T, content string) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metadata.csv")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	s, err := NewServer(types.ServerConfig{AnalysisConfig: types.AnalysisConfig{DataFile: path}})
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t, metadataCSV)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "CORD-19 Data Explorer")
	assert.Contains(t, body, "Analysis for 2019–2021")
	assert.Contains(t, body, "Found 4 articles")
	assert.Contains(t, body, "/charts/years.png?journals=10&amp;max=2021&amp;min=2019&amp;words=15")
	assert.Contains(t, body, "<td>vaccine</td><td>2</td>")
	assert.Contains(t, body, "UNKNOWN JOURNAL")
	assert.Contains(t, body, "cleaned_metadata_2019_2021.csv")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestDashboardSelection(t *testing.T) {
	s := newTestServer(t, metadataCSV)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "narrowed range",
			query: "min=2020&max=2020",
			want:  []string{"Analysis for 2020–2020", "Found 2 articles"},
		},
		{
			name:  "clamped to data bounds",
			query: "min=1900&max=3000",
			want:  []string{"Analysis for 2019–2021", "Found 4 articles"},
		},
		{
			name:  "malformed values fall back",
			query: "min=abc&words=many",
			want:  []string{"Analysis for 2019–2021", "Top 15 words in titles"},
		},
		{
			name:  "inverted range is empty",
			query: "min=2021&max=2019",
			want: []string{
				"Found 0 articles",
				"No titles found to analyze in the selected range.",
				"No data",
			},
		},
		{
			name:  "N values clamped",
			query: "journals=99&words=1",
			want:  []string{"Top 25 journals", "Top 5 words in titles"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/?"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)
			for _, w := range tt.want {
				assert.Contains(t, rec.Body.String(), w)
			}
		})
	}
}

func TestDashboardMissingFile(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(t, s, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Error: &#39;metadata.csv&#39; not found.")
	assert.NotContains(t, body, "<img")

	rec = get(t, s, "/charts/years.png")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDashboardRecoversOnceFileAppears(t *testing.T) {
	s := newTestServer(t, "")
	require.Equal(t, http.StatusServiceUnavailable, get(t, s, "/").Code)

	require.NoError(t, os.WriteFile(s.cache.Path(), []byte(metadataCSV), 0o644))
	rec := get(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Found 4 articles")
}

func TestDashboardFromSnapshot(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "metadata.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(metadataCSV), 0o644))
	_, records, err := dataset.LoadCSV(csvPath)
	require.NoError(t, err)

	dbPath := filepath.Join(dir, "metadata.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Replace(context.Background(), csvPath, records, io.Discard))
	require.NoError(t, st.Close())

	s, err := NewServer(types.ServerConfig{SQLitePath: dbPath})
	require.NoError(t, err)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analysis for 2019–2021")
	assert.Contains(t, rec.Body.String(), "Found 4 articles")
}

func TestDashboardMissingSnapshot(t *testing.T) {
	s, err := NewServer(types.ServerConfig{SQLitePath: filepath.Join(t.TempDir(), "metadata.db")})
	require.NoError(t, err)

	rec := get(t, s, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error: &#39;metadata.db&#39; not found.")
}

func TestDashboardRepeatedColumns(t *testing.T) {
	s := newTestServer(t, "title,title,publish_time\nFirst title,Second title,2020-01-01\n")

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Found 1 articles")
	assert.Contains(t, rec.Body.String(), "First title")
}

func TestCharts(t *testing.T) {
	s := newTestServer(t, metadataCSV)

	for _, path := range []string{"/charts/years.png", "/charts/journals.png"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, s, path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG\r\n\x1a\n"))

			rec = get(t, s, path+"?min=2021&max=2019")
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "no data")
		})
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t, metadataCSV)

	rec := get(t, s, "/export.csv?min=2020&max=2021")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cleaned_metadata_2020_2021.csv"`, rec.Header().Get("Content-Disposition"))

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"publish_date", "title", "journal", "abstract"}, rows[0])
	assert.Equal(t, []string{"2020-05-01", "COVID vaccine study", "Nature", "Vaccines work."}, rows[1])
	assert.Equal(t, []string{"2021-03-02", "Masks and transmission", "UNKNOWN JOURNAL", "NO ABSTRACT PROVIDED"}, rows[3])
}

func TestExportCSVEmptySelection(t *testing.T) {
	s := newTestServer(t, metadataCSV)

	rec := get(t, s, "/export.csv?min=2021&max=2019")
	require.Equal(t, http.StatusOK, rec.Code)
	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestExportXLSX(t *testing.T) {
	s := newTestServer(t, metadataCSV)

	rec := get(t, s, "/export.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cleaned_metadata_2019_2021.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("metadata")
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestSummaryAPI(t *testing.T) {
	s := newTestServer(t, metadataCSV)

	q := url.Values{"min": {"2020"}, "words": {"5"}}
	rec := get(t, s, "/api/summary?"+q.Encode())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got summaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.NotNil(t, got.Bounds)
	assert.Equal(t, types.YearRange{Min: 2019, Max: 2021}, *got.Bounds)
	assert.Equal(t, types.YearRange{Min: 2020, Max: 2021}, got.Range)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 5, got.TopWords)
	assert.Equal(t, []types.Count{{Key: "2020", Count: 2}, {Key: "2021", Count: 1}}, got.Years)
	assert.Equal(t, types.Count{Key: "Nature", Count: 2}, got.Journals[0])
	assert.Equal(t, types.Count{Key: "vaccine", Count: 2}, got.Words[0])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "ok", got["status"])
	assert.Equal(t, s.id, got["session"])
}

func TestNewServerRejectsUnknownStopWords(t *testing.T) {
	_, err := NewServer(types.ServerConfig{AnalysisConfig: types.AnalysisConfig{StopWords: "klingon"}})
	assert.Error(t, err)
}

func TestParseSelection(t *testing.T) {
	bounds := types.YearRange{Min: 2000, Max: 2020}
	defaults := Selection{TopJournals: 10, TopWords: 15}

	tests := []struct {
		name  string
		query string
		want  Selection
	}{
		{"defaults", "", Selection{Range: bounds, TopJournals: 10, TopWords: 15}},
		{"explicit", "min=2005&max=2010&journals=7&words=20",
			Selection{Range: types.YearRange{Min: 2005, Max: 2010}, TopJournals: 7, TopWords: 20}},
		{"clamped", "min=1&max=9999&journals=0&words=100",
			Selection{Range: bounds, TopJournals: 5, TopWords: 30}},
		{"inverted kept", "min=2015&max=2001",
			Selection{Range: types.YearRange{Min: 2015, Max: 2001}, TopJournals: 10, TopWords: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			got := parseSelection(q, bounds, defaults)
			assert.Equal(t, tt.want, got)

			again, err := url.ParseQuery(got.Query().Encode())
			require.NoError(t, err)
			assert.Equal(t, got, parseSelection(again, bounds, defaults))
		})
	}
}
