// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"gonum.org/v1/plot"

	"github.com/pdiddy/cord19-explorer/internal/analysis"
	"github.com/pdiddy/cord19-explorer/internal/chart"
	"github.com/pdiddy/cord19-explorer/internal/dataset"
	"github.com/pdiddy/cord19-explorer/internal/export"
	"github.com/pdiddy/cord19-explorer/internal/logging"
	"github.com/pdiddy/cord19-explorer/internal/strutil"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var templateFuncs = template.FuncMap{
	"clip": strutil.Clip,
}

// view is the filtered slice of the snapshot selected by one request.
type view struct {
	snap     *dataset.Snapshot
	sel      Selection
	filtered []types.CleanedRecord
}

// options returns the analysis options with the request's N values.
func (s *Server) options(sel Selection) analysis.Options {
	opts := s.opts
	opts.TopJournals = sel.TopJournals
	opts.TopWords = sel.TopWords
	return opts
}

// loadView resolves the snapshot and the selection. On failure it has
// already written the response.
func (s *Server) loadView(w http.ResponseWriter, r *http.Request) (*view, bool) {
	snap, err := s.cache.Get()
	if err != nil {
		s.respondLoadError(w, r, err)
		return nil, false
	}
	sel := parseSelection(r.URL.Query(), snap.Bounds, s.defaults)
	return &view{
		snap:     snap,
		sel:      sel,
		filtered: dataset.Filter(snap.Records, sel.Range),
	}, true
}

// respondLoadError reports a failed load. A missing input file is a
// user-facing condition, not a server fault.
func (s *Server) respondLoadError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	status := http.StatusInternalServerError
	page := errorPage{
		Title:   "Error: the metadata file could not be loaded.",
		Message: err.Error(),
	}
	if errors.Is(err, dataset.ErrMissingInputFile) {
		status = http.StatusServiceUnavailable
		name := filepath.Base(s.cache.Path())
		page.Title = fmt.Sprintf("Error: '%s' not found.", name)
		page.Message = fmt.Sprintf("Please place '%s' at %s and reload this page.", name, s.cache.Path())
		logger.Warn("input file missing", "path", s.cache.Path())
	} else {
		logger.Error("loading input file", "path", s.cache.Path(), "error", err)
	}

	if r.URL.Path != "/" {
		http.Error(w, page.Title, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "error.html", page); err != nil {
		logger.Error("rendering error page", "error", err)
	}
}

type errorPage struct {
	Title   string
	Message string
}

type dashboardPage struct {
	HasData       bool
	Bounds        types.YearRange
	Sel           Selection
	Found         int
	Summary       analysis.Summary
	SampleColumns []string
	Sample        [][]string
	SampleSize    int
	YearsChart    template.URL
	JournalsChart template.URL
	ExportCSV     template.URL
	ExportXLSX    template.URL
	ExportName    string

	MinJournals, MaxJournals int
	MinWords, MaxWords       int
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadView(w, r)
	if !ok {
		return
	}

	summary := analysis.Summarize(v.filtered, s.options(v.sel))
	sample := v.filtered
	if len(sample) > types.SampleSize {
		sample = sample[:types.SampleSize]
	}
	rows := make([][]string, len(sample))
	for i, rec := range sample {
		rows[i] = export.SampleColumns.Row(rec)
	}

	q := v.sel.Query().Encode()
	page := dashboardPage{
		HasData:       v.snap.HasData,
		Bounds:        v.snap.Bounds,
		Sel:           v.sel,
		Found:         len(v.filtered),
		Summary:       summary,
		SampleColumns: export.SampleColumns,
		Sample:        rows,
		SampleSize:    types.SampleSize,
		YearsChart:    template.URL("/charts/years.png?" + q),
		JournalsChart: template.URL("/charts/journals.png?" + q),
		ExportCSV:     template.URL("/export.csv?" + q),
		ExportXLSX:    template.URL("/export.xlsx?" + q),
		ExportName:    export.FileName(v.sel.Range, "csv"),
		MinJournals:   types.MinTopJournals,
		MaxJournals:   types.MaxTopJournals,
		MinWords:      types.MinTopWords,
		MaxWords:      types.MaxTopWords,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "dashboard.html", page); err != nil {
		logging.FromContext(r.Context()).Error("rendering dashboard", "error", err)
	}
}

func (s *Server) handleYearsChart(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadView(w, r)
	if !ok {
		return
	}
	p, err := chart.Years(analysis.YearHistogram(v.filtered))
	s.writeChart(w, r, p, err)
}

func (s *Server) handleJournalsChart(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadView(w, r)
	if !ok {
		return
	}
	p, err := chart.Journals(analysis.TopJournals(v.filtered, v.sel.TopJournals))
	s.writeChart(w, r, p, err)
}

func (s *Server) writeChart(w http.ResponseWriter, r *http.Request, p *plot.Plot, err error) {
	if errors.Is(err, chart.ErrNoData) {
		http.Error(w, "no data", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("building chart", "error", err)
		http.Error(w, "chart failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := chart.WritePNG(w, p, chart.Screen); err != nil {
		logging.FromContext(r.Context()).Error("writing chart", "error", err)
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadView(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(v.sel.Range, "csv")))
	if err := export.WriteCSV(w, export.SampleColumns, v.filtered); err != nil {
		logging.FromContext(r.Context()).Error("writing CSV export", "error", err)
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadView(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(v.sel.Range, "xlsx")))
	if err := export.WriteXLSX(w, export.SampleColumns, v.filtered); err != nil {
		logging.FromContext(r.Context()).Error("writing XLSX export", "error", err)
	}
}

// summaryResponse is the JSON body of /api/summary.
type summaryResponse struct {
	Bounds      *types.YearRange `json:"bounds,omitempty"`
	Range       types.YearRange  `json:"range"`
	TopJournals int              `json:"top_journals"`
	TopWords    int              `json:"top_words"`
	analysis.Summary
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadView(w, r)
	if !ok {
		return
	}
	resp := summaryResponse{
		Range:       v.sel.Range,
		TopJournals: v.sel.TopJournals,
		TopWords:    v.sel.TopWords,
		Summary:     analysis.Summarize(v.filtered, s.options(v.sel)),
	}
	if v.snap.HasData {
		b := v.snap.Bounds
		resp.Bounds = &b
	}
	writeJSON(w, r, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok", "session": s.id})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode", "error", err)
	}
}
