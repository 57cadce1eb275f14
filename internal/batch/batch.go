// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs the non-interactive analysis: load and clean the
// metadata file, print an overview and the aggregates, and write the
// charts, the cleaned CSV and a summary to an output directory.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot"

	"github.com/pdiddy/cord19-explorer/internal/analysis"
	"github.com/pdiddy/cord19-explorer/internal/chart"
	"github.com/pdiddy/cord19-explorer/internal/dataset"
	"github.com/pdiddy/cord19-explorer/internal/export"
	"github.com/pdiddy/cord19-explorer/internal/store"
	"github.com/pdiddy/cord19-explorer/internal/strutil"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// Output file names.
const (
	CleanedCSV  = "cleaned_metadata.csv"
	CleanedXLSX = "cleaned_metadata.xlsx"
	YearsPNG    = "papers_per_year.png"
	JournalsPNG = "top_journals.png"
	SummaryYAML = "summary.yaml"
)

const (
	previewRows  = 5
	previewWidth = 50
)

var keyColumns = []string{types.ColTitle, types.ColAbstract, types.ColJournal, types.ColPublishTime}

// Result describes a completed run.
type Result struct {
	RawRows int
	Cleaned int
	Summary analysis.Summary
	Files   []string
}

// Run executes the batch analysis described by cfg, writing progress to w.
// A missing input file returns an error wrapping dataset.ErrMissingInputFile
// before anything is written to the output directory.
func Run(ctx context.Context, cfg types.BatchConfig, w io.Writer) (*Result, error) {
	opts, err := analysis.OptionsFrom(cfg.AnalysisConfig)
	if err != nil {
		return nil, err
	}
	dataFile := cfg.DataFile
	if dataFile == "" {
		dataFile = "metadata.csv"
	}
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}

	fmt.Fprintln(w, "Loading data...")
	tbl, err := dataset.Load(dataFile)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Data loaded: %d rows, %d columns\n", tbl.Len(), len(tbl.Columns()))

	records := tbl.Records()
	writeOverview(w, tbl, records)

	fmt.Fprintln(w, "\nCleaning data...")
	cleaned := dataset.Clean(records)
	fmt.Fprintf(w, "Data cleaned! Remaining rows: %d\n", len(cleaned))

	summary := analysis.Summarize(cleaned, opts)
	fmt.Fprintln(w)
	analysis.FormatSummary(w, summary, opts)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	res := &Result{RawRows: tbl.Len(), Cleaned: len(cleaned), Summary: summary}
	fmt.Fprintln(w)

	if err := saveChart(ctx, w, res, filepath.Join(outDir, YearsPNG), chart.YearsFile, func() (*plot.Plot, error) {
		return chart.Years(summary.Years)
	}); err != nil {
		return nil, err
	}
	if err := saveChart(ctx, w, res, filepath.Join(outDir, JournalsPNG), chart.JournalsFile, func() (*plot.Plot, error) {
		return chart.Journals(summary.Journals)
	}); err != nil {
		return nil, err
	}

	csvPath := filepath.Join(outDir, CleanedCSV)
	if err := export.SaveCSV(csvPath, export.CleanedColumns, cleaned); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, csvPath)
	fmt.Fprintf(w, "Saved: %s\n", csvPath)

	if cfg.WriteXLSX {
		xlsxPath := filepath.Join(outDir, CleanedXLSX)
		if err := export.SaveXLSX(xlsxPath, export.CleanedColumns, cleaned); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, xlsxPath)
		fmt.Fprintf(w, "Saved: %s\n", xlsxPath)
	}

	sf := export.SummaryFile{
		Input:     dataFile,
		Generated: time.Now().UTC(),
		RawRows:   res.RawRows,
		Cleaned:   res.Cleaned,
		StopWords: opts.StopWords.Sorted(),

		TopJournals: opts.TopJournals,
		TopWords:    opts.TopWords,
		Summary:     summary,
	}
	if bounds, ok := dataset.Bounds(cleaned); ok {
		sf.Range = &bounds
	}
	summaryPath := filepath.Join(outDir, SummaryYAML)
	if err := export.SaveSummaryYAML(summaryPath, sf); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, summaryPath)
	fmt.Fprintf(w, "Saved: %s\n", summaryPath)

	if cfg.SQLitePath != "" {
		if err := snapshot(ctx, cfg.SQLitePath, dataFile, cleaned, w); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, cfg.SQLitePath)
	}

	fmt.Fprintln(w, "\nAnalysis complete!")
	return res, nil
}

func writeOverview(w io.Writer, tbl *dataset.Table, records []types.Record) {
	fmt.Fprintln(w, "\nFirst few rows:")
	fmt.Fprintf(w, "%-*s  %-25s  %s\n", previewWidth, "title", "journal", "publish_time")
	fmt.Fprintln(w, strings.Repeat("-", previewWidth+45))
	for i, r := range records {
		if i == previewRows {
			break
		}
		fmt.Fprintf(w, "%-*s  %-25s  %s\n",
			previewWidth, strutil.Clip(orNaN(r.Title, r.HasTitle), previewWidth),
			strutil.Clip(orNaN(r.Journal, r.HasJournal), 25),
			orNaN(r.PublishTime, r.HasPublishTime))
	}

	fmt.Fprintf(w, "\nColumns: %s\n", strings.Join(tbl.Columns(), ", "))

	fmt.Fprintln(w, "\nMissing values in key columns:")
	for _, c := range tbl.MissingCounts(keyColumns...) {
		fmt.Fprintf(w, "%-14s %d\n", c.Key, c.Count)
	}
}

func saveChart(ctx context.Context, w io.Writer, res *Result, path string, size chart.Size, build func() (*plot.Plot, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := build()
	if errors.Is(err, chart.ErrNoData) {
		fmt.Fprintf(w, "No data: skipped %s\n", filepath.Base(path))
		return nil
	}
	if err != nil {
		return err
	}
	if err := chart.SavePNG(path, p, size); err != nil {
		return err
	}
	res.Files = append(res.Files, path)
	fmt.Fprintf(w, "Saved: %s\n", path)
	return nil
}

// snapshot writes records to the SQLite database at path and reads the
// row count and the leading journal back as a check.
func snapshot(ctx context.Context, path, source string, records []types.CleanedRecord, w io.Writer) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Replace(ctx, source, records, w); err != nil {
		return err
	}

	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if n != len(records) {
		return fmt.Errorf("snapshot %s holds %d rows, want %d", path, n, len(records))
	}
	top, err := s.JournalCounts(ctx, 1)
	if err != nil {
		return err
	}
	if len(top) > 0 {
		fmt.Fprintf(w, "Snapshot check: %d rows, top journal %s (%d)\n", n, top[0].Key, top[0].Count)
	}
	fmt.Fprintf(w, "Saved: %s\n", path)
	return nil
}

func orNaN(v string, ok bool) string {
	if !ok {
		return "NaN"
	}
	return v
}
