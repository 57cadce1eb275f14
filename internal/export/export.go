// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes cleaned records and aggregate summaries to CSV,
// XLSX, and YAML.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// Layout is an ordered set of exported columns.
type Layout []string

// SampleColumns is the layout of the dashboard table and its download.
var SampleColumns = Layout{types.ColPublishDate, types.ColTitle, types.ColJournal, types.ColAbstract}

// CleanedColumns is the layout of the batch cleaned_metadata.csv.
var CleanedColumns = Layout{
	types.ColTitle, types.ColAbstract, types.ColJournal,
	types.ColPublishTime, types.ColPublishDate, types.ColYear,
}

// Row returns the values of r in layout order.
func (l Layout) Row(r types.CleanedRecord) []string {
	row := make([]string, len(l))
	for i, col := range l {
		row[i] = field(r, col)
	}
	return row
}

func field(r types.CleanedRecord, col string) string {
	switch col {
	case types.ColTitle:
		return r.Title
	case types.ColAbstract:
		return r.Abstract
	case types.ColJournal:
		return r.Journal
	case types.ColPublishTime:
		return r.PublishTime
	case types.ColPublishDate:
		return r.PublishDate.Format(types.DateLayout)
	case types.ColYear:
		return strconv.Itoa(r.Year)
	default:
		return ""
	}
}

// FileName returns the download name for a filtered export.
func FileName(r types.YearRange, ext string) string {
	return fmt.Sprintf("cleaned_metadata_%d_%d.%s", r.Min, r.Max, ext)
}

// WriteCSV writes a header row and one row per record. The header is
// written even when records is empty.
func WriteCSV(w io.Writer, layout Layout, records []types.CleanedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(layout); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(layout.Row(r)); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records to path.
func SaveCSV(path string, layout Layout, records []types.CleanedRecord) error {
	return saveWith(path, func(w io.Writer) error {
		return WriteCSV(w, layout, records)
	})
}

// saveWith creates path and fills it with write.
func saveWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
