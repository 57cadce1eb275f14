// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the paper metadata CSV, cleans it into
// CleanedRecords, and narrows cleaned records to a year range.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// ErrMissingInputFile is returned by Load when the input path does not exist.
var ErrMissingInputFile = errors.New("input file not found")

// nanValues are the cell values treated as missing.
var nanValues = []string{"", "NA", "NaN", "<nil>"}

// Table is the raw metadata table as read from disk. Every column is kept
// as text; missing cells are NaN elements.
type Table struct {
	df      dataframe.DataFrame
	columns []string
	rows    int
}

// Load reads the metadata CSV at path. It returns an error wrapping
// ErrMissingInputFile when the file does not exist.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInputFile, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV data with a header row into a Table. Short rows are
// padded with missing cells; rows longer than the header are an error.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	header = uniqueNames(header)
	records[0] = header
	for i := 1; i < len(records); i++ {
		switch {
		case len(records[i]) > len(header):
			return nil, fmt.Errorf("line %d: %d fields, header has %d", i+1, len(records[i]), len(header))
		case len(records[i]) < len(header):
			padded := make([]string, len(header))
			copy(padded, records[i])
			records[i] = padded
		}
	}

	t := &Table{
		columns: append([]string(nil), header...),
		rows:    len(records) - 1,
	}
	if t.rows == 0 {
		return t, nil
	}

	t.df = dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nanValues),
	)
	if t.df.Err != nil {
		return nil, fmt.Errorf("building table: %w", t.df.Err)
	}
	t.columns = t.df.Names()
	return t, nil
}

// uniqueNames keeps the first occurrence of a repeated column name and
// renames later ones name.1, name.2, skipping names the header already uses.
func uniqueNames(header []string) []string {
	inHeader := make(map[string]bool, len(header))
	for _, h := range header {
		inHeader[h] = true
	}
	taken := make(map[string]bool, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		name := h
		for n := 1; taken[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
			if inHeader[name] {
				name = h
			}
		}
		taken[name] = true
		out[i] = name
	}
	return out
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return t.rows
}

// Columns returns the header names in file order. Repeated names carry
// the suffixes given by Read.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the file carried the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// column returns the values and presence flags of a column. A column the
// file does not carry is missing on every row.
func (t *Table) column(name string) ([]string, []bool) {
	values := make([]string, t.rows)
	present := make([]bool, t.rows)
	if t.rows == 0 || !t.HasColumn(name) {
		return values, present
	}
	s := t.df.Col(name)
	if s.Err != nil {
		return values, present
	}
	for i := 0; i < t.rows; i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		values[i] = el.String()
		present[i] = true
	}
	return values, present
}

// Records converts the table into Records, one per data row.
func (t *Table) Records() []types.Record {
	titles, hasTitle := t.column(types.ColTitle)
	abstracts, hasAbstract := t.column(types.ColAbstract)
	journals, hasJournal := t.column(types.ColJournal)
	times, hasTime := t.column(types.ColPublishTime)

	out := make([]types.Record, t.rows)
	for i := range out {
		out[i] = types.Record{
			Title:          titles[i],
			Abstract:       abstracts[i],
			Journal:        journals[i],
			PublishTime:    times[i],
			HasTitle:       hasTitle[i],
			HasAbstract:    hasAbstract[i],
			HasJournal:     hasJournal[i],
			HasPublishTime: hasTime[i],
		}
	}
	return out
}

// MissingCounts returns, for each named column, the number of rows where
// the value is missing.
func (t *Table) MissingCounts(cols ...string) []types.Count {
	out := make([]types.Count, len(cols))
	for i, name := range cols {
		_, present := t.column(name)
		missing := 0
		for _, ok := range present {
			if !ok {
				missing++
			}
		}
		out[i] = types.Count{Key: name, Count: missing}
	}
	return out
}
