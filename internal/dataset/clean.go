// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// Clean derives the cleaned record set from raw records. Steps, in order:
// rows without a title or publish_time are dropped; missing abstracts and
// journals get placeholders; publish_time is parsed and rows that fail to
// parse are dropped; the year is taken from the parsed date.
func Clean(records []types.Record) []types.CleanedRecord {
	cleaned := make([]types.CleanedRecord, 0, len(records))
	for _, r := range records {
		if !r.HasTitle || r.Title == "" || !r.HasPublishTime || r.PublishTime == "" {
			continue
		}

		abstract := r.Abstract
		if !r.HasAbstract || abstract == "" {
			abstract = types.NoAbstract
		}
		journal := r.Journal
		if !r.HasJournal || journal == "" {
			journal = types.UnknownJournal
		}

		date, err := ParseDate(r.PublishTime)
		if err != nil {
			continue
		}

		cleaned = append(cleaned, types.CleanedRecord{
			Title:       r.Title,
			Abstract:    abstract,
			Journal:     journal,
			PublishTime: r.PublishTime,
			PublishDate: date,
			Year:        date.Year(),
		})
	}
	return cleaned
}

// Reclean runs Clean over already cleaned records. It returns the same
// set, which makes it a check that cleaning is idempotent.
func Reclean(records []types.CleanedRecord) []types.CleanedRecord {
	raw := make([]types.Record, len(records))
	for i, r := range records {
		raw[i] = types.NewRecord(r.Title, r.Abstract, r.Journal, r.PublishTime)
	}
	return Clean(raw)
}

// ParseDate parses a publish_time value into a calendar date at UTC
// midnight. It accepts the formats found in the metadata file: full dates,
// year-month, bare years, and timestamps with a time of day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		var ok bool
		if t, ok = parseMonthName(s); !ok {
			return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
		}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// monthNameLayouts are month-name forms that dateparse does not accept.
var monthNameLayouts = []string{
	"January 2006",
	"Jan 2006",
	"2006 January 2",
	"2006 Jan 2",
}

func parseMonthName(s string) (time.Time, bool) {
	for _, layout := range monthNameLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
