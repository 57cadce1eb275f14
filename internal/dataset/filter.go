// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import "github.com/pdiddy/cord19-explorer/pkg/types"

// Filter returns the records whose year lies in r, bounds included, in
// their original order. An empty range yields no records.
func Filter(records []types.CleanedRecord, r types.YearRange) []types.CleanedRecord {
	out := make([]types.CleanedRecord, 0, len(records))
	if r.Empty() {
		return out
	}
	for _, rec := range records {
		if r.Contains(rec.Year) {
			out = append(out, rec)
		}
	}
	return out
}

// Bounds returns the smallest and largest year in records. The boolean is
// false when records is empty.
func Bounds(records []types.CleanedRecord) (types.YearRange, bool) {
	if len(records) == 0 {
		return types.YearRange{}, false
	}
	r := types.YearRange{Min: records[0].Year, Max: records[0].Year}
	for _, rec := range records[1:] {
		if rec.Year < r.Min {
			r.Min = rec.Year
		}
		if rec.Year > r.Max {
			r.Max = rec.Year
		}
	}
	return r, true
}
