// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"net/url"
	"strconv"

	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// Selection is the state of the dashboard controls for one request.
type Selection struct {
	Range       types.YearRange
	TopJournals int
	TopWords    int
}

// Query encodes s as URL query parameters understood by parseSelection.
func (s Selection) Query() url.Values {
	q := url.Values{}
	q.Set("min", strconv.Itoa(s.Range.Min))
	q.Set("max", strconv.Itoa(s.Range.Max))
	q.Set("journals", strconv.Itoa(s.TopJournals))
	q.Set("words", strconv.Itoa(s.TopWords))
	return q
}

// parseSelection reads the controls from q. Values outside their bounds
// are clamped; missing or malformed values take their defaults. The year
// defaults are the data bounds; an inverted range is kept as-is so that it
// yields an empty view.
func parseSelection(q url.Values, bounds types.YearRange, defaults Selection) Selection {
	return Selection{
		Range: types.YearRange{
			Min: intParam(q, "min", bounds.Min, bounds.Min, bounds.Max),
			Max: intParam(q, "max", bounds.Max, bounds.Min, bounds.Max),
		},
		TopJournals: intParam(q, "journals", defaults.TopJournals, types.MinTopJournals, types.MaxTopJournals),
		TopWords:    intParam(q, "words", defaults.TopWords, types.MinTopWords, types.MaxTopWords),
	}
}

func intParam(q url.Values, key string, def, lo, hi int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		v = def
	}
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
