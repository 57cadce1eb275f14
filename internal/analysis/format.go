// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/cord19-explorer/internal/strutil"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// maxKeyWidth caps the key column of the text tables.
const maxKeyWidth = 60

// FormatCounts writes counts as a two-column table under a heading.
func FormatCounts(w io.Writer, heading, keyLabel string, counts []types.Count) {
	fmt.Fprintf(w, "\n%s\n", heading)
	if len(counts) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}

	width := strutil.Width(keyLabel)
	for _, c := range counts {
		if n := strutil.Width(strutil.Clip(c.Key, maxKeyWidth)); n > width {
			width = n
		}
	}

	fmt.Fprintf(w, "%-*s  %s\n", width, keyLabel, "Count")
	fmt.Fprintln(w, strings.Repeat("-", width+7))
	for _, c := range counts {
		fmt.Fprintf(w, "%-*s  %d\n", width, strutil.Clip(c.Key, maxKeyWidth), c.Count)
	}
}

// FormatSummary writes all views of s as text tables.
func FormatSummary(w io.Writer, s Summary, opts Options) {
	fmt.Fprintf(w, "Records: %d\n", s.Total)
	FormatCounts(w, "Papers published per year:", "Year", s.Years)
	FormatCounts(w, fmt.Sprintf("Top %d journals:", opts.TopJournals), "Journal", s.Journals)
	FormatCounts(w, fmt.Sprintf("Top %d words in titles:", opts.TopWords), "Word", s.Words)
}

// FormatJSON writes s as indented JSON.
func FormatJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
