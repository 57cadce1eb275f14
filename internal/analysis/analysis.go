// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis computes the aggregate views of a cleaned record set:
// publications per year, top journals, and top words in titles.
package analysis

import (
	"regexp"
	"sort"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// minWordLen is the shortest token counted by TopWords.
const minWordLen = 3

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Options selects the sizes of the top-N views and the stop words.
type Options struct {
	TopJournals int
	TopWords    int
	StopWords   StopWords
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{
		TopJournals: types.DefaultTopJournals,
		TopWords:    types.DefaultTopWords,
		StopWords:   DefaultStopWords(),
	}
}

// Summary bundles the three views of one record set.
type Summary struct {
	Total    int           `json:"total" yaml:"total"`
	Years    []types.Count `json:"years" yaml:"years"`
	Journals []types.Count `json:"journals" yaml:"journals"`
	Words    []types.Count `json:"words" yaml:"words"`
}

// Summarize computes all views of records.
func Summarize(records []types.CleanedRecord, opts Options) Summary {
	return Summary{
		Total:    len(records),
		Years:    YearHistogram(records),
		Journals: TopJournals(records, opts.TopJournals),
		Words:    TopWords(records, opts.TopWords, opts.StopWords),
	}
}

// YearHistogram counts records per year, ordered by year ascending.
func YearHistogram(records []types.CleanedRecord) []types.Count {
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.Year]++
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]types.Count, len(years))
	for i, y := range years {
		out[i] = types.Count{Key: strconv.Itoa(y), Count: counts[y]}
	}
	return out
}

// TopJournals returns the n journals with the most records.
func TopJournals(records []types.CleanedRecord, n int) []types.Count {
	var c counter
	for _, r := range records {
		c.add(r.Journal)
	}
	return c.top(n)
}

// TopWords returns the n most frequent title words. Titles are case-folded
// and split into alphanumeric runs; stop words and tokens shorter than
// three characters are skipped. A nil stop set skips nothing.
func TopWords(records []types.CleanedRecord, n int, stop StopWords) []types.Count {
	var c counter
	for _, r := range records {
		for _, tok := range Tokenize(r.Title) {
			if utf8.RuneCountInString(tok) < minWordLen || stop.Contains(tok) {
				continue
			}
			c.add(tok)
		}
	}
	return c.top(n)
}

// Tokenize case-folds text and returns its alphanumeric runs.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(fold(text), -1)
}

// fold is the normalization shared by title tokens and stop words.
func fold(s string) string {
	return cases.Fold().String(s)
}

// counter counts keys and remembers the order they first appeared in.
type counter struct {
	order  []string
	counts map[string]int
}

func (c *counter) add(key string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top returns the n highest counts, descending; ties keep first-seen order.
func (c *counter) top(n int) []types.Count {
	if n <= 0 {
		return []types.Count{}
	}
	out := make([]types.Count, len(c.order))
	for i, k := range c.order {
		out[i] = types.Count{Key: k, Count: c.counts[k]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
