// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// StopWords is a set of tokens excluded from word-frequency counts.
type StopWords map[string]struct{}

// baseStopWords are common English function words and generic research
// terms shared by both built-in lists.
var baseStopWords = []string{
	"the", "and", "of", "in", "a", "to", "on", "for",
	"with", "an", "by", "at", "from", "about", "study",
	"covid", "19", "coronavirus", "analysis", "research",
}

// dashboardExtra are the terms the interactive explorer adds.
var dashboardExtra = []string{"sars", "cov", "2", "patient", "patients"}

// NewStopWords builds a set from words, case-folding each one the way
// Tokenize folds titles.
func NewStopWords(words ...string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		w = fold(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

// BatchStopWords returns the list used by the original batch analysis.
func BatchStopWords() StopWords {
	return NewStopWords(baseStopWords...)
}

// DashboardStopWords returns the list used by the interactive explorer.
func DashboardStopWords() StopWords {
	return NewStopWords(append(append([]string(nil), baseStopWords...), dashboardExtra...)...)
}

// DefaultStopWords is the dashboard list.
func DefaultStopWords() StopWords {
	return DashboardStopWords()
}

// StopWordsFor resolves a named list. An empty name selects the default.
func StopWordsFor(list types.StopWordList) (StopWords, error) {
	switch list {
	case "", types.StopWordsDashboard:
		return DashboardStopWords(), nil
	case types.StopWordsBatch:
		return BatchStopWords(), nil
	default:
		return nil, fmt.Errorf("unknown stop-word list %q: use dashboard or batch", list)
	}
}

// Contains reports whether w is a stop word.
func (s StopWords) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// With returns a copy of s extended with words.
func (s StopWords) With(words ...string) StopWords {
	out := make(StopWords, len(s)+len(words))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range NewStopWords(words...) {
		out[w] = struct{}{}
	}
	return out
}

// Sorted returns the words in lexical order.
func (s StopWords) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// OptionsFrom resolves the analysis settings of cfg. Zero N values fall
// back to the dashboard defaults.
func OptionsFrom(cfg types.AnalysisConfig) (Options, error) {
	stop, err := StopWordsFor(cfg.StopWords)
	if err != nil {
		return Options{}, err
	}
	if len(cfg.ExtraStopWords) > 0 {
		stop = stop.With(cfg.ExtraStopWords...)
	}

	opts := Options{
		TopJournals: cfg.TopJournals,
		TopWords:    cfg.TopWords,
		StopWords:   stop,
	}
	if opts.TopJournals == 0 {
		opts.TopJournals = types.DefaultTopJournals
	}
	if opts.TopWords == 0 {
		opts.TopWords = types.DefaultTopWords
	}
	return opts, nil
}
