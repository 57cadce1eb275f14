// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cord19-explorer/internal/analysis"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// SummaryFile is the on-disk record of one batch analysis run.
type SummaryFile struct {
	Input     string           `yaml:"input"`
	Generated time.Time        `yaml:"generated"`
	RawRows   int              `yaml:"raw_rows"`
	Cleaned   int              `yaml:"cleaned_rows"`
	Range     *types.YearRange `yaml:"year_range,omitempty"`
	StopWords []string         `yaml:"stop_words"`

	TopJournals int              `yaml:"top_journals"`
	TopWords    int              `yaml:"top_words"`
	Summary     analysis.Summary `yaml:"summary"`
}

// Options returns the analysis sizes the summary was computed with.
func (sf *SummaryFile) Options() analysis.Options {
	return analysis.Options{TopJournals: sf.TopJournals, TopWords: sf.TopWords}
}

// WriteSummaryYAML encodes sf as YAML.
func WriteSummaryYAML(w io.Writer, sf SummaryFile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&sf); err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return enc.Close()
}

// SaveSummaryYAML writes sf to path.
func SaveSummaryYAML(path string, sf SummaryFile) error {
	return saveWith(path, func(w io.Writer) error {
		return WriteSummaryYAML(w, sf)
	})
}

// ReadSummaryYAML decodes a summary written by WriteSummaryYAML.
func ReadSummaryYAML(r io.Reader) (*SummaryFile, error) {
	var sf SummaryFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	return &sf, nil
}

// LoadSummaryYAML reads the summary file at path.
func LoadSummaryYAML(path string) (*SummaryFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening summary: %w", err)
	}
	defer f.Close()
	return ReadSummaryYAML(f)
}
