// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the cord19-explorer
// packages: input records, cleaned records, aggregates, and configuration.
package types

// Selector bounds and defaults for the dashboard controls.
const (
	DefaultTopJournals = 10
	MinTopJournals     = 5
	MaxTopJournals     = 25

	DefaultTopWords = 15
	MinTopWords     = 5
	MaxTopWords     = 30

	// SampleSize is the number of rows shown in the dashboard table.
	SampleSize = 20
)

// StopWordList names one of the built-in stop-word lists.
type StopWordList string

const (
	// StopWordsDashboard is the list used by the interactive explorer. It
	// extends the batch list with sars, cov, 2, patient and patients.
	StopWordsDashboard StopWordList = "dashboard"

	// StopWordsBatch is the shorter list of the original batch analysis.
	StopWordsBatch StopWordList = "batch"
)

// AnalysisConfig holds settings shared by the batch run and the dashboard.
type AnalysisConfig struct {
	// DataFile is the path of the input metadata CSV (default "metadata.csv").
	DataFile string `json:"data_file" yaml:"data_file" mapstructure:"data_file"`

	// TopJournals is the N of the top journals view (default 10).
	TopJournals int `json:"top_journals" yaml:"top_journals" mapstructure:"top_journals"`

	// TopWords is the N of the top title words view (default 15).
	TopWords int `json:"top_words" yaml:"top_words" mapstructure:"top_words"`

	// StopWords selects the built-in stop-word list (default "dashboard").
	StopWords StopWordList `json:"stop_words" yaml:"stop_words" mapstructure:"stop_words"`

	// ExtraStopWords are added to the selected list.
	ExtraStopWords []string `json:"extra_stop_words,omitempty" yaml:"extra_stop_words,omitempty" mapstructure:"extra_stop_words"`
}

// BatchConfig holds settings for the non-interactive analysis run.
type BatchConfig struct {
	AnalysisConfig `yaml:",inline" mapstructure:",squash"`

	// OutputDir receives the charts, the cleaned CSV and the summary.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// WriteXLSX also writes cleaned_metadata.xlsx.
	WriteXLSX bool `json:"xlsx" yaml:"xlsx" mapstructure:"xlsx"`

	// SQLitePath, when set, receives a snapshot of the cleaned table.
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" mapstructure:"sqlite_path"`
}

// ServerConfig holds settings for the interactive dashboard.
type ServerConfig struct {
	AnalysisConfig `yaml:",inline" mapstructure:",squash"`

	// Addr is the listen address (default ":8501").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// LogLevel is one of debug, info, warn, error (default info).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// LogFormat is text or json (default text).
	LogFormat string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`

	// SQLitePath, when set, serves a snapshot written by the batch run
	// instead of DataFile.
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" mapstructure:"sqlite_path"`
}
