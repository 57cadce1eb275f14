// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord19-explorer/internal/analysis"
	"github.com/pdiddy/cord19-explorer/internal/batch"
	"github.com/pdiddy/cord19-explorer/internal/export"
)

var reportCmd = &cobra.Command{
	Use:   "report [summary.yaml]",
	Short: "Print the aggregates saved by the last analyze run",
	Long: `Report reads the summary.yaml written by analyze and prints its
aggregates without reloading the metadata file. With no argument it reads
summary.yaml from the configured output directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	path := filepath.Join(viper.GetString("output_dir"), batch.SummaryYAML)
	if len(args) == 1 {
		path = args[0]
	}
	return printReport(os.Stdout, path)
}

func printReport(w io.Writer, path string) error {
	sf, err := export.LoadSummaryYAML(path)
	if err != nil {
		return fmt.Errorf("%w (run analyze first)", err)
	}

	fmt.Fprintf(w, "Input: %s (%d rows, %d after cleaning)\n", sf.Input, sf.RawRows, sf.Cleaned)
	fmt.Fprintf(w, "Generated: %s\n", sf.Generated.Format("2006-01-02 15:04:05 MST"))
	if sf.Range != nil {
		fmt.Fprintf(w, "Years: %d-%d\n", sf.Range.Min, sf.Range.Max)
	}
	analysis.FormatSummary(w, sf.Summary, sf.Options())
	return nil
}
