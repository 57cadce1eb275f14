// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cord19-explorer/internal/analysis"
	"github.com/pdiddy/cord19-explorer/internal/batch"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the batch analysis and write charts and a cleaned CSV",
	Long: `Analyze loads and cleans the metadata file, prints a data overview and
the aggregates, and writes papers_per_year.png, top_journals.png,
cleaned_metadata.csv and summary.yaml to the output directory.

With --json the aggregates are printed to stdout as JSON and progress
goes to stderr.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("out", ".", "output directory")
	analyzeCmd.Flags().Bool("xlsx", false, "also write cleaned_metadata.xlsx")
	analyzeCmd.Flags().Bool("json", false, "print the aggregates as JSON")

	bindFlags(analyzeCmd.Flags(), map[string]string{
		"output_dir": "out",
		"xlsx":       "xlsx",
	})

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var cfg types.BatchConfig
	if err := loadConfig(&cfg); err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	var progress io.Writer = os.Stdout
	if asJSON {
		progress = os.Stderr
	}

	res, err := batch.Run(cmd.Context(), cfg, progress)
	if err != nil {
		return userError(err, cfg.DataFile)
	}
	if asJSON {
		return analysis.FormatJSON(os.Stdout, res.Summary)
	}
	return nil
}
