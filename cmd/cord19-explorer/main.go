// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cord19-explorer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cord19-explorer CLI.
var rootCmd = &cobra.Command{
	Use:   "cord19-explorer",
	Short: "Explore the CORD-19 research paper metadata",
	Long: `cord19-explorer loads the CORD-19 metadata.csv, cleans it, and reports
publications per year, the most frequent journals, and the most frequent
words in paper titles.

Use analyze for a one-shot run that writes charts and a cleaned CSV, or
serve for the interactive dashboard.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./cord19-explorer.yaml or ~/.config/cord19-explorer/cord19-explorer.yaml)")
	pf.String("data-file", "metadata.csv", "path of the CORD-19 metadata CSV")
	pf.Int("top-journals", types.DefaultTopJournals, "number of journals in the top journals view")
	pf.Int("top-words", types.DefaultTopWords, "number of words in the top title words view")
	pf.String("stop-words", string(types.StopWordsDashboard), "built-in stop-word list: dashboard or batch")
	pf.StringSlice("extra-stop-words", nil, "additional stop words (comma-separated)")
	pf.String("sqlite", "", "SQLite snapshot: analyze writes the cleaned table to it, serve reads from it")

	bindFlags(pf, map[string]string{
		"data_file":        "data-file",
		"top_journals":     "top-journals",
		"top_words":        "top-words",
		"stop_words":       "stop-words",
		"extra_stop_words": "extra-stop-words",
		"sqlite_path":      "sqlite",
	})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cord19-explorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cord19-explorer"))
		}
	}

	viper.SetEnvPrefix("CORD19_EXPLORER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
