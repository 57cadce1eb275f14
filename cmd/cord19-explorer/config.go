// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord19-explorer/internal/dataset"
)

// bindFlags binds each config key to its flag so that a flag set on the
// command line overrides the config file and the environment.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// loadConfig decodes the resolved settings into cfg.
func loadConfig(cfg any) error {
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// userError rewrites errors the user can fix into a short message.
func userError(err error, dataFile string) error {
	if errors.Is(err, dataset.ErrMissingInputFile) {
		return fmt.Errorf("'%s' not found. Download metadata.csv from the CORD-19 dataset and pass its path with --data-file", filepath.Base(dataFile))
	}
	return err
}
