package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iafilius/LaunchDashboard/src/config"
	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/logging"
	"github.com/iafilius/LaunchDashboard/src/types"
)

var (
	flagConfig   string
	flagData     string
	flagLogLevel string
)

// loadConfig reads the config file and applies the persistent flag overrides,
// then sets up logging from the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("data") {
		cfg.DataPath = flagData
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if err := logging.Setup(os.Stderr, cfg.LogFormat); err != nil {
		return config.Config{}, err
	}
	logging.SetLogLevel(cfg.LogLevel)
	return cfg, nil
}

func loadDataset(path string) (*dataset.Dataset, error) {
	defer logging.TimeTrack(time.Now(), "load dataset")
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	lo, hi := ds.PayloadBounds()
	logging.Infof("loaded %d launches from %s (%d sites, payload %g..%g kg)", ds.Len(), ds.Source(), len(ds.Sites()), lo, hi)
	return ds, nil
}

// knownSite reports whether site selects anything in ds.
func knownSite(ds *dataset.Dataset, site string) bool {
	return site == types.AllSites || ds.HasSite(site)
}
