package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iafilius/LaunchDashboard/src/web"
)

var (
	flagHost string
	flagPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Loads the launch records once and serves the dashboard page, the JSON API,
rendered chart images and Prometheus metrics until interrupted.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&flagHost, "host", "", "Listen host (overrides config)")
	f.IntVar(&flagPort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = flagHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ds, err := loadDataset(cfg.DataPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return web.NewServer(cfg, ds).Run(ctx)
}
