// launchdash serves the SpaceX launch records dashboard and renders its charts offline.
//
// Usage:
//
//	launchdash serve   [--config=<yaml>] [--data=<csv>] [--host=<host>] [--port=<port>]
//	launchdash summary [--data=<csv>] [--markdown]
//	launchdash export  [--data=<csv>] [--site=<site>] [--low=<kg>] [--high=<kg>] --pie=out.png --scatter=out.svg
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "launchdash",
	Short: "SpaceX launch records dashboard",
	Long:  "launchdash loads the launch records CSV and serves an interactive dashboard\nof launch outcomes by site and payload mass.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "configs/default.yaml", "Path to the YAML config file (missing file uses defaults)")
	pf.StringVar(&flagData, "data", "", "Path to the launch records CSV (overrides config)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
