package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/iafilius/LaunchDashboard/src/analysis"
	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/types"
)

var flagMarkdown bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print per-site launch statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ds, err := loadDataset(cfg.DataPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), summaryTable(ds, flagMarkdown))
		return nil
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Render the table as Markdown")
}

func summaryTable(ds *dataset.Dataset, markdown bool) string {
	w := table.NewWriter()
	w.AppendHeader(table.Row{"Launch Site", "Launches", "Successes", "Success %", "Mean Payload (kg)", "Min (kg)", "Max (kg)"})
	for _, s := range analysis.Summarize(ds) {
		row := table.Row{
			s.Site, s.Launches, s.Successes,
			fmt.Sprintf("%.1f", s.SuccessRatePct),
			fmt.Sprintf("%.0f", s.AvgPayloadKg),
			fmt.Sprintf("%.0f", s.MinPayloadKg),
			fmt.Sprintf("%.0f", s.MaxPayloadKg),
		}
		if s.Site == types.AllSites {
			w.AppendFooter(row)
			continue
		}
		w.AppendRow(row)
	}
	cols := make([]table.ColumnConfig, 0, 6)
	for n := 2; n <= 7; n++ {
		cols = append(cols, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	w.SetColumnConfigs(cols)
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	w.SetStyle(style)
	if markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}
