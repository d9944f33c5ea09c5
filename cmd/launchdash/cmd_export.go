package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iafilius/LaunchDashboard/src/analysis"
	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/logging"
	"github.com/iafilius/LaunchDashboard/src/render"
	"github.com/iafilius/LaunchDashboard/src/types"
)

var exportFlags struct {
	site       string
	low        float64
	high       float64
	pie        string
	scatter    string
	width      int
	noFootnote bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the pie and scatter charts to files",
	Long: `Renders the dashboard charts for one selection to image files. The format is
taken from each file extension (png, svg; pdf for the scatter only).`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.site, "site", types.AllSites, "Launch site, or ALL")
	f.Float64Var(&exportFlags.low, "low", 0, "Lower payload bound in kg (default: dataset minimum)")
	f.Float64Var(&exportFlags.high, "high", 0, "Upper payload bound in kg (default: dataset maximum)")
	f.StringVar(&exportFlags.pie, "pie", "", "Output path for the outcome pie chart")
	f.StringVar(&exportFlags.scatter, "scatter", "", "Output path for the payload scatter chart")
	f.IntVar(&exportFlags.width, "width", 0, "Image width in pixels (default: config)")
	f.BoolVar(&exportFlags.noFootnote, "no-footnote", false, "Do not stamp the record count onto PNG charts")
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportFlags.pie == "" && exportFlags.scatter == "" {
		return errors.New("nothing to export: set --pie and/or --scatter")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cfg.DataPath)
	if err != nil {
		return err
	}
	if !knownSite(ds, exportFlags.site) {
		logging.Warnf("site %q is not in %s; charts will be empty", exportFlags.site, ds.Source())
	}
	sel := analysis.Selection{Site: exportFlags.site, Payload: analysis.FullRange(ds)}
	if cmd.Flags().Changed("low") {
		sel.Payload.Low = exportFlags.low
	}
	if cmd.Flags().Changed("high") {
		sel.Payload.High = exportFlags.high
	}
	if err := sel.Payload.Validate(); err != nil {
		return err
	}
	opts := render.Options{Width: cfg.ChartWidth, NoFootnote: exportFlags.noFootnote}
	if exportFlags.width > 0 {
		opts.Width = exportFlags.width
	}
	jobs := map[analysis.ChartKind]string{}
	if exportFlags.pie != "" {
		jobs[analysis.KindPie] = exportFlags.pie
	}
	if exportFlags.scatter != "" {
		jobs[analysis.KindScatter] = exportFlags.scatter
	}
	return exportCharts(cmd.Context(), ds, sel, jobs, opts)
}

// exportCharts renders each requested chart kind to its path concurrently. The format of
// opts is replaced by the one implied by each path.
func exportCharts(ctx context.Context, ds *dataset.Dataset, sel analysis.Selection, jobs map[analysis.ChartKind]string, opts render.Options) error {
	g, ctx := errgroup.WithContext(ctx)
	for kind, path := range jobs {
		kind, path := kind, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o := opts
			var err error
			if o.Format, err = render.FormatFromPath(path); err != nil {
				return err
			}
			b, err := analysis.BuilderFor(kind)
			if err != nil {
				return err
			}
			img, err := render.Render(b.Build(ds, sel), o)
			if err != nil {
				return fmt.Errorf("render %s: %w", kind, err)
			}
			if err := os.WriteFile(path, img, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logging.Infof("wrote %s chart to %s (%d bytes)", kind, path, len(img))
			return nil
		})
	}
	return g.Wait()
}
