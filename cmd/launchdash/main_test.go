package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/LaunchDashboard/src/analysis"
	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/render"
	"github.com/iafilius/LaunchDashboard/src/types"
)

func bundled(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(filepath.Join("..", "..", "data", "spacex_launch_dash.csv"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return ds
}

func TestSummaryTable(t *testing.T) {
	out := summaryTable(bundled(t), false)
	for _, want := range []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40", "ALL", "Success %"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	md := summaryTable(bundled(t), true)
	if !strings.HasPrefix(md, "| Launch Site") {
		t.Fatalf("markdown table expected:\n%s", md)
	}
}

func TestExportCharts(t *testing.T) {
	ds := bundled(t)
	dir := t.TempDir()
	pie := filepath.Join(dir, "pie.png")
	scatter := filepath.Join(dir, "scatter.svg")
	sel := analysis.Selection{Site: types.AllSites, Payload: analysis.FullRange(ds)}
	jobs := map[analysis.ChartKind]string{analysis.KindPie: pie, analysis.KindScatter: scatter}
	if err := exportCharts(context.Background(), ds, sel, jobs, render.Options{Width: 900}); err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(pie)
	if err != nil || !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("pie file: %v", err)
	}
	b, err = os.ReadFile(scatter)
	if err != nil || !bytes.Contains(b, []byte("<svg")) {
		t.Fatalf("scatter file: %v", err)
	}
}

func TestExportRejectsUnknownExtension(t *testing.T) {
	ds := bundled(t)
	sel := analysis.Selection{Site: types.AllSites, Payload: analysis.FullRange(ds)}
	jobs := map[analysis.ChartKind]string{analysis.KindPie: filepath.Join(t.TempDir(), "pie.gif")}
	if err := exportCharts(context.Background(), ds, sel, jobs, render.Options{}); err == nil {
		t.Fatalf("expected error for .gif")
	}
}

func TestExportNoFootnote(t *testing.T) {
	ds := bundled(t)
	dir := t.TempDir()
	sel := analysis.Selection{Site: "KSC LC-39A", Payload: analysis.FullRange(ds)}
	stamped := filepath.Join(dir, "stamped.png")
	plain := filepath.Join(dir, "plain.png")
	if err := exportCharts(context.Background(), ds, sel, map[analysis.ChartKind]string{analysis.KindScatter: stamped}, render.Options{Width: 900}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := exportCharts(context.Background(), ds, sel, map[analysis.ChartKind]string{analysis.KindScatter: plain}, render.Options{Width: 900, NoFootnote: true}); err != nil {
		t.Fatalf("export: %v", err)
	}
	a, err := os.ReadFile(stamped)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	b, err := os.ReadFile(plain)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("--no-footnote output should differ from the stamped chart")
	}
	if f := exportCmd.Flags().Lookup("no-footnote"); f == nil || f.DefValue != "false" {
		t.Fatalf("export is missing the no-footnote flag")
	}
}

func TestKnownSite(t *testing.T) {
	ds := bundled(t)
	for site, want := range map[string]bool{types.AllSites: true, "KSC LC-39A": true, "KSC": false, "": false} {
		if got := knownSite(ds, site); got != want {
			t.Fatalf("knownSite(%q) = %v want %v", site, got, want)
		}
	}
}

func TestRootHasSubcommands(t *testing.T) {
	for _, name := range []string{"serve", "summary", "export"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("missing subcommand %s: %v", name, err)
		}
	}
}
