package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iafilius/LaunchDashboard/src/analysis"
	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/types"
)

func main() {
	var file string
	var site string
	flag.StringVar(&file, "file", dataset.DefaultPath, "Path to the launch records CSV")
	flag.StringVar(&site, "site", types.AllSites, "Optional launch site filter (exact match)")
	flag.Parse()
	ds, err := dataset.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if site != types.AllSites && !ds.HasSite(site) {
		fmt.Fprintf(os.Stderr, "warning: site %q not found; known sites: %v\n", site, ds.Sites())
	}
	rows := analysis.FilterBySite(ds.Records(), site)
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Site]++
	}
	fmt.Printf("Total records: %d\n", len(rows))
	for _, s := range ds.Sites() {
		if n, ok := counts[s]; ok {
			fmt.Printf("%s: %d\n", s, n)
		}
	}
}
