package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/types"
)

// SiteSummary captures aggregate launch metrics for one site.
type SiteSummary struct {
	Site           string  `json:"launch_site"`
	Launches       int     `json:"launches"`
	Successes      int     `json:"successes"`
	SuccessRatePct float64 `json:"success_rate_pct"`
	AvgPayloadKg   float64 `json:"avg_payload_kg"`
	MinPayloadKg   float64 `json:"min_payload_kg"`
	MaxPayloadKg   float64 `json:"max_payload_kg"`
}

// Summarize returns one summary per site in dataset order, followed by an overall
// row labelled AllSites.
func Summarize(ds *dataset.Dataset) []SiteSummary {
	bySite := map[string][]types.LaunchRecord{}
	ds.Each(func(r types.LaunchRecord) {
		bySite[r.Site] = append(bySite[r.Site], r)
	})
	out := make([]SiteSummary, 0, len(bySite)+1)
	for _, site := range ds.Sites() {
		out = append(out, summarize(site, bySite[site]))
	}
	return append(out, summarize(types.AllSites, ds.Records()))
}

func summarize(site string, rows []types.LaunchRecord) SiteSummary {
	s := SiteSummary{Site: site, Launches: len(rows)}
	if len(rows) == 0 {
		return s
	}
	payloads := make([]float64, len(rows))
	for i, r := range rows {
		payloads[i] = r.PayloadMassKg
		if r.Succeeded() {
			s.Successes++
		}
	}
	s.SuccessRatePct = float64(s.Successes) / float64(s.Launches) * 100
	s.AvgPayloadKg = stat.Mean(payloads, nil)
	s.MinPayloadKg = floats.Min(payloads)
	s.MaxPayloadKg = floats.Max(payloads)
	return s
}
