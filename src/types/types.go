// Package types holds the record shapes shared by the loader, the analysis
// package and the HTTP surface.
package types

// AllSites is the synthetic selector value meaning "no site restriction".
const AllSites = "ALL"

// Outcome values as stored in the class column.
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// LaunchRecord is one row of the launch dataset.
type LaunchRecord struct {
	FlightNumber           int     `json:"flight_number,omitempty"`
	Site                   string  `json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	Outcome                int     `json:"class"`
	BoosterVersion         string  `json:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// Succeeded reports whether the launch outcome is a success.
func (r LaunchRecord) Succeeded() bool { return r.Outcome == OutcomeSuccess }

// SiteOption is one entry of the launch site dropdown.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
