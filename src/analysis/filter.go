package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/types"
)

// ErrInvalidRange is returned for payload ranges that are negative, NaN or inverted.
var ErrInvalidRange = errors.New("invalid payload range")

// PayloadRange is an inclusive [Low, High] payload mass window in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether mass lies within the range, both ends inclusive.
func (p PayloadRange) Contains(mass float64) bool {
	return mass >= p.Low && mass <= p.High
}

// Validate checks Low <= High and that both ends are finite and non-negative.
func (p PayloadRange) Validate() error {
	switch {
	case math.IsNaN(p.Low) || math.IsNaN(p.High) || math.IsInf(p.Low, 0) || math.IsInf(p.High, 0):
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidRange)
	case p.Low < 0 || p.High < 0:
		return fmt.Errorf("%w: bounds must be non-negative (got [%g, %g])", ErrInvalidRange, p.Low, p.High)
	case p.Low > p.High:
		return fmt.Errorf("%w: low %g exceeds high %g", ErrInvalidRange, p.Low, p.High)
	}
	return nil
}

// FullRange returns the dataset's own payload bounds as a range.
func FullRange(ds *dataset.Dataset) PayloadRange {
	lo, hi := ds.PayloadBounds()
	return PayloadRange{Low: lo, High: hi}
}

// Selection is the current widget state: the site dropdown and the payload slider.
type Selection struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// IsAll reports whether the selection spans every site.
func (s Selection) IsAll() bool { return s.Site == types.AllSites }

// FilterBySite keeps the records launched from site. AllSites keeps everything,
// an unknown site keeps nothing. Order is preserved.
func FilterBySite(records []types.LaunchRecord, site string) []types.LaunchRecord {
	out := make([]types.LaunchRecord, 0, len(records))
	for _, r := range records {
		if site == types.AllSites || r.Site == site {
			out = append(out, r)
		}
	}
	return out
}

// FilterByPayload keeps the records whose payload mass lies in rng.
func FilterByPayload(records []types.LaunchRecord, rng PayloadRange) []types.LaunchRecord {
	out := make([]types.LaunchRecord, 0, len(records))
	for _, r := range records {
		if rng.Contains(r.PayloadMassKg) {
			out = append(out, r)
		}
	}
	return out
}

// PieRows selects the rows behind the outcome pie. The payload range is not applied here:
// the pie always reflects every launch of the selected site.
func PieRows(ds *dataset.Dataset, site string) []types.LaunchRecord {
	return FilterBySite(ds.Records(), site)
}

// ScatterRows selects the rows behind the payload scatter: payload window first, then site.
func ScatterRows(ds *dataset.Dataset, site string, rng PayloadRange) []types.LaunchRecord {
	return FilterBySite(FilterByPayload(ds.Records(), rng), site)
}
