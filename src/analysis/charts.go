package analysis

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/types"
)

// ChartKind names one of the dashboard charts.
type ChartKind string

const (
	KindPie     ChartKind = "pie"
	KindScatter ChartKind = "scatter"
)

// ErrUnknownChart is returned by BuilderFor for kinds other than pie and scatter.
var ErrUnknownChart = errors.New("unknown chart kind")

// Chart titles and axis labels.
const (
	TitleAllSitesPie   = "Total Successful Launches by Site"
	titleSitePie       = "Success vs Failed Launches for %s"
	TitleAllSitesXY    = "Correlation between Payload and Success for All Sites"
	titleSiteXY        = "Correlation between Payload and Success for site %s"
	LabelPayload       = "Payload Mass (kg)"
	LabelLaunchOutcome = "Launch Outcome"
)

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Point is one scatter marker. Y is the launch outcome (0 or 1).
type Point struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Site   string  `json:"site"`
	Flight int     `json:"flight_number,omitempty"`
}

// Series groups the scatter points of one booster version category.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Figure is a renderer-independent chart specification.
type Figure struct {
	Kind  ChartKind `json:"kind"`
	Title string    `json:"title"`
	// BySite marks a pie with one slice per site rather than one per outcome.
	BySite bool          `json:"by_site,omitempty"`
	XLabel string        `json:"x_label,omitempty"`
	YLabel string        `json:"y_label,omitempty"`
	Slices []Slice       `json:"slices,omitempty"`
	Series []Series      `json:"series,omitempty"`
	Range  *PayloadRange `json:"range,omitempty"`
	// Total is the number of records the figure was built from.
	Total int `json:"total"`
}

// Empty reports whether there is nothing to draw: no points, or no slice with a positive value.
func (f Figure) Empty() bool {
	switch f.Kind {
	case KindPie:
		for _, s := range f.Slices {
			if s.Value > 0 {
				return false
			}
		}
		return true
	default:
		for _, s := range f.Series {
			if len(s.Points) > 0 {
				return false
			}
		}
		return true
	}
}

// PointCount returns the number of scatter points across all series.
func (f Figure) PointCount() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}
	return n
}

// Builder turns the dataset and the current selection into a chart specification.
// Implementations are pure: equal inputs produce equal figures.
type Builder interface {
	Kind() ChartKind
	Build(ds *dataset.Dataset, sel Selection) Figure
}

// BuilderFor returns the builder for kind.
func BuilderFor(kind ChartKind) (Builder, error) {
	switch kind {
	case KindPie:
		return PieBuilder{}, nil
	case KindScatter:
		return ScatterBuilder{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChart, kind)
}

// PieBuilder builds the outcome pie.
type PieBuilder struct{}

func (PieBuilder) Kind() ChartKind { return KindPie }

// Build ignores sel.Payload. For AllSites there is one slice per dataset site holding its
// success count; for a single site there is one slice per outcome value holding its row count.
func (PieBuilder) Build(ds *dataset.Dataset, sel Selection) Figure {
	rows := PieRows(ds, sel.Site)
	fig := Figure{Kind: KindPie, Total: len(rows)}
	if sel.IsAll() {
		fig.Title = TitleAllSitesPie
		fig.BySite = true
		successes := map[string]float64{}
		for _, r := range rows {
			if r.Succeeded() {
				successes[r.Site]++
			}
		}
		for _, site := range ds.Sites() {
			fig.Slices = append(fig.Slices, Slice{Label: site, Value: successes[site]})
		}
		return fig
	}

	fig.Title = fmt.Sprintf(titleSitePie, sel.Site)
	var counts [2]int
	for _, r := range rows {
		if r.Succeeded() {
			counts[types.OutcomeSuccess]++
		} else {
			counts[types.OutcomeFailure]++
		}
	}
	for outcome, n := range counts {
		if n == 0 {
			continue
		}
		fig.Slices = append(fig.Slices, Slice{Label: strconv.Itoa(outcome), Value: float64(n)})
	}
	return fig
}

// ScatterBuilder builds the payload versus outcome scatter.
type ScatterBuilder struct{}

func (ScatterBuilder) Kind() ChartKind { return KindScatter }

// Build plots the rows inside sel.Payload (and sel.Site), one series per booster
// version category in order of first appearance.
func (ScatterBuilder) Build(ds *dataset.Dataset, sel Selection) Figure {
	rows := ScatterRows(ds, sel.Site, sel.Payload)
	rng := sel.Payload
	fig := Figure{
		Kind:   KindScatter,
		Title:  TitleAllSitesXY,
		XLabel: LabelPayload,
		YLabel: LabelLaunchOutcome,
		Range:  &rng,
		Total:  len(rows),
	}
	if !sel.IsAll() {
		fig.Title = fmt.Sprintf(titleSiteXY, sel.Site)
	}
	index := map[string]int{}
	for _, r := range rows {
		i, ok := index[r.BoosterVersionCategory]
		if !ok {
			i = len(fig.Series)
			index[r.BoosterVersionCategory] = i
			fig.Series = append(fig.Series, Series{Name: r.BoosterVersionCategory})
		}
		fig.Series[i].Points = append(fig.Series[i].Points, Point{
			X:      r.PayloadMassKg,
			Y:      float64(r.Outcome),
			Site:   r.Site,
			Flight: r.FlightNumber,
		})
	}
	return fig
}

// OutcomeLabel maps the pie's outcome slice labels to words for legends.
func OutcomeLabel(label string) string {
	switch label {
	case strconv.Itoa(types.OutcomeSuccess):
		return "Success"
	case strconv.Itoa(types.OutcomeFailure):
		return "Failed"
	}
	return label
}
