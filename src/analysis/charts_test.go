package analysis

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iafilius/LaunchDashboard/src/types"
)

func TestPieAllSitesOneSlicePerSite(t *testing.T) {
	ds := testDataset(t)
	fig := PieBuilder{}.Build(ds, Selection{Site: types.AllSites, Payload: PayloadRange{Low: 0, High: 1}})
	want := Figure{
		Kind:   KindPie,
		Title:  "Total Successful Launches by Site",
		BySite: true,
		Slices: []Slice{
			{Label: "CCAFS", Value: 2},
			{Label: "VAFB", Value: 1},
			{Label: "KSC", Value: 2},
			{Label: "EMPTY", Value: 0},
		},
		Total: 8,
	}
	if diff := cmp.Diff(want, fig); diff != "" {
		t.Fatalf("pie mismatch (-want +got):\n%s", diff)
	}
}

func TestPieSingleSiteOutcomeCounts(t *testing.T) {
	ds := testDataset(t)
	fig := PieBuilder{}.Build(ds, Selection{Site: "CCAFS", Payload: PayloadRange{Low: 9000, High: 9000}})
	want := Figure{
		Kind:   KindPie,
		Title:  "Success vs Failed Launches for CCAFS",
		Slices: []Slice{{Label: "0", Value: 1}, {Label: "1", Value: 2}},
		Total:  3,
	}
	if diff := cmp.Diff(want, fig); diff != "" {
		t.Fatalf("pie mismatch (-want +got):\n%s", diff)
	}
	if len(fig.Slices) > 2 {
		t.Fatalf("site pie must have at most two slices, got %d", len(fig.Slices))
	}
}

func TestPieSingleOutcomeSite(t *testing.T) {
	ds := testDataset(t)
	fig := PieBuilder{}.Build(ds, Selection{Site: "EMPTY"})
	if diff := cmp.Diff([]Slice{{Label: "0", Value: 1}}, fig.Slices); diff != "" {
		t.Fatalf("slices mismatch (-want +got):\n%s", diff)
	}
}

func TestPieUnknownSiteIsEmpty(t *testing.T) {
	ds := testDataset(t)
	fig := PieBuilder{}.Build(ds, Selection{Site: "Boca Chica"})
	if !fig.Empty() || fig.Total != 0 || len(fig.Slices) != 0 {
		t.Fatalf("expected empty pie got %+v", fig)
	}
	if fig.Title != "Success vs Failed Launches for Boca Chica" {
		t.Fatalf("unexpected title %q", fig.Title)
	}
}

func TestScatterAllSites(t *testing.T) {
	ds := testDataset(t)
	fig := ScatterBuilder{}.Build(ds, Selection{Site: types.AllSites, Payload: PayloadRange{Low: 0, High: 10000}})
	if fig.Title != "Correlation between Payload and Success for All Sites" {
		t.Fatalf("unexpected title %q", fig.Title)
	}
	if fig.XLabel != "Payload Mass (kg)" || fig.YLabel != "Launch Outcome" {
		t.Fatalf("unexpected labels %q / %q", fig.XLabel, fig.YLabel)
	}
	if fig.PointCount() != ds.Len() || fig.Total != ds.Len() {
		t.Fatalf("expected %d points got %d (total=%d)", ds.Len(), fig.PointCount(), fig.Total)
	}
	var names []string
	for _, s := range fig.Series {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"v1.0", "FT", "B4"}, names); diff != "" {
		t.Fatalf("series order mismatch (-want +got):\n%s", diff)
	}
	if fig.Range == nil || *fig.Range != (PayloadRange{Low: 0, High: 10000}) {
		t.Fatalf("range not carried: %+v", fig.Range)
	}
}

func TestScatterSiteAndRange(t *testing.T) {
	ds := testDataset(t)
	fig := ScatterBuilder{}.Build(ds, Selection{Site: "CCAFS", Payload: PayloadRange{Low: 400, High: 5000}})
	want := Figure{
		Kind:   KindScatter,
		Title:  "Correlation between Payload and Success for site CCAFS",
		XLabel: LabelPayload,
		YLabel: LabelLaunchOutcome,
		Series: []Series{
			{Name: "FT", Points: []Point{{X: 2500, Y: 1, Site: "CCAFS", Flight: 3}}},
		},
		Range: &PayloadRange{Low: 400, High: 5000},
		Total: 1,
	}
	if diff := cmp.Diff(want, fig); diff != "" {
		t.Fatalf("scatter mismatch (-want +got):\n%s", diff)
	}
}

func TestScatterDegenerateRange(t *testing.T) {
	ds := testDataset(t)
	fig := ScatterBuilder{}.Build(ds, Selection{Site: types.AllSites, Payload: PayloadRange{Low: 9600, High: 9600}})
	if fig.PointCount() != 2 {
		t.Fatalf("expected the two 9600kg launches got %d", fig.PointCount())
	}
	for _, s := range fig.Series {
		for _, p := range s.Points {
			if p.X != 9600 {
				t.Fatalf("point outside degenerate range: %+v", p)
			}
		}
	}
}

func TestBuildersAreDeterministic(t *testing.T) {
	ds := testDataset(t)
	sel := Selection{Site: types.AllSites, Payload: PayloadRange{Low: 0, High: 10000}}
	for _, kind := range []ChartKind{KindPie, KindScatter} {
		b, err := BuilderFor(kind)
		if err != nil {
			t.Fatalf("builder for %s: %v", kind, err)
		}
		if b.Kind() != kind {
			t.Fatalf("builder kind %s want %s", b.Kind(), kind)
		}
		first, second := b.Build(ds, sel), b.Build(ds, sel)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("%s builder not deterministic:\n%s", kind, diff)
		}
	}
	if ds.Len() != 8 {
		t.Fatalf("builders must not change the dataset")
	}
}

func TestBuilderForUnknown(t *testing.T) {
	if _, err := BuilderFor("histogram"); !errors.Is(err, ErrUnknownChart) {
		t.Fatalf("expected ErrUnknownChart got %v", err)
	}
}

func TestFigureJSON(t *testing.T) {
	ds := testDataset(t)
	fig := PieBuilder{}.Build(ds, Selection{Site: "VAFB"})
	b, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["kind"] != "pie" || raw["title"] != "Success vs Failed Launches for VAFB" {
		t.Fatalf("unexpected json %s", b)
	}
	if _, ok := raw["series"]; ok {
		t.Fatalf("pie json should omit series: %s", b)
	}
	if _, ok := raw["by_site"]; ok {
		t.Fatalf("site pie json should omit by_site: %s", b)
	}
}

func TestOutcomeLabel(t *testing.T) {
	if OutcomeLabel("1") != "Success" || OutcomeLabel("0") != "Failed" || OutcomeLabel("x") != "x" {
		t.Fatalf("outcome labels wrong")
	}
}

func TestSummarize(t *testing.T) {
	ds := testDataset(t)
	sums := Summarize(ds)
	if len(sums) != 5 {
		t.Fatalf("expected 4 sites + overall got %d", len(sums))
	}
	ccafs := sums[0]
	if ccafs.Site != "CCAFS" || ccafs.Launches != 3 || ccafs.Successes != 2 {
		t.Fatalf("unexpected CCAFS summary %+v", ccafs)
	}
	if ccafs.MinPayloadKg != 0 || ccafs.MaxPayloadKg != 9600 {
		t.Fatalf("unexpected CCAFS payload bounds %+v", ccafs)
	}
	overall := sums[len(sums)-1]
	if overall.Site != types.AllSites || overall.Launches != ds.Len() || overall.Successes != 5 {
		t.Fatalf("unexpected overall summary %+v", overall)
	}
	if overall.SuccessRatePct != 62.5 {
		t.Fatalf("overall success rate %.2f want 62.5", overall.SuccessRatePct)
	}
}
