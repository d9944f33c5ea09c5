package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iafilius/LaunchDashboard/src/types"
)

const sampleCSV = `,Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
0,1,CCAFS LC-40,0,0,F9 v1.0  B0003,v1.0
1,2,VAFB SLC-4E,1,9600,F9 FT B1029.1,FT
2,3,CCAFS LC-40,1,2034.5,F9 FT B1019,FT
3,4,KSC LC-39A,1,5300,F9 FT B1021.2,FT
`

// writeCSV writes content to a temp file and returns its path.
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launches.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 4 {
		t.Fatalf("expected 4 records got %d", ds.Len())
	}
	if ds.Source() != path {
		t.Fatalf("source = %q want %q", ds.Source(), path)
	}
	want := types.LaunchRecord{FlightNumber: 3, Site: "CCAFS LC-40", PayloadMassKg: 2034.5, Outcome: 1, BoosterVersion: "F9 FT B1019", BoosterVersionCategory: "FT"}
	if diff := cmp.Diff(want, ds.Records()[2]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}, ds.Sites()); diff != "" {
		t.Fatalf("sites mismatch (-want +got):\n%s", diff)
	}
}

func TestPayloadBoundsMatchTrueMinMax(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	lo, hi := ds.PayloadBounds()
	if lo != 0 || hi != 9600 {
		t.Fatalf("bounds = [%v,%v] want [0,9600]", lo, hi)
	}
	// recompute independently
	wantLo, wantHi := ds.Records()[0].PayloadMassKg, ds.Records()[0].PayloadMassKg
	for _, r := range ds.Records() {
		if r.PayloadMassKg < wantLo {
			wantLo = r.PayloadMassKg
		}
		if r.PayloadMassKg > wantHi {
			wantHi = r.PayloadMassKg
		}
	}
	if lo != wantLo || hi != wantHi {
		t.Fatalf("bounds [%v,%v] differ from scan [%v,%v]", lo, hi, wantLo, wantHi)
	}
}

func TestRepositoryDataFile(t *testing.T) {
	ds, err := Load(filepath.Join("..", "..", "data", DefaultPath))
	if err != nil {
		t.Fatalf("load bundled dataset: %v", err)
	}
	if ds.Len() != 56 {
		t.Fatalf("expected 56 launches got %d", ds.Len())
	}
	if len(ds.Sites()) != 4 {
		t.Fatalf("expected 4 sites got %v", ds.Sites())
	}
	lo, hi := ds.PayloadBounds()
	if lo != 0 || hi != 9600 {
		t.Fatalf("bounds = [%v,%v]", lo, hi)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	recs := ds.Records()
	recs[0].Site = "mutated"
	sites := ds.Sites()
	sites[0] = "mutated"
	if ds.Records()[0].Site != "CCAFS LC-40" || ds.Sites()[0] != "CCAFS LC-40" {
		t.Fatalf("dataset was mutated through an accessor")
	}
}

func TestMissingColumn(t *testing.T) {
	csv := "Launch Site,class,Booster Version Category\nCCAFS LC-40,1,FT\n"
	_, err := Parse(strings.NewReader(csv))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn got %v", err)
	}
	if !strings.Contains(err.Error(), "Payload Mass (kg)") {
		t.Fatalf("error should name the column: %v", err)
	}
}

func TestMalformedRows(t *testing.T) {
	header := "Launch Site,Payload Mass (kg),class,Booster Version Category\n"
	cases := map[string]string{
		"payload not a number": "CCAFS LC-40,heavy,1,FT\n",
		"negative payload":     "CCAFS LC-40,-5,1,FT\n",
		"class out of range":   "CCAFS LC-40,500,2,FT\n",
		"empty site":           ",500,1,FT\n",
		"short row":            "CCAFS LC-40\n",
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(header + row))
			if !errors.Is(err, ErrMalformedRow) {
				t.Fatalf("expected ErrMalformedRow got %v", err)
			}
			if !strings.Contains(err.Error(), "line 2") {
				t.Fatalf("error should name the line: %v", err)
			}
		})
	}
}

func TestMalformedRowLineSkipsBlankLines(t *testing.T) {
	csv := "Launch Site,Payload Mass (kg),class,Booster Version Category\n" +
		"CCAFS LC-40,0,0,v1.0\n" +
		"\n" +
		"\n" +
		"\"KSC LC-39A\",\"5300\",1,\"F\nT\"\n" +
		"VAFB SLC-4E,heavy,1,FT\n"
	_, err := Parse(strings.NewReader(csv))
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow got %v", err)
	}
	if !strings.Contains(err.Error(), "line 7:") {
		t.Fatalf("error should name line 7: %v", err)
	}

	_, err = Parse(strings.NewReader("Launch Site,Payload Mass (kg),class,Booster Version Category\n\n\nCCAFS \"LC-40,0,0,FT\n"))
	if !errors.Is(err, ErrMalformedRow) || !strings.Contains(err.Error(), "line 4:") {
		t.Fatalf("quote error should name line 4: %v", err)
	}
}

func TestEmptyInputs(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty file: expected ErrEmpty got %v", err)
	}
	header := "Launch Site,Payload Mass (kg),class,Booster Version Category\n"
	if _, err := Parse(strings.NewReader(header + "\n , , , \n")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("header only: expected ErrEmpty got %v", err)
	}
	if _, err := New(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("New(nil): expected ErrEmpty got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error got %v", err)
	}
}

func TestFloatClassAndHeaderWhitespace(t *testing.T) {
	csv := "\ufeff Launch Site , Payload Mass (kg) ,class,Booster Version Category\nKSC LC-39A,100,1.0,B5\n"
	ds, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !ds.Records()[0].Succeeded() {
		t.Fatalf("expected success outcome from 1.0")
	}
	if !ds.HasSite("KSC LC-39A") || ds.HasSite("KSC") {
		t.Fatalf("HasSite mismatch for %v", ds.Sites())
	}
}
