// Package dataset loads the launch records CSV into an immutable in-memory table.
//
// The file is read once at startup. Every accessor hands out copies so the table
// can be shared by concurrent request handlers without locking.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/iafilius/LaunchDashboard/src/types"
)

// Column headers expected in the input file.
const (
	ColumnSite            = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnClass           = "class"
	ColumnBoosterCategory = "Booster Version Category"
	ColumnFlightNumber    = "Flight Number"
	ColumnBoosterVersion  = "Booster Version"
)

// DefaultPath is the dataset filename used when nothing else is configured.
const DefaultPath = "spacex_launch_dash.csv"

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed row")
	ErrEmpty         = errors.New("dataset has no records")
)

var requiredColumns = []string{ColumnSite, ColumnPayloadMass, ColumnClass, ColumnBoosterCategory}

// Dataset is the loaded, read-only launch table.
type Dataset struct {
	source     string
	records    []types.LaunchRecord
	sites      []string
	minPayload float64
	maxPayload float64
}

// Load opens path and parses it with Parse.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	ds.source = path
	return ds, nil
}

// Parse reads a CSV stream with a header row. Columns are located by header name,
// extra columns are ignored.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var records []types.LaunchRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, pe.StartLine, pe.Err)
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		if isBlank(row) {
			continue
		}
		// csv.Reader skips empty lines, so the physical line comes from the reader.
		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return New(records)
}

// New builds a Dataset from already parsed records. The slice is copied.
func New(records []types.LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	ds := &Dataset{records: append([]types.LaunchRecord(nil), records...)}
	payloads := make([]float64, len(records))
	seen := map[string]bool{}
	for i, r := range ds.records {
		payloads[i] = r.PayloadMassKg
		if !seen[r.Site] {
			seen[r.Site] = true
			ds.sites = append(ds.sites, r.Site)
		}
	}
	ds.minPayload = floats.Min(payloads)
	ds.maxPayload = floats.Max(payloads)
	return ds, nil
}

func parseRow(row []string, idx map[string]int) (types.LaunchRecord, error) {
	var rec types.LaunchRecord
	field := func(col string) (string, bool) {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	site, ok := field(ColumnSite)
	if !ok || site == "" {
		return rec, fmt.Errorf("column %q: empty launch site", ColumnSite)
	}
	rec.Site = site

	raw, _ := field(ColumnPayloadMass)
	mass, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return rec, fmt.Errorf("column %q: %v", ColumnPayloadMass, err)
	}
	if mass < 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return rec, fmt.Errorf("column %q: payload mass %v out of range", ColumnPayloadMass, mass)
	}
	rec.PayloadMassKg = mass

	raw, _ = field(ColumnClass)
	class, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return rec, fmt.Errorf("column %q: %v", ColumnClass, err)
	}
	switch class {
	case 0:
		rec.Outcome = types.OutcomeFailure
	case 1:
		rec.Outcome = types.OutcomeSuccess
	default:
		return rec, fmt.Errorf("column %q: outcome must be 0 or 1, got %v", ColumnClass, raw)
	}

	rec.BoosterVersionCategory, _ = field(ColumnBoosterCategory)

	// optional columns
	if raw, ok := field(ColumnFlightNumber); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return rec, fmt.Errorf("column %q: %v", ColumnFlightNumber, err)
		}
		rec.FlightNumber = n
	}
	rec.BoosterVersion, _ = field(ColumnBoosterVersion)
	return rec, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Source returns the path the dataset was loaded from ("" when built in memory).
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in file order.
func (d *Dataset) Records() []types.LaunchRecord {
	return append([]types.LaunchRecord(nil), d.records...)
}

// Each calls fn for every record in file order without copying the table.
// fn receives a value, so it cannot modify the stored record.
func (d *Dataset) Each(fn func(types.LaunchRecord)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Sites returns the distinct launch sites in order of first appearance.
func (d *Dataset) Sites() []string {
	return append([]string(nil), d.sites...)
}

// HasSite reports whether site occurs in the dataset.
func (d *Dataset) HasSite(site string) bool {
	for _, s := range d.sites {
		if s == site {
			return true
		}
	}
	return false
}

// PayloadBounds returns the minimum and maximum payload mass over all records.
func (d *Dataset) PayloadBounds() (min, max float64) {
	return d.minPayload, d.maxPayload
}
