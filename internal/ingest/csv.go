// Package ingest reads raw survey records from delimited text resources.
// Value typing (numeric coercion of year, distance, and elevation) happens
// here; the transect pipeline only ever sees well-formed records.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/banshee-data/elevation.report/internal/monitoring"
	"github.com/banshee-data/elevation.report/internal/transect"
)

// Result is the outcome of one import: the usable records, the number of
// rows dropped for being malformed, and a batch ID tying the import together
// in storage and logs.
type Result struct {
	BatchID string
	Records []transect.Record
	Skipped int
}

// columnAliases maps acceptable header spellings to canonical column names.
// Field sheets exported from different logger software disagree on naming.
var columnAliases = map[string]string{
	"site":       "site",
	"site_id":    "site",
	"year":       "year",
	"survey":     "year",
	"dist_along": "dist_along",
	"distalong":  "dist_along",
	"distance":   "dist_along",
	"chainage":   "dist_along",
	"elevation":  "elevation",
	"elev":       "elevation",
	"z":          "elevation",
}

// ReadRecords parses a delimited text resource with a header row into survey
// records. Rows with non-numeric values, non-finite values, or a negative
// along-track distance are skipped with a diagnostic rather than failing the
// whole import. A missing required column is fatal: without it no row can be
// interpreted.
func ReadRecords(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := cols[canonical]; !dup {
			cols[canonical] = i
		}
	}
	for _, required := range []string{"site", "year", "dist_along", "elevation"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q in header %v", required, header)
		}
	}

	result := &Result{BatchID: uuid.New().String()}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			monitoring.Logf("ingest: skipping unreadable row at line %d: %v", line, err)
			result.Skipped++
			continue
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			monitoring.Logf("ingest: skipping row at line %d: %v", line, err)
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	if result.Skipped > 0 {
		monitoring.Logf("ingest: batch %s parsed %d records, skipped %d rows",
			result.BatchID, len(result.Records), result.Skipped)
	}
	return result, nil
}

// ReadFile opens and parses a CSV file of survey records.
func ReadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open survey file: %w", err)
	}
	defer f.Close()

	result, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return result, nil
}

func parseRow(row []string, cols map[string]int) (transect.Record, error) {
	var rec transect.Record

	field := func(name string) (string, error) {
		idx := cols[name]
		if idx >= len(row) {
			return "", fmt.Errorf("row too short for column %q", name)
		}
		return strings.TrimSpace(row[idx]), nil
	}

	site, err := field("site")
	if err != nil {
		return rec, err
	}
	if site == "" {
		return rec, fmt.Errorf("empty site identifier")
	}

	yearStr, err := field("year")
	if err != nil {
		return rec, err
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return rec, fmt.Errorf("failed to parse year %q: %w", yearStr, err)
	}

	distStr, err := field("dist_along")
	if err != nil {
		return rec, err
	}
	dist, err := strconv.ParseFloat(distStr, 64)
	if err != nil {
		return rec, fmt.Errorf("failed to parse dist_along %q: %w", distStr, err)
	}
	if math.IsNaN(dist) || math.IsInf(dist, 0) || dist < 0 {
		return rec, fmt.Errorf("dist_along %v out of range", dist)
	}

	elevStr, err := field("elevation")
	if err != nil {
		return rec, err
	}
	elev, err := strconv.ParseFloat(elevStr, 64)
	if err != nil {
		return rec, fmt.Errorf("failed to parse elevation %q: %w", elevStr, err)
	}
	if math.IsNaN(elev) || math.IsInf(elev, 0) {
		return rec, fmt.Errorf("elevation %v is not finite", elev)
	}

	rec.Site = site
	rec.Year = year
	rec.DistAlong = dist
	rec.Elevation = elev
	return rec, nil
}
