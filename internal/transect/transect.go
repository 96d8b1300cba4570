// Package transect implements the elevation change pipeline for repeated
// survey profiles. Raw records are grouped by site and survey year, sorted
// into along-track profiles, aligned across the two survey years by quantized
// distance, differenced pointwise, and integrated along distance to give the
// running net area change per site.
//
// The whole pipeline is a single synchronous batch computation: one record
// set in, one immutable Snapshot out. There is no incremental update; a
// rebuild discards and recomputes everything.
package transect

import "time"

// Record is one raw survey sample: an elevation measured at a position along
// a site's transect line in a given survey year. Distances and elevations are
// stored in metres.
type Record struct {
	Site      string  `json:"site"`
	Year      int     `json:"year"`
	DistAlong float64 `json:"dist_along"`
	Elevation float64 `json:"elevation"`
}

// Profile is the ordered elevation-vs-distance series for one site in one
// survey year, sorted ascending by DistAlong. It may be empty when a site has
// no records for that year.
type Profile []Record

// MatchedPoint is a distance station at which both years' profiles may
// contribute an elevation. ElevEarly and ElevLate are nil when the
// corresponding year has no sample at this station; Diff is set only when
// both elevations are present.
type MatchedPoint struct {
	DistAlong float64  `json:"dist_along"`
	ElevEarly *float64 `json:"elev_early,omitempty"`
	ElevLate  *float64 `json:"elev_late,omitempty"`
	Diff      *float64 `json:"diff,omitempty"`
}

// SeriesPoint is one entry of a derived per-site series (difference or
// running integral), keyed by along-track distance.
type SeriesPoint struct {
	DistAlong float64 `json:"dist_along"`
	Value     float64 `json:"value"`
}

// SiteResult bundles everything the pipeline derives for one site.
type SiteResult struct {
	Site     string         `json:"site"`
	Early    Profile        `json:"early"`
	Late     Profile        `json:"late"`
	Matched  []MatchedPoint `json:"matched"`
	Diff     []SeriesPoint  `json:"diff"`
	Integral []SeriesPoint  `json:"integral"`
	Summary  SiteSummary    `json:"summary"`
}

// Snapshot is the immutable result of one pipeline run over the full record
// set. Sites preserves first-appearance order for deterministic iteration.
type Snapshot struct {
	EarlyYear int                    `json:"early_year"`
	LateYear  int                    `json:"late_year"`
	Sites     []string               `json:"sites"`
	Results   map[string]*SiteResult `json:"results"`
	BuiltAt   time.Time              `json:"built_at"`
}

// Result returns the per-site result, or nil for an unknown site.
func (s *Snapshot) Result(site string) *SiteResult {
	if s == nil {
		return nil
	}
	return s.Results[site]
}
