package transect

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SiteSummary condenses a site's difference and integral series into the
// headline numbers shown in reports. All values are in metres (NetArea in
// square metres of vertical cross-section).
type SiteSummary struct {
	Site         string  `json:"site"`
	MatchedCount int     `json:"matched_count"`
	MeanDiff     float64 `json:"mean_diff"`
	StdDevDiff   float64 `json:"stddev_diff"`
	MinDiff      float64 `json:"min_diff"`
	MaxDiff      float64 `json:"max_diff"`
	NetArea      float64 `json:"net_area"`
}

// Summarise computes the summary statistics for one site. An empty difference
// series (site surveyed in only one year, or no overlapping stations) yields
// a zero-valued summary, not an error.
func Summarise(site string, diff, integral []SeriesPoint) SiteSummary {
	summary := SiteSummary{Site: site, MatchedCount: len(diff)}
	if len(diff) == 0 {
		return summary
	}

	values := make([]float64, len(diff))
	for i, p := range diff {
		values[i] = p.Value
	}

	summary.MeanDiff = stat.Mean(values, nil)
	if len(values) > 1 {
		summary.StdDevDiff = stat.StdDev(values, nil)
	}
	summary.MinDiff = floats.Min(values)
	summary.MaxDiff = floats.Max(values)
	summary.NetArea = integral[len(integral)-1].Value
	return summary
}
