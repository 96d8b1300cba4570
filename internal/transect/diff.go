package transect

// DifferenceSeries extracts the ordered elevation-change series from a set of
// matched points. Only stations where both survey years contributed an
// elevation appear in the output; stations present in a single year are kept
// for profile display but excluded here. Values are later minus earlier, so
// positive means elevation gain.
func DifferenceSeries(points []MatchedPoint) []SeriesPoint {
	series := make([]SeriesPoint, 0, len(points))
	for _, mp := range points {
		if mp.Diff == nil {
			continue
		}
		series = append(series, SeriesPoint{DistAlong: mp.DistAlong, Value: *mp.Diff})
	}
	return series
}
