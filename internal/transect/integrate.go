package transect

// IntegrateSeries computes the running integral of the difference series
// along distance using the composite trapezoidal rule over irregular
// spacing. The output has one entry per input entry at the same distances;
// the first entry is always zero.
//
// The input is sorted ascending by distance, so dx is never negative; a zero
// dx (duplicate station surviving quantization) contributes zero area rather
// than failing. The result approximates the net area between the two
// elevation profiles up to each station: positive means net gain so far.
func IntegrateSeries(diff []SeriesPoint) []SeriesPoint {
	if len(diff) == 0 {
		return []SeriesPoint{}
	}

	integral := make([]SeriesPoint, len(diff))
	integral[0] = SeriesPoint{DistAlong: diff[0].DistAlong, Value: 0}

	total := 0.0
	for i := 1; i < len(diff); i++ {
		dx := diff[i].DistAlong - diff[i-1].DistAlong
		if dx > 0 {
			total += dx * (diff[i].Value + diff[i-1].Value) / 2
		}
		integral[i] = SeriesPoint{DistAlong: diff[i].DistAlong, Value: total}
	}
	return integral
}
