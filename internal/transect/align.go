package transect

import (
	"math"
	"sort"
)

// distScale quantizes along-track distance to three decimal places
// (millimetres for metre inputs), giving a matching tolerance of 0.0005 m.
// Two samples whose distances round to the same bucket are treated as the
// same station.
const distScale = 1000

func quantize(dist float64) int64 {
	return int64(math.Round(dist * distScale))
}

// AlignProfiles pairs an earlier-year profile with a later-year profile by
// quantized along-track distance and returns the merged stations sorted
// ascending by distance.
//
// The earlier profile is inserted first; the later profile then joins
// existing stations (setting ElevLate and Diff) or adds late-only stations.
// When two records within one year quantize to the same station the second
// overwrites the first. That lossy last-write-wins behaviour is deliberate:
// field crews occasionally log duplicate chainages and the survey convention
// is that the re-shot sample supersedes the earlier one.
func AlignProfiles(early, late Profile) []MatchedPoint {
	byKey := make(map[int64]*MatchedPoint, len(early)+len(late))

	for _, rec := range early {
		elev := rec.Elevation
		key := quantize(rec.DistAlong)
		if mp, ok := byKey[key]; ok {
			// Duplicate station within the earlier profile: last write wins.
			mp.DistAlong = rec.DistAlong
			mp.ElevEarly = &elev
			continue
		}
		byKey[key] = &MatchedPoint{DistAlong: rec.DistAlong, ElevEarly: &elev}
	}

	for _, rec := range late {
		elev := rec.Elevation
		key := quantize(rec.DistAlong)
		mp, ok := byKey[key]
		if !ok {
			byKey[key] = &MatchedPoint{DistAlong: rec.DistAlong, ElevLate: &elev}
			continue
		}
		// The earlier year's distance stays canonical for joined stations.
		mp.ElevLate = &elev
		if mp.ElevEarly != nil {
			diff := elev - *mp.ElevEarly
			mp.Diff = &diff
		}
	}

	points := make([]MatchedPoint, 0, len(byKey))
	for _, mp := range byKey {
		points = append(points, *mp)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].DistAlong < points[j].DistAlong
	})
	return points
}
