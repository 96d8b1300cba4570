package transect

import "sort"

// GroupKey identifies one (site, survey year) group of raw records.
type GroupKey struct {
	Site string
	Year int
}

// GroupRecords partitions records into disjoint (site, year) groups,
// preserving input order within each group. Records tagged with a year other
// than the two survey years carry no information for the comparison and are
// dropped here rather than treated as errors.
func GroupRecords(records []Record, earlyYear, lateYear int) map[GroupKey][]Record {
	groups := make(map[GroupKey][]Record)
	for _, rec := range records {
		if rec.Year != earlyYear && rec.Year != lateYear {
			continue
		}
		key := GroupKey{Site: rec.Site, Year: rec.Year}
		groups[key] = append(groups[key], rec)
	}
	return groups
}

// SiteOrder returns the distinct site identifiers carrying at least one
// record in either survey year, in order of first appearance. The order has
// no semantic meaning but keeps downstream iteration deterministic.
func SiteOrder(records []Record, earlyYear, lateYear int) []string {
	seen := make(map[string]bool)
	var sites []string
	for _, rec := range records {
		if rec.Year != earlyYear && rec.Year != lateYear {
			continue
		}
		if seen[rec.Site] {
			continue
		}
		seen[rec.Site] = true
		sites = append(sites, rec.Site)
	}
	return sites
}

// BuildProfile sorts one group's records ascending by along-track distance.
// The sort is stable: ties in DistAlong keep their original input order.
// A nil or empty group yields an empty Profile.
func BuildProfile(records []Record) Profile {
	profile := make(Profile, len(records))
	copy(profile, records)
	sort.SliceStable(profile, func(i, j int) bool {
		return profile[i].DistAlong < profile[j].DistAlong
	})
	return profile
}
