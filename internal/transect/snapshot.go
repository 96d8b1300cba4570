package transect

import "time"

// BuildSnapshot runs the full pipeline over the raw record set and assembles
// the per-site results into one immutable snapshot. Sites with records in
// only one survey year get a populated profile for that year and empty
// difference and integral series.
func BuildSnapshot(records []Record, earlyYear, lateYear int) *Snapshot {
	groups := GroupRecords(records, earlyYear, lateYear)

	snap := &Snapshot{
		EarlyYear: earlyYear,
		LateYear:  lateYear,
		Sites:     SiteOrder(records, earlyYear, lateYear),
		Results:   make(map[string]*SiteResult),
		BuiltAt:   time.Now(),
	}

	for _, site := range snap.Sites {
		early := BuildProfile(groups[GroupKey{Site: site, Year: earlyYear}])
		late := BuildProfile(groups[GroupKey{Site: site, Year: lateYear}])
		matched := AlignProfiles(early, late)
		diff := DifferenceSeries(matched)
		integral := IntegrateSeries(diff)

		snap.Results[site] = &SiteResult{
			Site:     site,
			Early:    early,
			Late:     late,
			Matched:  matched,
			Diff:     diff,
			Integral: integral,
			Summary:  Summarise(site, diff, integral),
		}
	}
	return snap
}
