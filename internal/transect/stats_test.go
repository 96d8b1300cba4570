package transect

import (
	"math"
	"testing"
)

func TestSummariseEmpty(t *testing.T) {
	summary := Summarise("AHA", nil, nil)
	if summary.Site != "AHA" {
		t.Errorf("site = %q, want AHA", summary.Site)
	}
	if summary.MatchedCount != 0 || summary.NetArea != 0 || summary.MeanDiff != 0 {
		t.Errorf("empty series should give a zero summary: %+v", summary)
	}
}

func TestSummariseStatistics(t *testing.T) {
	diff := []SeriesPoint{
		{DistAlong: 0, Value: 1},
		{DistAlong: 1, Value: -1},
		{DistAlong: 2, Value: 3},
	}
	integral := IntegrateSeries(diff)

	summary := Summarise("BRK", diff, integral)

	if summary.MatchedCount != 3 {
		t.Errorf("matched count = %d, want 3", summary.MatchedCount)
	}
	if math.Abs(summary.MeanDiff-1.0) > 1e-12 {
		t.Errorf("mean = %v, want 1", summary.MeanDiff)
	}
	if summary.MinDiff != -1 || summary.MaxDiff != 3 {
		t.Errorf("min/max = %v/%v, want -1/3", summary.MinDiff, summary.MaxDiff)
	}
	// Sample stddev of {1,-1,3} is 2.
	if math.Abs(summary.StdDevDiff-2.0) > 1e-12 {
		t.Errorf("stddev = %v, want 2", summary.StdDevDiff)
	}
	// Net area is the last running-integral value: 0 + 0 + 1 = 1.
	if math.Abs(summary.NetArea-1.0) > 1e-12 {
		t.Errorf("net area = %v, want 1", summary.NetArea)
	}
}

func TestSummariseSinglePoint(t *testing.T) {
	diff := []SeriesPoint{{DistAlong: 0, Value: 0.4}}
	integral := IntegrateSeries(diff)

	summary := Summarise("CLF", diff, integral)

	if summary.StdDevDiff != 0 {
		t.Errorf("stddev of one sample = %v, want 0", summary.StdDevDiff)
	}
	if summary.MeanDiff != 0.4 || summary.NetArea != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
