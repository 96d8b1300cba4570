package transect

import (
	"math"
	"testing"
)

func TestIntegrateSeriesEmpty(t *testing.T) {
	if got := IntegrateSeries(nil); len(got) != 0 {
		t.Errorf("IntegrateSeries(nil) = %v, want empty", got)
	}
}

func TestIntegrateSeriesFirstEntryZero(t *testing.T) {
	diff := []SeriesPoint{
		{DistAlong: 3, Value: 7.5},
		{DistAlong: 9, Value: -2},
	}
	integral := IntegrateSeries(diff)
	if integral[0].Value != 0 {
		t.Errorf("integral[0] = %v, want 0", integral[0].Value)
	}
	if integral[0].DistAlong != 3 {
		t.Errorf("integral[0] dist = %v, want 3", integral[0].DistAlong)
	}
}

// Uniform spacing dx with constant difference c must give integral[i] = i*c*dx,
// the closed form of the trapezoidal rule.
func TestIntegrateSeriesClosedForm(t *testing.T) {
	const (
		c  = 0.25
		dx = 2.0
		n  = 6
	)
	diff := make([]SeriesPoint, n)
	for i := range diff {
		diff[i] = SeriesPoint{DistAlong: float64(i) * dx, Value: c}
	}

	integral := IntegrateSeries(diff)

	for i := range integral {
		want := float64(i) * c * dx
		if math.Abs(integral[i].Value-want) > 1e-12 {
			t.Errorf("integral[%d] = %v, want %v", i, integral[i].Value, want)
		}
	}
}

func TestIntegrateSeriesCancellation(t *testing.T) {
	// Trapezoid of +1 and -1 over width 1 has zero area.
	diff := []SeriesPoint{
		{DistAlong: 0, Value: 1},
		{DistAlong: 1, Value: -1},
	}
	integral := IntegrateSeries(diff)
	if integral[1].Value != 0 {
		t.Errorf("integral[1] = %v, want 0", integral[1].Value)
	}
}

func TestIntegrateSeriesZeroDiffIsZeroEverywhere(t *testing.T) {
	diff := []SeriesPoint{
		{DistAlong: 0, Value: 0},
		{DistAlong: 1.5, Value: 0},
		{DistAlong: 4, Value: 0},
	}
	for i, p := range IntegrateSeries(diff) {
		if p.Value != 0 {
			t.Errorf("integral[%d] = %v, want 0", i, p.Value)
		}
	}
}

func TestIntegrateSeriesZeroSpacingContributesNothing(t *testing.T) {
	diff := []SeriesPoint{
		{DistAlong: 0, Value: 2},
		{DistAlong: 1, Value: 2},
		{DistAlong: 1, Value: 100}, // duplicate station: dx = 0
		{DistAlong: 2, Value: 2},
	}

	integral := IntegrateSeries(diff)

	if integral[2].Value != integral[1].Value {
		t.Errorf("zero-dx step changed integral: %v -> %v", integral[1].Value, integral[2].Value)
	}
	// Area over [1,2] uses the duplicate's value; pipeline never produces
	// that shape after quantization, but the integrator must not crash or
	// go backwards in distance.
	if integral[3].Value <= integral[2].Value {
		t.Errorf("integral did not accumulate after zero-dx step: %+v", integral)
	}
}

func TestIntegrateSeriesIrregularSpacing(t *testing.T) {
	diff := []SeriesPoint{
		{DistAlong: 0, Value: 1},
		{DistAlong: 0.5, Value: 3},
		{DistAlong: 2.5, Value: -1},
	}

	integral := IntegrateSeries(diff)

	// [0, 0.5]: (1+3)/2 * 0.5 = 1; [0.5, 2.5]: (3-1)/2 * 2 = 2.
	want := []float64{0, 1, 3}
	for i := range want {
		if math.Abs(integral[i].Value-want[i]) > 1e-12 {
			t.Errorf("integral[%d] = %v, want %v", i, integral[i].Value, want[i])
		}
	}
}
