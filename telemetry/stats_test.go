package telemetry

import (
	"log/slog"
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{10, 2, 8, 4, 6}
	s := Summarize(values)

	if math.Abs(s.Mean-6) > 1e-9 {
		t.Errorf("mean = %v, want 6", s.Mean)
	}
	// sample std of 2,4,6,8,10 is sqrt(10)
	if math.Abs(s.Std-math.Sqrt(10)) > 1e-9 {
		t.Errorf("std = %v, want %v", s.Std, math.Sqrt(10))
	}
	if s.Min != 2 || s.Max != 10 {
		t.Errorf("range = [%v, %v], want [2, 10]", s.Min, s.Max)
	}
	if math.Abs(s.P50-6) > 1e-9 {
		t.Errorf("p50 = %v, want 6", s.P50)
	}
	if values[0] != 10 {
		t.Error("Summarize must not reorder its input")
	}
}

func TestSummarizeSmallInputs(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty input: got %+v, want zero summary", s)
	}

	s := Summarize([]float64{7})
	if s.Mean != 7 || s.Std != 0 || s.P90 != 7 {
		t.Errorf("single value: got %+v, want mean=7 std=0 p90=7", s)
	}
}

func TestWindowStatsLogValue(t *testing.T) {
	v := WindowStats{RunID: "abc", Bodies: 12, Species: 3}.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("got kind %v, want group", v.Kind())
	}

	found := map[string]bool{}
	for _, a := range v.Group() {
		found[a.Key] = true
	}
	for _, key := range []string{"run_id", "bodies", "species", "energy_mean"} {
		if !found[key] {
			t.Errorf("missing attribute %q", key)
		}
	}
}
