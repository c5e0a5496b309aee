// Package telemetry provides evolution statistics, bookmarks and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of internal ticks.
type WindowStats struct {
	RunID           string `csv:"run_id"`
	Evolution       int    `csv:"evolution"`
	WindowStartTick int64  `csv:"-"`
	WindowEndTick   int64  `csv:"window_end"`

	// Population at window end
	Bodies  int `csv:"bodies"`
	Plants  int `csv:"plants"`
	Species int `csv:"species"`

	// Events during window
	Births        int `csv:"births"`
	Divisions     int `csv:"divisions"`
	Starved       int `csv:"starved"`
	Eaten         int `csv:"eaten"`
	PlantsEaten   int `csv:"plants_eaten"`
	PlantsSpawned int `csv:"plants_spawned"`

	// Trait distributions (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`
	SpeedMean  float64 `csv:"speed_mean"`
	SpeedStd   float64 `csv:"speed_std"`
	VisionMean float64 `csv:"vision_mean"`
	VisionStd  float64 `csv:"vision_std"`

	MaxGeneration uint32 `csv:"max_generation"`
}

// Summary describes a distribution of values.
type Summary struct {
	Mean, Std     float64
	Min, Max      float64
	P10, P50, P90 float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Summarize computes the mean, sample standard deviation, range and
// percentiles of values. The input is not modified.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	var s Summary
	if n == 1 {
		s.Mean = values[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	}
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("evolution", s.Evolution),
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("bodies", s.Bodies),
		slog.Int("plants", s.Plants),
		slog.Int("species", s.Species),
		slog.Int("births", s.Births),
		slog.Int("divisions", s.Divisions),
		slog.Int("starved", s.Starved),
		slog.Int("eaten", s.Eaten),
		slog.Int("plants_eaten", s.PlantsEaten),
		slog.Int("plants_spawned", s.PlantsSpawned),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("vision_mean", s.VisionMean),
		slog.Any("max_generation", s.MaxGeneration),
	)
}
