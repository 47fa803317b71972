// Package telemetry provides windowed fleet statistics, performance
// timing, and CSV output for the suspension simulation.
package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated fleet suspension statistics for a time
// window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Fleet size at window end
	Vehicles int `csv:"vehicles"`

	// Travel-limit events during the window
	BumpStops   int `csv:"bump_stops"`
	TopOuts     int `csv:"top_outs"`
	Adjustments int `csv:"adjustments"`

	// Compression distribution across all corners (sampled at window end)
	CompressionMean float64 `csv:"compression_mean"`
	CompressionP10  float64 `csv:"compression_p10"`
	CompressionP50  float64 `csv:"compression_p50"`
	CompressionP90  float64 `csv:"compression_p90"`

	// Damper temperature distribution
	TemperatureMean float64 `csv:"temperature_mean"`
	TemperatureP90  float64 `csv:"temperature_p90"`
	TemperatureMax  float64 `csv:"temperature_max"`

	// Smoothed |force| distribution
	ForceMean float64 `csv:"force_mean"`
	ForceP90  float64 `csv:"force_p90"`

	// Cumulative damper work across the fleet (J, since start/reset)
	CompressionWork float64 `csv:"compression_work"`
	ReboundWork     float64 `csv:"rebound_work"`
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

// ComputeStats calculates mean, p10, p50, p90 and max from sample values.
func ComputeStats(values []float64) (mean, p10, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = sorted[n-1]

	return mean, p10, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("vehicles", s.Vehicles),
		slog.Int("bump_stops", s.BumpStops),
		slog.Int("top_outs", s.TopOuts),
		slog.Int("adjustments", s.Adjustments),
		slog.Float64("compression_mean", s.CompressionMean),
		slog.Float64("compression_p10", s.CompressionP10),
		slog.Float64("compression_p50", s.CompressionP50),
		slog.Float64("compression_p90", s.CompressionP90),
		slog.Float64("temperature_mean", s.TemperatureMean),
		slog.Float64("temperature_p90", s.TemperatureP90),
		slog.Float64("temperature_max", s.TemperatureMax),
		slog.Float64("force_mean", s.ForceMean),
		slog.Float64("force_p90", s.ForceP90),
		slog.Float64("compression_work", s.CompressionWork),
		slog.Float64("rebound_work", s.ReboundWork),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
