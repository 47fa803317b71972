package telemetry

// Collector accumulates per-tick events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event counters for current window
	bumpStops   int
	topOuts     int
	adjustments int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBumpStop records a corner reaching full compression travel.
func (c *Collector) RecordBumpStop() {
	c.bumpStops++
}

// RecordTopOut records a corner reaching full extension travel.
func (c *Collector) RecordTopOut() {
	c.topOuts++
}

// RecordAdjustment records a runtime suspension adjustment.
func (c *Collector) RecordAdjustment() {
	c.adjustments++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// FleetSample holds per-corner values gathered across the whole fleet at
// window end, plus fleet-cumulative work totals.
type FleetSample struct {
	Vehicles     int
	Compressions []float64 // m, one entry per corner per vehicle
	Temperatures []float64 // °C
	AbsForces    []float64 // N, smoothed |force|

	CompressionWork float64 // J, cumulative
	ReboundWork     float64 // J, cumulative
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample FleetSample) WindowStats {
	compMean, compP10, compP50, compP90, _ := ComputeStats(sample.Compressions)
	tempMean, _, _, tempP90, tempMax := ComputeStats(sample.Temperatures)
	forceMean, _, _, forceP90, _ := ComputeStats(sample.AbsForces)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Vehicles: sample.Vehicles,

		BumpStops:   c.bumpStops,
		TopOuts:     c.topOuts,
		Adjustments: c.adjustments,

		CompressionMean: compMean,
		CompressionP10:  compP10,
		CompressionP50:  compP50,
		CompressionP90:  compP90,

		TemperatureMean: tempMean,
		TemperatureP90:  tempP90,
		TemperatureMax:  tempMax,

		ForceMean: forceMean,
		ForceP90:  forceP90,

		CompressionWork: sample.CompressionWork,
		ReboundWork:     sample.ReboundWork,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.bumpStops = 0
	c.topOuts = 0
	c.adjustments = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
