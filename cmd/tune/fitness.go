package main

import (
	"math"

	"github.com/pthm-cable/strut/config"
	"github.com/pthm-cable/strut/suspension"
	"github.com/pthm-cable/strut/systems"
)

const (
	evalDT = 1.0 / 60.0

	// Pothole pulse: a short unloading as the wheel drops in, followed by
	// a harder impact on the far edge.
	potholeDropLoad   = -6000.0 // N
	potholeImpactLoad = 9000.0  // N
	potholeDropTicks  = 9       // 0.15 s
	potholeImpactTick = 6       // 0.10 s

	// A corner counts as settled when it stays within this band of its
	// static compression.
	settleBand = 0.002 // m

	maxSettleSeconds = 8.0
)

// FitnessEvaluator scores damper tunings on a pothole step response plus a
// rough-road comfort pass.
type FitnessEvaluator struct {
	params *ParamVector
	mass   float64
	road   *systems.Road

	lastSettle float64 // seconds, from most recent Evaluate
}

// NewFitnessEvaluator creates a new evaluator from the loaded config.
func NewFitnessEvaluator(params *ParamVector, cfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params: params,
		mass:   cfg.Vehicle.Mass,
		road:   systems.NewRoad(cfg.Road),
	}
}

// LastSettle returns the settling time of the most recent evaluation.
func (fe *FitnessEvaluator) LastSettle() float64 {
	return fe.lastSettle
}

// Evaluate runs both scenarios for one tuning and returns the combined
// cost (lower is better). Returns +Inf for configs the engine rejects.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	raw = fe.params.Clamp(raw)

	engineCfg := systems.EngineConfig()
	fe.params.ApplyToEngineConfig(&engineCfg, raw)

	settle, overshoot, ok := fe.potholeResponse(engineCfg)
	if !ok {
		return math.Inf(1)
	}
	roughness := fe.roadRoughness(engineCfg)

	fe.lastSettle = settle

	// Weighted sum: settling dominates, overshoot in cm, roughness in mm
	// RMS so all three land in the same few-units range.
	return settle + 500*overshoot + 2000*roughness
}

// potholeResponse drops the settled vehicle through a pothole pulse and
// measures overshoot (m) and time to re-settle (s).
func (fe *FitnessEvaluator) potholeResponse(cfg suspension.Config) (settle, overshoot float64, ok bool) {
	engine, err := suspension.New(cfg, fe.mass)
	if err != nil {
		return 0, 0, false
	}
	vs := suspension.VehicleState{Mass: fe.mass}

	// Already at static equilibrium; record it as the reference.
	static := engine.Telemetry().Compression

	// Pothole pulse on the front axle.
	pulse := func(load float64, ticks int) {
		loads := suspension.PerCorner{load, load, 0, 0}
		for n := 0; n < ticks; n++ {
			engine.Update(evalDT, vs, loads)
		}
	}
	pulse(potholeDropLoad, potholeDropTicks)
	pulse(potholeImpactLoad, potholeImpactTick)

	// Free response: track overshoot and first time all corners hold the
	// settle band.
	maxTicks := int(maxSettleSeconds / evalDT)
	settled := -1
	for n := 0; n < maxTicks; n++ {
		engine.Update(evalDT, vs, suspension.PerCorner{})
		snap := engine.Telemetry()

		inBand := true
		for i := suspension.Corner(0); i < suspension.NumCorners; i++ {
			dev := math.Abs(snap.Compression[i] - static[i])
			if dev > overshoot {
				overshoot = dev
			}
			if dev > settleBand {
				inBand = false
			}
		}
		if inBand {
			if settled < 0 {
				settled = n
			}
		} else {
			settled = -1
		}
	}
	if settled < 0 {
		settled = maxTicks
	}
	return float64(settled) * evalDT, overshoot, true
}

// roadRoughness drives the rough road for ten seconds and returns the RMS
// compression deviation from static, a ride-comfort proxy.
func (fe *FitnessEvaluator) roadRoughness(cfg suspension.Config) float64 {
	engine, err := suspension.New(cfg, fe.mass)
	if err != nil {
		return math.Inf(1)
	}
	vs := suspension.VehicleState{Mass: fe.mass}
	static := engine.Telemetry().Compression

	const speed = 18.0
	var sumSq float64
	ticks := int(10.0 / evalDT)
	for n := 0; n < ticks; n++ {
		x := speed * float64(n) * evalDT
		engine.Update(evalDT, vs, fe.road.WheelLoads(x, cfg.Wheelbase))
		snap := engine.Telemetry()
		for i := suspension.Corner(0); i < suspension.NumCorners; i++ {
			dev := snap.Compression[i] - static[i]
			sumSq += dev * dev
		}
	}
	return math.Sqrt(sumSq / float64(ticks*int(suspension.NumCorners)))
}
