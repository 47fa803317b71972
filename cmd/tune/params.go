// Package main provides damper tuning via numerical optimization: it
// searches rebound/compression damping and anti-roll stiffness for the
// setup that settles fastest over a pothole without harshness.
package main

import (
	"github.com/pthm-cable/strut/suspension"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "rebound_front", Min: 1500, Max: 9000, Default: 4200},
			{Name: "rebound_rear", Min: 1500, Max: 9000, Default: 4400},
			{Name: "compression_front", Min: 1000, Max: 7000, Default: 2600},
			{Name: "compression_rear", Min: 1000, Max: 7000, Default: 2800},
			{Name: "anti_roll_front", Min: 0, Max: 40000, Default: 18000},
			{Name: "anti_roll_rear", Min: 0, Max: 40000, Default: 16000},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp limits raw values to their bounds.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := raw[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		out[i] = v
	}
	return out
}

// ApplyToEngineConfig writes the raw parameter values into a suspension
// config. Per-axle damping values are duplicated across the axle's
// corners.
func (pv *ParamVector) ApplyToEngineConfig(cfg *suspension.Config, raw []float64) {
	cfg.ReboundDamping[suspension.FrontLeft] = raw[0]
	cfg.ReboundDamping[suspension.FrontRight] = raw[0]
	cfg.ReboundDamping[suspension.RearLeft] = raw[1]
	cfg.ReboundDamping[suspension.RearRight] = raw[1]
	cfg.CompressionDamping[suspension.FrontLeft] = raw[2]
	cfg.CompressionDamping[suspension.FrontRight] = raw[2]
	cfg.CompressionDamping[suspension.RearLeft] = raw[3]
	cfg.CompressionDamping[suspension.RearRight] = raw[3]
	cfg.AntiRollStiffness[suspension.Front] = raw[4]
	cfg.AntiRollStiffness[suspension.Rear] = raw[5]
}
