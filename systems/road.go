// Package systems contains ECS systems for the fleet simulation.
package systems

import (
	"math"

	"github.com/pthm-cable/strut/config"
	"github.com/pthm-cable/strut/suspension"
)

// Road is a deterministic road excitation model: a sum of sinusoidal
// surface components plus periodic discrete bumps. Elevation is converted
// to per-corner vertical load through a linear tire-stiffness proxy.
type Road struct {
	wavelengths    []float64
	amplitudes     []float64
	bumpSpacing    float64
	bumpHeight     float64
	bumpWidth      float64
	loadScale      float64
	crossfallShift float64
}

// NewRoad builds a road from configuration. Mismatched wavelength and
// amplitude lists are truncated to the shorter of the two.
func NewRoad(cfg config.RoadConfig) *Road {
	n := len(cfg.Wavelengths)
	if len(cfg.Amplitudes) < n {
		n = len(cfg.Amplitudes)
	}
	return &Road{
		wavelengths:    cfg.Wavelengths[:n],
		amplitudes:     cfg.Amplitudes[:n],
		bumpSpacing:    cfg.BumpSpacing,
		bumpHeight:     cfg.BumpHeight,
		bumpWidth:      cfg.BumpWidth,
		loadScale:      cfg.LoadScale,
		crossfallShift: cfg.CrossfallShift,
	}
}

// Elevation returns the surface height in meters at longitudinal position
// x. Purely a function of x, so any vehicle re-driving a stretch sees the
// identical profile.
func (r *Road) Elevation(x float64) float64 {
	var h float64
	for i, wl := range r.wavelengths {
		if wl <= 0 {
			continue
		}
		h += r.amplitudes[i] * math.Sin(2*math.Pi*x/wl)
	}

	// Periodic half-sine bump, e.g. expansion joints or speed bumps.
	if r.bumpSpacing > 0 && r.bumpWidth > 0 {
		pos := math.Mod(x, r.bumpSpacing)
		if pos < 0 {
			pos += r.bumpSpacing
		}
		if pos < r.bumpWidth {
			h += r.bumpHeight * math.Sin(math.Pi*pos/r.bumpWidth)
		}
	}
	return h
}

// WheelLoads returns the external vertical load per corner for a vehicle
// whose rear axle is at position x. The front axle leads by the wheelbase;
// the right track samples the surface shifted by the crossfall offset so
// left and right corners decorrelate.
func (r *Road) WheelLoads(x, wheelbase float64) suspension.PerCorner {
	var loads suspension.PerCorner
	loads[suspension.FrontLeft] = r.Elevation(x+wheelbase) * r.loadScale
	loads[suspension.FrontRight] = r.Elevation(x+wheelbase+r.crossfallShift) * r.loadScale
	loads[suspension.RearLeft] = r.Elevation(x) * r.loadScale
	loads[suspension.RearRight] = r.Elevation(x+r.crossfallShift) * r.loadScale
	return loads
}
