package suspension

import "math"

// Tuning constants of the force laws. These are model constants, not
// configuration.
const (
	// AmbientTemperature is the damper rest temperature in °C and the
	// floor the thermal model clamps to.
	AmbientTemperature = 20.0

	// progressiveGain scales the quadratic bump-stop stiffening term.
	progressiveGain = 0.5

	// thermalDampingGain is the damping gain per °C above ambient.
	thermalDampingGain = 0.02

	// quadraticDampingGain scales the orifice-flow v² damping term.
	quadraticDampingGain = 0.1
)

// springForce computes the spring contribution for corner i at the given
// compression. Positive compression means the spring is shortened; the
// returned force opposes displacement from the preload position.
//
// With progressive rates enabled the base rate stiffens quadratically as
// travel is used up, approximating a bump stop. The factor uses |c| so
// extension stiffens the same way compression does.
func springForce(cfg *Config, i Corner, compression float64) float64 {
	f := -cfg.SpringRate[i] * (compression - cfg.SpringPreload[i])
	if cfg.EnableProgressive {
		ratio := math.Abs(compression) / cfg.MaxCompression[i]
		f *= 1 + progressiveGain*ratio*ratio
	}
	return f
}

// dampingForce computes the damper contribution for corner i. Velocity is
// the compression rate: positive while the spring shortens (compression
// stroke), negative while it extends (rebound). The coefficient is chosen
// per stroke direction, optionally scaled by damper temperature, and the
// total is a linear term plus a signed quadratic term that dominates at
// high shaft speeds.
func dampingForce(cfg *Config, i Corner, velocity, temperature float64) float64 {
	coeff := cfg.ReboundDamping[i]
	if velocity > 0 {
		coeff = cfg.CompressionDamping[i]
	}
	if cfg.EnableThermal {
		coeff *= 1 + (temperature-AmbientTemperature)*thermalDampingGain
	}
	f := -coeff * velocity
	if velocity > 0 {
		f -= coeff * quadraticDampingGain * velocity * velocity
	} else if velocity < 0 {
		f += coeff * quadraticDampingGain * velocity * velocity
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
