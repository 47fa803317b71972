package suspension

import "math"

// Thermal model constants.
const (
	// heatGainFactor converts dissipated damper power (W) to heating
	// rate (°C/s).
	heatGainFactor = 0.001

	// coolingRate is the convective loss coefficient per °C above
	// ambient.
	coolingRate = 0.1
)

// updateTemperature advances the damper temperature of corner i by one
// step. Heating follows the work currently dissipated (|F·v|), cooling is
// proportional to the excess over ambient, and the result never drops
// below ambient.
func updateTemperature(s *State, i Corner, dt float64) {
	work := math.Abs(s.Force[i] * s.Velocity[i])
	heatGain := work * heatGainFactor
	heatLoss := (s.Temperature[i] - AmbientTemperature) * coolingRate * dt
	s.Temperature[i] += (heatGain - heatLoss) * dt
	if s.Temperature[i] < AmbientTemperature {
		s.Temperature[i] = AmbientTemperature
	}
}
