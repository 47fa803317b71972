package suspension

import "math"

// averageForceAlpha is the EMA smoothing factor for the average-force
// telemetry signal.
const averageForceAlpha = 0.1

// Pitch lever arms as fractions of the wheelbase. Fixed 60/40 static
// split; a design constant, not configurable.
const (
	frontPitchFraction = 0.6
	rearPitchFraction  = 0.4
)

// Accumulator tracks long-lived telemetry derived from the per-step state:
// cumulative damper work split by stroke direction, travel extrema, and a
// smoothed per-corner force. It only grows between explicit resets.
type Accumulator struct {
	TotalCompressionWork float64 // J, sum over compression strokes
	TotalReboundWork     float64 // J, sum over rebound strokes

	MaxCompression PerCorner // m, peak compression seen
	MaxExtension   PerCorner // m, peak extension seen
	AverageForce   PerCorner // N, EMA of |force|
}

// record folds one integrated step into the accumulator.
func (acc *Accumulator) record(s *State, dt float64) {
	for i := Corner(0); i < NumCorners; i++ {
		work := math.Abs(s.Force[i]*s.Velocity[i]) * dt
		if s.Velocity[i] > 0 {
			acc.TotalCompressionWork += work
		} else {
			acc.TotalReboundWork += work
		}

		acc.AverageForce[i] = averageForceAlpha*math.Abs(s.Force[i]) + (1-averageForceAlpha)*acc.AverageForce[i]

		if c := s.Compression[i]; c > acc.MaxCompression[i] {
			acc.MaxCompression[i] = c
		}
		if e := -s.Compression[i]; e > acc.MaxExtension[i] {
			acc.MaxExtension[i] = e
		}
	}
}

// Moments are body torques about the chassis axes derived from the stored
// corner forces, in N·m. Yaw is always zero: the vertical model has no yaw
// authority.
type Moments struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// RollStiffness is the effective roll rate per axle and their sum, in
// N·m/rad.
type RollStiffness struct {
	Front float64
	Rear  float64
	Total float64
}

// axleRollStiffness combines the two corner springs in series across the
// track with the anti-roll bar contribution.
func axleRollStiffness(cfg *Config, a Axle) float64 {
	kl := cfg.SpringRate[a.left()]
	kr := cfg.SpringRate[a.right()]
	track := cfg.TrackWidth[a]
	return kl*kr*track*track/(4*(kl+kr)) + cfg.AntiRollStiffness[a]
}

func rollStiffness(cfg *Config) RollStiffness {
	rs := RollStiffness{
		Front: axleRollStiffness(cfg, Front),
		Rear:  axleRollStiffness(cfg, Rear),
	}
	rs.Total = rs.Front + rs.Rear
	return rs
}

// pitchStiffness derives the pitch rate from the average spring rate of
// each axle acting on its lever arm.
func pitchStiffness(cfg *Config) float64 {
	frontRate := (cfg.SpringRate[FrontLeft] + cfg.SpringRate[FrontRight]) / 2
	rearRate := (cfg.SpringRate[RearLeft] + cfg.SpringRate[RearRight]) / 2
	frontDist := cfg.Wheelbase * frontPitchFraction
	rearDist := cfg.Wheelbase * rearPitchFraction
	return frontRate*frontDist*frontDist + rearRate*rearDist*rearDist
}

// suspensionMoments derives roll and pitch torques from the corner force
// imbalance.
func suspensionMoments(cfg *Config, f PerCorner) Moments {
	frontDist := cfg.Wheelbase * frontPitchFraction
	rearDist := cfg.Wheelbase * rearPitchFraction
	return Moments{
		Roll: (f[FrontLeft]-f[FrontRight])*cfg.TrackWidth[Front]/2 +
			(f[RearLeft]-f[RearRight])*cfg.TrackWidth[Rear]/2,
		Pitch: (f[FrontLeft]+f[FrontRight])*frontDist - (f[RearLeft]+f[RearRight])*rearDist,
		Yaw:   0,
	}
}
