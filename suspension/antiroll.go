package suspension

// applyAntiRoll applies the anti-roll bar force correction for one axle.
// The bar resists the left/right compression differential: it subtracts
// force from the more compressed side and adds it to the other.
//
// The correction touches only the stored Force values, after integration
// has completed for all corners. It does not feed back into compression or
// velocity in the same step; the chassis solver reads Force and returns it
// as part of the next step's wheel loads, giving the bar a one-step lag.
func applyAntiRoll(cfg *Config, s *State, a Axle) {
	l, r := a.left(), a.right()
	track := cfg.TrackWidth[a]
	rollAngle := (s.Compression[l] - s.Compression[r]) / track
	torque := -cfg.AntiRollStiffness[a] * rollAngle
	forceDelta := torque / track
	s.Force[l] += forceDelta
	s.Force[r] -= forceDelta
}
