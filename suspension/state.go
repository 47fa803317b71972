package suspension

// State holds the mutable per-corner dynamic state of one vehicle's
// suspension. It is owned exclusively by an Engine; callers read it
// through Engine.Telemetry.
type State struct {
	// Compression is the spring displacement from the free position in
	// meters, positive when compressed. Always within
	// [-MaxExtension[i], MaxCompression[i]] after any update.
	Compression PerCorner

	// Velocity is the compression rate in m/s, positive while
	// compressing.
	Velocity PerCorner

	// Force is the total vertical force stored for the chassis solver,
	// in newtons, bounded by ±2·SpringRate[i]·MaxCompression[i] before
	// the anti-roll correction.
	Force PerCorner

	// Temperature is the damper temperature in °C, never below
	// AmbientTemperature.
	Temperature PerCorner

	// LastUpdate is the engine sim-time in seconds at the end of the
	// most recent update. Advisory only.
	LastUpdate float64
}
