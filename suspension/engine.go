package suspension

import "fmt"

const (
	// gravity is standard gravitational acceleration in m/s².
	gravity = 9.81

	// maxStep is the explicit-Euler stability bound in seconds. Larger
	// caller-supplied steps are truncated, never extrapolated.
	maxStep = 1.0 / 30.0

	// forceLimitFactor bounds the total corner force to
	// ±forceLimitFactor·SpringRate·MaxCompression.
	forceLimitFactor = 2.0
)

// VehicleState is the per-tick chassis input.
type VehicleState struct {
	Mass float64 // kg, > 0
}

// ForceReport is the output contract toward the chassis solver: vertical
// constraint forces per corner plus derived body torques and stiffness
// quantities.
type ForceReport struct {
	Forces         PerCorner
	Moments        Moments
	RollStiffness  RollStiffness
	PitchStiffness float64
}

// Snapshot is a deep, read-only copy of the dynamic state and accumulated
// telemetry, suitable for dashboards and tuning tools.
type Snapshot struct {
	Compression PerCorner
	Velocity    PerCorner
	Force       PerCorner
	Temperature PerCorner

	TotalCompressionWork float64
	TotalReboundWork     float64
	MaxCompression       PerCorner
	MaxExtension         PerCorner
	AverageForce         PerCorner

	LastUpdate float64
}

// Engine is the public facade over one vehicle's suspension. Construct
// with New, drive with Update once per simulation tick from a single
// goroutine.
type Engine struct {
	cfg      Config
	mass     float64 // construction-time mass, used for initialization
	state    State
	accum    Accumulator
	observer Observer
	simTime  float64
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithObserver attaches an observer for lifecycle events.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// New validates the config and returns an engine settled at static
// equilibrium for the given vehicle mass.
func New(cfg Config, mass float64, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suspension config: %w", err)
	}
	if mass <= 0 {
		return nil, fmt.Errorf("vehicle mass must be positive, got %g", mass)
	}
	e := &Engine{cfg: cfg, mass: mass}
	for _, opt := range opts {
		opt(e)
	}
	e.initialize()
	e.emit(EventInitialized)
	return e, nil
}

// initialize sets the static compression from the weight distribution.
// Mass is assumed evenly split across the four corners, matching the
// integrator's corner-mass simplification, so the initial state is the
// exact rest point of the dynamics under zero external load.
func (e *Engine) initialize() {
	e.state = State{}
	weight := e.mass * gravity / float64(NumCorners)
	for i := Corner(0); i < NumCorners; i++ {
		c := e.cfg.SpringPreload[i] + weight/e.cfg.SpringRate[i]
		e.state.Compression[i] = clamp(c, -e.cfg.MaxExtension[i], e.cfg.MaxCompression[i])
		e.state.Temperature[i] = AmbientTemperature
	}
	e.state.LastUpdate = e.simTime
}

// Update advances the suspension by one step: per-corner integration,
// anti-roll correction, thermal update, telemetry accumulation. It never
// fails; invalid inputs are a contract violation, not a runtime error.
//
// loads holds the external vertical wheel load per corner in newtons,
// positive pressing the wheel into the body (weight transfer, tire
// contact). dt larger than the stability bound is silently truncated.
func (e *Engine) Update(dt float64, vehicle VehicleState, loads PerCorner) {
	if dt > maxStep {
		dt = maxStep
	}

	cornerMass := vehicle.Mass / float64(NumCorners)
	weight := cornerMass * gravity
	s := &e.state

	for i := Corner(0); i < NumCorners; i++ {
		spring := springForce(&e.cfg, i, s.Compression[i])
		damping := dampingForce(&e.cfg, i, s.Velocity[i], s.Temperature[i])

		// The static corner weight participates so the rest point of
		// the dynamics coincides with the weight-determined static
		// compression.
		total := spring + damping + loads[i] + weight

		limit := forceLimitFactor * e.cfg.SpringRate[i] * e.cfg.MaxCompression[i]
		total = clamp(total, -limit, limit)

		// Semi-implicit Euler.
		s.Velocity[i] += total / cornerMass * dt
		s.Compression[i] += s.Velocity[i] * dt

		// Travel clamp is the last write to compression each step so
		// the invariant holds unconditionally. Velocity is left
		// uncorrected when a corner pins at a limit; accepted
		// approximation.
		s.Compression[i] = clamp(s.Compression[i], -e.cfg.MaxExtension[i], e.cfg.MaxCompression[i])

		s.Force[i] = total
	}

	if e.cfg.EnableAntiRoll {
		applyAntiRoll(&e.cfg, s, Front)
		applyAntiRoll(&e.cfg, s, Rear)
	}

	if e.cfg.EnableThermal {
		for i := Corner(0); i < NumCorners; i++ {
			updateTemperature(s, i, dt)
		}
	}

	e.accum.record(s, dt)

	e.simTime += dt
	s.LastUpdate = e.simTime
	e.emit(EventUpdated)
}

// Adjust applies multiplicative tuning deltas to the spring, damping and
// anti-roll parameters in place. Takes effect on the next Update.
func (e *Engine) Adjust(adj Adjustments) {
	adj.apply(&e.cfg)
	e.emit(EventAdjusted)
}

// Reset reinitializes the dynamic state and clears accumulated telemetry.
// The config, including any applied adjustments, is untouched.
func (e *Engine) Reset() {
	e.initialize()
	e.accum = Accumulator{}
	e.emit(EventReset)
}

// Forces returns the current output toward the chassis solver. Read-only,
// no side effects.
func (e *Engine) Forces() ForceReport {
	return ForceReport{
		Forces:         e.state.Force,
		Moments:        suspensionMoments(&e.cfg, e.state.Force),
		RollStiffness:  rollStiffness(&e.cfg),
		PitchStiffness: pitchStiffness(&e.cfg),
	}
}

// Telemetry returns a deep snapshot of state and accumulated telemetry.
func (e *Engine) Telemetry() Snapshot {
	return Snapshot{
		Compression:          e.state.Compression,
		Velocity:             e.state.Velocity,
		Force:                e.state.Force,
		Temperature:          e.state.Temperature,
		TotalCompressionWork: e.accum.TotalCompressionWork,
		TotalReboundWork:     e.accum.TotalReboundWork,
		MaxCompression:       e.accum.MaxCompression,
		MaxExtension:         e.accum.MaxExtension,
		AverageForce:         e.accum.AverageForce,
		LastUpdate:           e.state.LastUpdate,
	}
}

// Config returns a copy of the current configuration, including any
// adjustments applied so far.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) emit(t EventType) {
	if e.observer != nil {
		e.observer.HandleSuspensionEvent(Event{Type: t, SimTime: e.simTime})
	}
}
