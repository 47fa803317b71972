package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/strut/components"
	"github.com/pthm-cable/strut/config"
	"github.com/pthm-cable/strut/suspension"
	"github.com/pthm-cable/strut/telemetry"
)

// travelLimitEps is the slack under the configured travel bound below
// which a corner counts as riding its limit.
const travelLimitEps = 1e-4

// EngineConfig builds a suspension.Config from the loaded configuration.
func EngineConfig() suspension.Config {
	cfg := config.Cfg()
	s := cfg.Suspension
	return suspension.Config{
		SpringRate:         perCorner(s.SpringRate),
		SpringPreload:      perCorner(s.SpringPreload),
		MaxCompression:     perCorner(s.MaxCompression),
		MaxExtension:       perCorner(s.MaxExtension),
		Damping:            perCorner(s.Damping),
		ReboundDamping:     perCorner(s.ReboundDamping),
		CompressionDamping: perCorner(s.CompressionDamping),
		AntiRollStiffness:  perAxle(s.AntiRollStiffness),
		Wheelbase:          cfg.Vehicle.Wheelbase,
		TrackWidth:         suspension.PerAxle{cfg.Vehicle.TrackFront, cfg.Vehicle.TrackRear},
		CGHeight:           cfg.Vehicle.CGHeight,
		EnableAntiRoll:     s.EnableAntiRoll,
		EnableProgressive:  s.EnableProgressive,
		EnableThermal:      s.EnableThermal,
	}
}

func perCorner(list []float64) suspension.PerCorner {
	var out suspension.PerCorner
	copy(out[:], list)
	return out
}

func perAxle(list []float64) suspension.PerAxle {
	var out suspension.PerAxle
	copy(out[:], list)
	return out
}

// SpawnFleet creates the configured number of vehicle entities, each with
// its own suspension engine settled at static equilibrium. Per-vehicle
// mass and speed are jittered around the configured nominals.
func SpawnFleet(w *ecs.World, rng *rand.Rand) (int, error) {
	cfg := config.Cfg()
	engineCfg := EngineConfig()
	mapper := ecs.NewMap3[components.Vehicle, components.WheelState, components.SuspensionRef](w)

	n := cfg.Simulation.Vehicles
	for i := 0; i < n; i++ {
		mass := cfg.Vehicle.Mass * (1 + cfg.Simulation.MassJitter*(rng.Float64()*2-1))
		speed := cfg.Vehicle.Speed * (1 + cfg.Simulation.SpeedJitter*(rng.Float64()*2-1))

		engine, err := suspension.New(engineCfg, mass)
		if err != nil {
			return i, fmt.Errorf("building suspension for vehicle %d: %w", i, err)
		}

		veh := components.Vehicle{
			ID:         uint32(i),
			Mass:       mass,
			Speed:      speed,
			LaneOffset: rng.Float64() * 500,
		}
		mapper.NewEntity(&veh, &components.WheelState{}, &components.SuspensionRef{Engine: engine})
	}
	return n, nil
}

// FleetSystem advances every vehicle's suspension one step per Update:
// odometer integration, road load sampling, engine update, and travel-limit
// event recording.
type FleetSystem struct {
	filter    ecs.Filter3[components.Vehicle, components.WheelState, components.SuspensionRef]
	road      *Road
	dt        float64
	tick      int32
	collector *telemetry.Collector // may be nil
}

// NewFleetSystem creates a new fleet system. collector may be nil to
// disable event recording.
func NewFleetSystem(w *ecs.World, road *Road, dt float64, collector *telemetry.Collector) *FleetSystem {
	return &FleetSystem{
		filter:    *ecs.NewFilter3[components.Vehicle, components.WheelState, components.SuspensionRef](w),
		road:      road,
		dt:        dt,
		collector: collector,
	}
}

// Update runs one full simulation tick over the whole fleet.
func (s *FleetSystem) Update(w *ecs.World) {
	s.SampleRoads(w)
	s.Step(w)
}

// SampleRoads advances odometers and refreshes every vehicle's wheel
// loads from the road profile. Split from Step so callers can time the
// two phases separately.
func (s *FleetSystem) SampleRoads(w *ecs.World) {
	query := s.filter.Query()
	for query.Next() {
		veh, wheels, sus := query.Get()

		veh.Odometer += veh.Speed * s.dt
		x := veh.Odometer + veh.LaneOffset
		wheels.Loads = s.road.WheelLoads(x, sus.Engine.Config().Wheelbase)
	}
}

// Step advances every suspension engine by one tick using the current
// wheel loads and records travel-limit events.
func (s *FleetSystem) Step(w *ecs.World) {
	query := s.filter.Query()
	for query.Next() {
		veh, wheels, sus := query.Get()

		sus.Engine.Update(s.dt, suspension.VehicleState{Mass: veh.Mass}, wheels.Loads)

		if s.collector != nil {
			engineCfg := sus.Engine.Config()
			snap := sus.Engine.Telemetry()
			for i := suspension.Corner(0); i < suspension.NumCorners; i++ {
				if snap.Compression[i] >= engineCfg.MaxCompression[i]-travelLimitEps {
					s.collector.RecordBumpStop()
				} else if snap.Compression[i] <= -engineCfg.MaxExtension[i]+travelLimitEps {
					s.collector.RecordTopOut()
				}
			}
		}
	}
	s.tick++
}

// Tick returns the number of completed update ticks.
func (s *FleetSystem) Tick() int32 {
	return s.tick
}

// Adjust applies the same tuning deltas to every vehicle in the fleet and
// records the adjustment.
func (s *FleetSystem) Adjust(w *ecs.World, adj suspension.Adjustments) {
	query := s.filter.Query()
	for query.Next() {
		_, _, sus := query.Get()
		sus.Engine.Adjust(adj)
	}
	if s.collector != nil {
		s.collector.RecordAdjustment()
	}
}

// Gather samples the whole fleet for a stats window flush.
func (s *FleetSystem) Gather(w *ecs.World) telemetry.FleetSample {
	sample := telemetry.FleetSample{}

	query := s.filter.Query()
	for query.Next() {
		_, _, sus := query.Get()
		snap := sus.Engine.Telemetry()

		sample.Vehicles++
		for i := suspension.Corner(0); i < suspension.NumCorners; i++ {
			sample.Compressions = append(sample.Compressions, snap.Compression[i])
			sample.Temperatures = append(sample.Temperatures, snap.Temperature[i])
			sample.AbsForces = append(sample.AbsForces, snap.AverageForce[i])
		}
		sample.CompressionWork += snap.TotalCompressionWork
		sample.ReboundWork += snap.TotalReboundWork
	}
	return sample
}
