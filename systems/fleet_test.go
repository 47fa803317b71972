package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/strut/config"
	"github.com/pthm-cable/strut/suspension"
	"github.com/pthm-cable/strut/telemetry"
)

func init() {
	config.MustInit("")
}

func newTestFleet(t *testing.T, collector *telemetry.Collector) (*ecs.World, *FleetSystem) {
	t.Helper()
	w := ecs.NewWorld()
	rng := rand.New(rand.NewSource(42))
	if _, err := SpawnFleet(w, rng); err != nil {
		t.Fatalf("SpawnFleet: %v", err)
	}
	road := NewRoad(config.Cfg().Road)
	return w, NewFleetSystem(w, road, config.Cfg().Simulation.DT, collector)
}

func TestEngineConfigFromDefaults(t *testing.T) {
	engineCfg := EngineConfig()
	if err := engineCfg.Validate(); err != nil {
		t.Fatalf("default config must produce a valid engine config: %v", err)
	}
	if engineCfg.Wheelbase != config.Cfg().Vehicle.Wheelbase {
		t.Errorf("wheelbase = %v, want %v", engineCfg.Wheelbase, config.Cfg().Vehicle.Wheelbase)
	}
}

func TestSpawnFleetCount(t *testing.T) {
	w := ecs.NewWorld()
	n, err := SpawnFleet(w, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("SpawnFleet: %v", err)
	}
	if want := config.Cfg().Simulation.Vehicles; n != want {
		t.Errorf("spawned %d vehicles, want %d", n, want)
	}
}

func TestFleetUpdateAdvancesVehicles(t *testing.T) {
	w, fleet := newTestFleet(t, nil)

	for n := 0; n < 120; n++ {
		fleet.Update(w)
	}
	if fleet.Tick() != 120 {
		t.Errorf("tick = %d, want 120", fleet.Tick())
	}

	sample := fleet.Gather(w)
	if sample.Vehicles != config.Cfg().Simulation.Vehicles {
		t.Fatalf("gathered %d vehicles, want %d", sample.Vehicles, config.Cfg().Simulation.Vehicles)
	}
	if len(sample.Compressions) != sample.Vehicles*int(suspension.NumCorners) {
		t.Errorf("gathered %d compression samples, want %d",
			len(sample.Compressions), sample.Vehicles*int(suspension.NumCorners))
	}

	// Driving a bumpy road must accumulate damper work.
	if sample.CompressionWork <= 0 || sample.ReboundWork <= 0 {
		t.Errorf("expected positive damper work, got %v / %v", sample.CompressionWork, sample.ReboundWork)
	}

	// Invariants hold across the whole fleet.
	engineCfg := EngineConfig()
	maxTravel := 0.0
	for i := suspension.Corner(0); i < suspension.NumCorners; i++ {
		maxTravel = math.Max(maxTravel, engineCfg.MaxCompression[i])
	}
	for _, c := range sample.Compressions {
		if math.IsNaN(c) || math.Abs(c) > maxTravel+1e-9 {
			t.Fatalf("fleet compression %v out of range", c)
		}
	}
	for _, temp := range sample.Temperatures {
		if temp < suspension.AmbientTemperature {
			t.Fatalf("fleet temperature %v below ambient", temp)
		}
	}
}

func TestFleetVehiclesDiverge(t *testing.T) {
	w, fleet := newTestFleet(t, nil)
	for n := 0; n < 300; n++ {
		fleet.Update(w)
	}

	// Lane offsets and jittered speeds must put vehicles on different
	// stretches of road, so their states differ.
	sample := fleet.Gather(w)
	first := sample.Compressions[0]
	same := true
	for _, c := range sample.Compressions[suspension.NumCorners:] {
		if c != first {
			same = false
			break
		}
	}
	if same {
		t.Error("all vehicles share identical compression; fleet did not decorrelate")
	}
}

func TestFleetAdjustReachesEveryEngine(t *testing.T) {
	collector := telemetry.NewCollector(5, config.Cfg().Simulation.DT)
	w, fleet := newTestFleet(t, collector)

	before := EngineConfig().SpringRate[suspension.FrontLeft]
	fleet.Adjust(w, suspension.Adjustments{SpringRate: suspension.PerCorner{1, 1, 1, 1}})

	// Every engine must report the doubled rate via its config copy.
	query := fleet.filter.Query()
	for query.Next() {
		_, _, sus := query.Get()
		got := sus.Engine.Config().SpringRate[suspension.FrontLeft]
		if math.Abs(got-2*before) > 1e-9 {
			t.Fatalf("engine spring rate = %v, want %v", got, 2*before)
		}
	}

	stats := collector.Flush(fleet.Tick(), fleet.Gather(w))
	if stats.Adjustments != 1 {
		t.Errorf("recorded %d adjustments, want 1", stats.Adjustments)
	}
}
