// Package config provides configuration loading and access for the fleet
// simulation and its suspension setup.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Vehicle    VehicleConfig    `yaml:"vehicle"`
	Suspension SuspensionConfig `yaml:"suspension"`
	Road       RoadConfig       `yaml:"road"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// VehicleConfig holds chassis-level parameters.
type VehicleConfig struct {
	Mass       float64 `yaml:"mass"`        // kg
	Wheelbase  float64 `yaml:"wheelbase"`   // m
	TrackFront float64 `yaml:"track_front"` // m
	TrackRear  float64 `yaml:"track_rear"`  // m
	CGHeight   float64 `yaml:"cg_height"`   // m
	Speed      float64 `yaml:"speed"`       // m/s, nominal fleet cruise speed
}

// SuspensionConfig holds the per-corner physical parameters. Corner lists
// are ordered FL, FR, RL, RR; a single value broadcasts to all corners.
// Axle lists are ordered front, rear.
type SuspensionConfig struct {
	SpringRate         []float64 `yaml:"spring_rate"`         // N/m
	SpringPreload      []float64 `yaml:"spring_preload"`      // m
	MaxCompression     []float64 `yaml:"max_compression"`     // m
	MaxExtension       []float64 `yaml:"max_extension"`       // m
	Damping            []float64 `yaml:"damping"`             // N·s/m
	ReboundDamping     []float64 `yaml:"rebound_damping"`     // N·s/m
	CompressionDamping []float64 `yaml:"compression_damping"` // N·s/m
	AntiRollStiffness  []float64 `yaml:"anti_roll_stiffness"` // N·m/rad

	EnableAntiRoll    bool `yaml:"enable_anti_roll"`
	EnableProgressive bool `yaml:"enable_progressive"`
	EnableThermal     bool `yaml:"enable_thermal"`
}

// RoadConfig holds the road excitation model parameters.
type RoadConfig struct {
	Wavelengths    []float64 `yaml:"wavelengths"`     // m, one sine component each
	Amplitudes     []float64 `yaml:"amplitudes"`      // m, matched to wavelengths
	BumpSpacing    float64   `yaml:"bump_spacing"`    // m between discrete bumps (0 = none)
	BumpHeight     float64   `yaml:"bump_height"`     // m
	BumpWidth      float64   `yaml:"bump_width"`      // m
	LoadScale      float64   `yaml:"load_scale"`      // N per m of elevation (tire stiffness proxy)
	CrossfallShift float64   `yaml:"crossfall_shift"` // m, right-track longitudinal offset
}

// SimulationConfig holds fleet run parameters.
type SimulationConfig struct {
	DT          float64 `yaml:"dt"`           // s per tick
	Vehicles    int     `yaml:"vehicles"`     // fleet size
	SpeedJitter float64 `yaml:"speed_jitter"` // fractional per-vehicle speed spread
	MassJitter  float64 `yaml:"mass_jitter"`  // fractional per-vehicle mass spread
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // s per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WindowTicks int // stats window length in ticks
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived normalizes list lengths and calculates derived values.
func (c *Config) computeDerived() {
	// Broadcast short corner/axle lists to their full length so a user
	// config can give a single value for symmetric setups.
	s := &c.Suspension
	for _, list := range []*[]float64{
		&s.SpringRate, &s.SpringPreload, &s.MaxCompression, &s.MaxExtension,
		&s.Damping, &s.ReboundDamping, &s.CompressionDamping,
	} {
		*list = broadcast(*list, 4)
	}
	s.AntiRollStiffness = broadcast(s.AntiRollStiffness, 2)

	if c.Simulation.DT <= 0 {
		c.Simulation.DT = 1.0 / 60.0
	}
	if c.Simulation.Vehicles <= 0 {
		c.Simulation.Vehicles = 1
	}

	ticks := int(c.Telemetry.StatsWindow / c.Simulation.DT)
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.WindowTicks = ticks
}

// broadcast pads list to n entries by repeating the last value. Empty lists
// stay empty; validation happens at engine construction.
func broadcast(list []float64, n int) []float64 {
	if len(list) == 0 || len(list) >= n {
		return list
	}
	out := make([]float64, n)
	copy(out, list)
	for i := len(list); i < n; i++ {
		out[i] = list[len(list)-1]
	}
	return out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
