// Package main runs the headless suspension fleet simulation.
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/strut/config"
	"github.com/pthm-cable/strut/systems"
	"github.com/pthm-cable/strut/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logPerf := flag.Bool("log-perf", false, "Output perf stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 36000, "Stop after N ticks")
	vehicles := flag.Int("vehicles", 0, "Fleet size (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *vehicles > 0 {
		cfg.Simulation.Vehicles = *vehicles
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	dt := cfg.Simulation.DT
	collector := telemetry.NewCollector(statsWindowSec, dt)
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(rngSeed))
	n, err := systems.SpawnFleet(world, rng)
	if err != nil {
		slog.Error("failed to spawn fleet", "error", err)
		os.Exit(1)
	}

	road := systems.NewRoad(cfg.Road)
	fleet := systems.NewFleetSystem(world, road, dt, collector)

	slog.Info("simulation start",
		"vehicles", n,
		"dt", dt,
		"max_ticks", *maxTicks,
		"seed", rngSeed,
		"output_dir", om.Dir(),
	)

	start := time.Now()
	for tick := 0; tick < *maxTicks; tick++ {
		perf.StartTick()

		perf.StartPhase(telemetry.PhaseRoad)
		fleet.SampleRoads(world)

		perf.StartPhase(telemetry.PhaseSuspension)
		fleet.Step(world)

		perf.StartPhase(telemetry.PhaseTelemetry)
		if collector.ShouldFlush(fleet.Tick()) {
			stats := collector.Flush(fleet.Tick(), fleet.Gather(world))
			if *logStats {
				stats.LogStats()
			}
			if err := om.WriteTelemetry(stats); err != nil {
				slog.Error("failed to write telemetry", "error", err)
			}

			perfStats := perf.Stats()
			if *logPerf {
				perfStats.LogStats()
			}
			if err := om.WritePerf(perfStats, fleet.Tick()); err != nil {
				slog.Error("failed to write perf stats", "error", err)
			}
		}

		perf.EndTick()
	}

	elapsed := time.Since(start)
	slog.Info("simulation done",
		"ticks", fleet.Tick(),
		"sim_seconds", float64(fleet.Tick())*dt,
		"wall_seconds", elapsed.Seconds(),
	)
}
