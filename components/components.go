// Package components contains ECS components for the fleet simulation.
package components

import "github.com/pthm-cable/strut/suspension"

// Vehicle holds chassis-level state of one fleet vehicle.
type Vehicle struct {
	ID       uint32
	Mass     float64 // kg
	Speed    float64 // m/s, constant cruise speed
	Odometer float64 // m driven since spawn

	// LaneOffset is a fixed longitudinal phase offset so vehicles do not
	// all ride the same stretch of road in lockstep.
	LaneOffset float64
}

// WheelState holds the most recent external vertical loads fed into the
// vehicle's suspension engine, in newtons per corner.
type WheelState struct {
	Loads suspension.PerCorner
}

// SuspensionRef attaches a vehicle's suspension engine to its entity. The
// engine is owned exclusively by this entity for its whole lifetime.
type SuspensionRef struct {
	Engine *suspension.Engine
}
