package suspension

import "fmt"

// Config holds the immutable per-corner physical parameters of a suspension
// setup. It is set once at engine construction; Adjust mutates it in place
// via multiplicative deltas. Values are SI: meters, newtons, N/m, N·s/m,
// N·m/rad.
type Config struct {
	SpringRate     PerCorner // N/m, > 0
	SpringPreload  PerCorner // m, > 0
	MaxCompression PerCorner // m, > 0
	MaxExtension   PerCorner // m, > 0

	Damping            PerCorner // N·s/m, > 0, base coefficient
	ReboundDamping     PerCorner // N·s/m, > 0, used when extending
	CompressionDamping PerCorner // N·s/m, > 0, used when compressing

	AntiRollStiffness PerAxle // N·m/rad, >= 0

	Wheelbase  float64 // m, > 0
	TrackWidth PerAxle // m, > 0
	CGHeight   float64 // m, > 0

	EnableAntiRoll    bool
	EnableProgressive bool
	EnableThermal     bool
}

// Validate checks the construction contract. Update assumes a valid config
// and performs no runtime checks of its own.
func (c *Config) Validate() error {
	for i := Corner(0); i < NumCorners; i++ {
		if c.SpringRate[i] <= 0 {
			return fmt.Errorf("spring rate %s must be positive, got %g", i, c.SpringRate[i])
		}
		if c.SpringPreload[i] <= 0 {
			return fmt.Errorf("spring preload %s must be positive, got %g", i, c.SpringPreload[i])
		}
		if c.MaxCompression[i] <= 0 {
			return fmt.Errorf("max compression %s must be positive, got %g", i, c.MaxCompression[i])
		}
		if c.MaxExtension[i] <= 0 {
			return fmt.Errorf("max extension %s must be positive, got %g", i, c.MaxExtension[i])
		}
		if c.Damping[i] <= 0 || c.ReboundDamping[i] <= 0 || c.CompressionDamping[i] <= 0 {
			return fmt.Errorf("damping coefficients %s must be positive", i)
		}
	}
	for a := Axle(0); a < NumAxles; a++ {
		if c.AntiRollStiffness[a] < 0 {
			return fmt.Errorf("anti-roll stiffness axle %d must be non-negative, got %g", a, c.AntiRollStiffness[a])
		}
		if c.TrackWidth[a] <= 0 {
			return fmt.Errorf("track width axle %d must be positive, got %g", a, c.TrackWidth[a])
		}
	}
	if c.Wheelbase <= 0 {
		return fmt.Errorf("wheelbase must be positive, got %g", c.Wheelbase)
	}
	if c.CGHeight <= 0 {
		return fmt.Errorf("cg height must be positive, got %g", c.CGHeight)
	}
	return nil
}

// Adjustments holds multiplicative tuning deltas. Each field scales its
// target as value *= (1 + delta), so the zero value is a no-op and a delta
// of 1 doubles the target. Damping scales the base coefficient and both
// stroke variants together.
type Adjustments struct {
	SpringRate         PerCorner
	Damping            PerCorner
	ReboundDamping     PerCorner
	CompressionDamping PerCorner
	AntiRollStiffness  PerAxle
}

// apply mutates cfg in place.
func (adj *Adjustments) apply(cfg *Config) {
	for i := Corner(0); i < NumCorners; i++ {
		cfg.SpringRate[i] *= 1 + adj.SpringRate[i]
		cfg.Damping[i] *= 1 + adj.Damping[i]
		cfg.ReboundDamping[i] *= (1 + adj.Damping[i]) * (1 + adj.ReboundDamping[i])
		cfg.CompressionDamping[i] *= (1 + adj.Damping[i]) * (1 + adj.CompressionDamping[i])
	}
	for a := Axle(0); a < NumAxles; a++ {
		cfg.AntiRollStiffness[a] *= 1 + adj.AntiRollStiffness[a]
	}
}

// DefaultConfig returns a setup for a mid-size road car. Used by tests and
// as the fallback when no configuration file is supplied.
func DefaultConfig() Config {
	return Config{
		SpringRate:         PerCorner{70000, 70000, 76000, 76000},
		SpringPreload:      PerCorner{0.01, 0.01, 0.01, 0.01},
		MaxCompression:     PerCorner{0.12, 0.12, 0.12, 0.12},
		MaxExtension:       PerCorner{0.09, 0.09, 0.09, 0.09},
		Damping:            PerCorner{3200, 3200, 3400, 3400},
		ReboundDamping:     PerCorner{4200, 4200, 4400, 4400},
		CompressionDamping: PerCorner{2600, 2600, 2800, 2800},
		AntiRollStiffness:  PerAxle{18000, 16000},
		Wheelbase:          2.7,
		TrackWidth:         PerAxle{1.6, 1.6},
		CGHeight:           0.55,
		EnableAntiRoll:     true,
		EnableProgressive:  false,
		EnableThermal:      true,
	}
}
