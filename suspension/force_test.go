package suspension

import (
	"math"
	"testing"
)

func TestSpringForceBaseLaw(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableProgressive = false

	tests := []struct {
		name        string
		corner      Corner
		compression float64
	}{
		{"at preload", FrontLeft, cfg.SpringPreload[FrontLeft]},
		{"compressed", FrontLeft, 0.05},
		{"extended", RearRight, -0.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := springForce(&cfg, tt.corner, tt.compression)
			want := -cfg.SpringRate[tt.corner] * (tt.compression - cfg.SpringPreload[tt.corner])
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("springForce = %v, want %v", got, want)
			}
		})
	}
}

func TestSpringForceProgressiveMonotone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableProgressive = true

	// |F| must be non-decreasing as compression grows from the preload
	// position toward full travel.
	prev := 0.0
	steps := 200
	for k := 0; k <= steps; k++ {
		c := cfg.SpringPreload[FrontLeft] +
			(cfg.MaxCompression[FrontLeft]-cfg.SpringPreload[FrontLeft])*float64(k)/float64(steps)
		mag := math.Abs(springForce(&cfg, FrontLeft, c))
		if mag+1e-9 < prev {
			t.Fatalf("|springForce| decreased at c=%v: %v < %v", c, mag, prev)
		}
		prev = mag
	}
}

func TestSpringForceProgressiveStiffensBothDirections(t *testing.T) {
	cfg := DefaultConfig()

	cfg.EnableProgressive = false
	baseComp := springForce(&cfg, FrontLeft, 0.10)
	baseExt := springForce(&cfg, FrontLeft, -0.08)

	cfg.EnableProgressive = true
	progComp := springForce(&cfg, FrontLeft, 0.10)
	progExt := springForce(&cfg, FrontLeft, -0.08)

	if math.Abs(progComp) <= math.Abs(baseComp) {
		t.Errorf("progressive compression force %v should exceed base %v", progComp, baseComp)
	}
	if math.Abs(progExt) <= math.Abs(baseExt) {
		t.Errorf("progressive extension force %v should exceed base %v", progExt, baseExt)
	}
}

func TestDampingForceZeroVelocity(t *testing.T) {
	cfg := DefaultConfig()
	if got := dampingForce(&cfg, FrontLeft, 0, AmbientTemperature); got != 0 {
		t.Errorf("damping force at v=0 = %v, want 0", got)
	}
}

func TestDampingForceOpposesVelocity(t *testing.T) {
	cfg := DefaultConfig()
	if f := dampingForce(&cfg, FrontLeft, 0.5, AmbientTemperature); f >= 0 {
		t.Errorf("compression-stroke damping = %v, want negative", f)
	}
	if f := dampingForce(&cfg, FrontLeft, -0.5, AmbientTemperature); f <= 0 {
		t.Errorf("rebound-stroke damping = %v, want positive", f)
	}
}

func TestDampingForceStrokeAsymmetry(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.CompressionDamping[FrontLeft] == cfg.ReboundDamping[FrontLeft] {
		t.Fatal("test config must have asymmetric damping")
	}

	v := 0.8
	comp := math.Abs(dampingForce(&cfg, FrontLeft, v, AmbientTemperature))
	reb := math.Abs(dampingForce(&cfg, FrontLeft, -v, AmbientTemperature))
	if math.Abs(comp-reb) < 1e-9 {
		t.Errorf("expected asymmetric damping magnitudes, got %v for both strokes", comp)
	}
}

func TestDampingForceThermalScaling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableThermal = true

	v := -0.4
	cold := dampingForce(&cfg, RearLeft, v, AmbientTemperature)
	hot := dampingForce(&cfg, RearLeft, v, AmbientTemperature+10)

	// 10 °C over ambient scales the coefficient by 1.2.
	if math.Abs(hot-cold*1.2) > math.Abs(cold)*1e-9 {
		t.Errorf("hot damping = %v, want %v", hot, cold*1.2)
	}

	cfg.EnableThermal = false
	if got := dampingForce(&cfg, RearLeft, v, AmbientTemperature+10); got != cold {
		t.Errorf("thermal disabled: damping = %v, want %v", got, cold)
	}
}

func TestDampingForceQuadraticTermDominates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableThermal = false

	// At high shaft speed the v² term must exceed the linear term.
	v := 20.0
	total := math.Abs(dampingForce(&cfg, FrontLeft, v, AmbientTemperature))
	linear := cfg.CompressionDamping[FrontLeft] * v
	if total <= 2*linear-1e-9 {
		t.Errorf("at v=%v total %v should reflect dominant quadratic term (linear %v)", v, total, linear)
	}
}
