package suspension

import (
	"math"
	"testing"
)

func TestAccumulatorWorkMonotonic(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	var prevComp, prevReb float64
	for n := 0; n < 400; n++ {
		load := 3000.0 * math.Sin(float64(n)*0.25)
		e.Update(testDT, VehicleState{Mass: testMass}, PerCorner{load, load, -load, -load})

		snap := e.Telemetry()
		if snap.TotalCompressionWork < prevComp || snap.TotalReboundWork < prevReb {
			t.Fatalf("work decreased at tick %d: %v/%v after %v/%v",
				n, snap.TotalCompressionWork, snap.TotalReboundWork, prevComp, prevReb)
		}
		prevComp, prevReb = snap.TotalCompressionWork, snap.TotalReboundWork
	}

	if prevComp == 0 || prevReb == 0 {
		t.Errorf("expected both stroke directions to accumulate work, got %v / %v", prevComp, prevReb)
	}
}

func TestAccumulatorAverageForceEMA(t *testing.T) {
	var acc Accumulator
	s := State{Force: PerCorner{100, 0, 0, 0}}

	acc.record(&s, testDT)
	if math.Abs(acc.AverageForce[FrontLeft]-10) > 1e-9 {
		t.Errorf("first EMA step = %v, want 10", acc.AverageForce[FrontLeft])
	}

	acc.record(&s, testDT)
	if math.Abs(acc.AverageForce[FrontLeft]-19) > 1e-9 {
		t.Errorf("second EMA step = %v, want 19", acc.AverageForce[FrontLeft])
	}

	// Constant input converges to the input magnitude.
	for n := 0; n < 500; n++ {
		acc.record(&s, testDT)
	}
	if math.Abs(acc.AverageForce[FrontLeft]-100) > 0.01 {
		t.Errorf("EMA did not converge: %v", acc.AverageForce[FrontLeft])
	}
}

func TestAccumulatorTravelExtrema(t *testing.T) {
	var acc Accumulator

	s := State{Compression: PerCorner{0.05, -0.03, 0, 0}}
	acc.record(&s, testDT)

	if acc.MaxCompression[FrontLeft] != 0.05 {
		t.Errorf("max compression = %v, want 0.05", acc.MaxCompression[FrontLeft])
	}
	if acc.MaxExtension[FrontLeft] != 0 {
		t.Errorf("compressed corner must not register extension, got %v", acc.MaxExtension[FrontLeft])
	}
	if acc.MaxExtension[FrontRight] != 0.03 {
		t.Errorf("max extension = %v, want 0.03", acc.MaxExtension[FrontRight])
	}
	if acc.MaxCompression[FrontRight] != 0 {
		t.Errorf("extended corner must not register compression, got %v", acc.MaxCompression[FrontRight])
	}

	// Extrema never shrink.
	s.Compression = PerCorner{0.01, -0.01, 0, 0}
	acc.record(&s, testDT)
	if acc.MaxCompression[FrontLeft] != 0.05 || acc.MaxExtension[FrontRight] != 0.03 {
		t.Error("extrema must be monotonically non-decreasing")
	}
}

func TestAntiRollSymmetricCompressionIsNeutral(t *testing.T) {
	cfg := DefaultConfig()
	s := State{
		Compression: PerCorner{0.04, 0.04, 0.06, 0.06},
		Force:       PerCorner{1000, 1000, 1200, 1200},
	}

	applyAntiRoll(&cfg, &s, Front)
	applyAntiRoll(&cfg, &s, Rear)

	want := PerCorner{1000, 1000, 1200, 1200}
	if s.Force != want {
		t.Errorf("equal compression must yield zero correction, got %v", s.Force)
	}
}

func TestAntiRollResistsRoll(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Compression: PerCorner{0.06, 0.02, 0.04, 0.04}}

	applyAntiRoll(&cfg, &s, Front)

	// The more compressed left side is unloaded, the right side loaded,
	// by equal amounts.
	if s.Force[FrontLeft] >= 0 {
		t.Errorf("compressed side correction = %v, want negative", s.Force[FrontLeft])
	}
	if s.Force[FrontRight] != -s.Force[FrontLeft] {
		t.Errorf("corrections must be equal and opposite: %v vs %v", s.Force[FrontLeft], s.Force[FrontRight])
	}

	wantMag := cfg.AntiRollStiffness[Front] * 0.04 / (cfg.TrackWidth[Front] * cfg.TrackWidth[Front])
	if math.Abs(math.Abs(s.Force[FrontLeft])-wantMag) > 1e-9 {
		t.Errorf("correction magnitude = %v, want %v", math.Abs(s.Force[FrontLeft]), wantMag)
	}
}

func TestRollStiffnessFormula(t *testing.T) {
	cfg := DefaultConfig()
	rs := rollStiffness(&cfg)

	kl, kr := cfg.SpringRate[FrontLeft], cfg.SpringRate[FrontRight]
	tw := cfg.TrackWidth[Front]
	wantFront := kl*kr*tw*tw/(4*(kl+kr)) + cfg.AntiRollStiffness[Front]
	if math.Abs(rs.Front-wantFront) > 1e-9 {
		t.Errorf("front roll stiffness = %v, want %v", rs.Front, wantFront)
	}
	if math.Abs(rs.Total-(rs.Front+rs.Rear)) > 1e-9 {
		t.Errorf("total = %v, want front+rear", rs.Total)
	}
}

func TestPitchStiffnessUsesLeverArms(t *testing.T) {
	cfg := DefaultConfig()
	got := pitchStiffness(&cfg)

	frontRate := (cfg.SpringRate[FrontLeft] + cfg.SpringRate[FrontRight]) / 2
	rearRate := (cfg.SpringRate[RearLeft] + cfg.SpringRate[RearRight]) / 2
	fd := cfg.Wheelbase * 0.6
	rd := cfg.Wheelbase * 0.4
	want := frontRate*fd*fd + rearRate*rd*rd
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("pitch stiffness = %v, want %v", got, want)
	}
}

func TestSuspensionMoments(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("balanced forces give zero roll", func(t *testing.T) {
		m := suspensionMoments(&cfg, PerCorner{1000, 1000, 1000, 1000})
		if m.Roll != 0 {
			t.Errorf("roll = %v, want 0", m.Roll)
		}
	})

	t.Run("left-heavy forces roll", func(t *testing.T) {
		m := suspensionMoments(&cfg, PerCorner{1500, 500, 1500, 500})
		want := 1000*cfg.TrackWidth[Front]/2 + 1000*cfg.TrackWidth[Rear]/2
		if math.Abs(m.Roll-want) > 1e-9 {
			t.Errorf("roll = %v, want %v", m.Roll, want)
		}
	})

	t.Run("yaw is always zero", func(t *testing.T) {
		m := suspensionMoments(&cfg, PerCorner{123, -456, 789, -12})
		if m.Yaw != 0 {
			t.Errorf("yaw = %v, want 0", m.Yaw)
		}
	})
}

func TestForcesReportConsistent(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	for n := 0; n < 120; n++ {
		load := 2500.0 * math.Sin(float64(n)*0.2)
		e.Update(testDT, VehicleState{Mass: testMass}, PerCorner{load, -load, 0, 0})
	}

	rep := e.Forces()
	snap := e.Telemetry()
	if rep.Forces != snap.Force {
		t.Error("report forces must match stored state forces")
	}
	cfg := e.Config()
	if want := suspensionMoments(&cfg, snap.Force); rep.Moments != want {
		t.Errorf("moments = %+v, want %+v", rep.Moments, want)
	}
}
