// Package suspension implements a per-wheel spring-damper model for a
// four-corner vehicle. It converts chassis motion and external wheel loads
// into vertical suspension forces, tracks damper temperature and cumulative
// work, and derives roll/pitch stiffness and body moments for a rigid-body
// chassis solver.
//
// The package is pure computation: no I/O, no logging, no goroutines. One
// Engine instance belongs to exactly one vehicle and must not be mutated
// from multiple goroutines without external synchronization.
package suspension

// Corner indexes one of the four wheel positions.
type Corner int

const (
	FrontLeft Corner = iota
	FrontRight
	RearLeft
	RearRight
	NumCorners
)

// Axle indexes the front or rear axle.
type Axle int

const (
	Front Axle = iota
	Rear
	NumAxles
)

// PerCorner holds one value per wheel corner, indexed by Corner.
// Being a fixed-size array it copies by value, which the snapshot
// accessors rely on.
type PerCorner [NumCorners]float64

// PerAxle holds one value per axle, indexed by Axle.
type PerAxle [NumAxles]float64

var cornerNames = [NumCorners]string{"FL", "FR", "RL", "RR"}

func (c Corner) String() string {
	if c < 0 || c >= NumCorners {
		return "??"
	}
	return cornerNames[c]
}

// Axle returns the axle this corner belongs to.
func (c Corner) Axle() Axle {
	if c == FrontLeft || c == FrontRight {
		return Front
	}
	return Rear
}

// left and right return the corner pair for an axle.
func (a Axle) left() Corner {
	if a == Front {
		return FrontLeft
	}
	return RearLeft
}

func (a Axle) right() Corner {
	if a == Front {
		return FrontRight
	}
	return RearRight
}
