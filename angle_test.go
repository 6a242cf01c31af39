package tricuspid

import (
	"math"
	"testing"
)

func TestBinAngleConversions(t *testing.T) {
	if got := Deg90.Radians(); !approxEqual(got, math.Pi/2, 1e-15) {
		t.Errorf("got %v, want π/2", got)
	}
	if got := Deg180.Degrees(); got != 180 {
		t.Errorf("got %v, want 180", got)
	}
	for _, deg := range []float64{0, 30, 45, 60, 90, 180, -90} {
		if got := BinFromDegrees(deg).Degrees(); !approxEqual(got, deg, 1e-6) {
			t.Errorf("%v degrees round-tripped to %v", deg, got)
		}
	}
	diff(t, Deg30, BinFromDegrees(30))
	diff(t, Deg60, BinFromDegrees(60))
	diff(t, Deg45, BinFromRadians(math.Pi/4))
	// Whole turns are reduced away.
	diff(t, Deg90, BinFromDegrees(450))
	diff(t, -Deg90, BinFromRadians(-5*math.Pi/2))
}

func TestBinAngleMulWraps(t *testing.T) {
	// 5·90° overflows int32 and wraps by whole turns.
	got := Deg90.Mul(5).Cossin()
	want := Deg90.Cossin()
	assertNear(t, Point(got), Point(want), 1e-15)

	if got := Deg45.Mul(-2); got != -Deg90 {
		t.Errorf("got %v, want %v", got, -Deg90)
	}
}

func TestBinAngleCossinQuadrants(t *testing.T) {
	diff(t, Vec2{X: 1}, BinAngle(0).Cossin())
	diff(t, Vec2{Y: 1}, Deg90.Cossin())
	diff(t, Vec2{X: -1}, Deg180.Cossin())
	diff(t, Vec2{X: -1}, (-Deg180).Cossin())
	diff(t, Vec2{Y: -1}, (-Deg90).Cossin())
	assertNear(t, Point(Deg45.Cossin()), Pt(math.Sqrt2/2, math.Sqrt2/2), 1e-15)
}

func TestDegreesRadians(t *testing.T) {
	if got := DegreesToRadians(180); !approxEqual(got, math.Pi, 1e-15) {
		t.Errorf("got %v, want π", got)
	}
	if got := RadiansToDegrees(OneDegree); !approxEqual(got, 1, 1e-15) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestQuantizeRadians(t *testing.T) {
	const unit = 2 * math.Pi / binTurn
	for _, th := range []float64{0.1, 1, -3, 7, 100} {
		q := QuantizeRadians(th)
		if d := math.Abs(q - th); d > unit {
			t.Errorf("%v quantized to %v", th, q)
		}
		if q2 := QuantizeRadians(q); q2 != q {
			t.Errorf("quantizing %v twice gave %v", q, q2)
		}
	}
}
