package tricuspid

import "math"

// BinAngle is a fixed-point angle. One full turn is 2³¹ units, so the int32
// range covers two turns and overflow wraps by a whole number of turns.
// Multiplying a BinAngle by an integer rate is therefore exact modulo one
// turn, which is what makes integer-rate curves close on themselves without
// rounding drift.
type BinAngle int32

const (
	Deg30  BinAngle = 0x0aaaaaab
	Deg45  BinAngle = 1 << 28
	Deg60  BinAngle = 0x15555555
	Deg90  BinAngle = 1 << 29
	Deg180 BinAngle = 1 << 30

	// binTurn is the number of BinAngle units in one full turn. It does not
	// fit in a BinAngle.
	binTurn = 1 << 31
)

// OneDegree is one degree in radians.
const OneDegree = math.Pi / 180

// Radians converts a to radians in (−2π, 2π).
func (a BinAngle) Radians() float64 {
	return float64(a) * (2 * math.Pi / binTurn)
}

// Degrees converts a to degrees in (−360, 360).
func (a BinAngle) Degrees() float64 {
	return float64(a) * (360.0 / binTurn)
}

// Mul multiplies a by an integer rate, wrapping around whole turns.
func (a BinAngle) Mul(n int) BinAngle {
	return BinAngle(int32(a) * int32(n))
}

// Cossin returns the unit vector at angle a. Multiples of 90° are exact.
func (a BinAngle) Cossin() Vec2 {
	switch a {
	case 0:
		return Vec2{X: 1}
	case Deg90:
		return Vec2{Y: 1}
	case Deg180, -Deg180:
		return Vec2{X: -1}
	case -Deg90:
		return Vec2{Y: -1}
	}
	return VecFromAngle(a.Radians())
}

// BinFromRadians converts an angle in radians to the nearest BinAngle, after
// reducing it to one turn.
func BinFromRadians(th float64) BinAngle {
	return binFromTurns(th / (2 * math.Pi))
}

// BinFromDegrees converts an angle in degrees to the nearest BinAngle.
func BinFromDegrees(deg float64) BinAngle {
	return binFromTurns(deg / 360)
}

func binFromTurns(turns float64) BinAngle {
	turns -= math.Round(turns)
	// turns ∈ [−0.5, 0.5], well inside the int64 range once scaled.
	return BinAngle(int32(int64(math.Round(turns * binTurn))))
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * OneDegree
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(th float64) float64 {
	return th / OneDegree
}

// QuantizeRadians rounds th to the nearest angle representable as a
// BinAngle, keeping the number of whole turns.
func QuantizeRadians(th float64) float64 {
	turns := math.Round(th / (2 * math.Pi))
	return turns*2*math.Pi + BinFromRadians(th).Radians()
}
