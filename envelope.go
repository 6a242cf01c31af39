package tricuspid

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerate is wrapped by every error reporting a pair of circle
	// rates for which the envelope is undefined.
	ErrDegenerate = errors.New("degenerate circle rates")

	// ErrZeroRate: a circle of zero curvature is a line.
	ErrZeroRate = fmt.Errorf("%w: zero rate", ErrDegenerate)
	// ErrEqualRates: with a = b the chord passes through the same point
	// twice and is indeterminate.
	ErrEqualRates = fmt.Errorf("%w: equal rates", ErrDegenerate)
	// ErrOppositeRates: with a = −b all chords are parallel and the
	// envelope is at infinity.
	ErrOppositeRates = fmt.Errorf("%w: opposite rates", ErrDegenerate)
	// ErrNonFiniteRate: a rate is NaN or infinite.
	ErrNonFiniteRate = fmt.Errorf("%w: non-finite rate", ErrDegenerate)

	// ErrNotIntegral is returned when an operation that works on binary
	// angles is used with rates that aren't integers.
	ErrNotIntegral = errors.New("rates are not integers")
)

// Envelope is the envelope of the chords joining a point on a circle of
// radius 1/A to a point on a circle of radius 1/B, both centered on the
// origin. For a curve parameter t, the first point sits at angle A·t and the
// second at angle B·t, so both travel the arc length t.
//
// With Reflect set, the point on the B circle is reflected through the
// origin. This puts a cusp at t = 0 instead of an asymptote, which is the
// convenient form for real, non-integer rates.
//
// The zero value is not valid; see [Envelope.Validate].
type Envelope struct {
	A, B    float64
	Reflect bool
}

// NewEnvelope returns the envelope for the rates a and b, or an error
// wrapping [ErrDegenerate] if they don't define a curve.
func NewEnvelope(a, b float64, reflect bool) (Envelope, error) {
	e := Envelope{A: a, B: b, Reflect: reflect}
	if err := e.Validate(); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// Validate checks the four degeneracy conditions a ≠ 0, b ≠ 0, a ≠ b and
// a + b ≠ 0. Eval does not check them; callers must.
func (e Envelope) Validate() error {
	var err error
	switch {
	case math.IsNaN(e.A) || math.IsNaN(e.B) || math.IsInf(e.A, 0) || math.IsInf(e.B, 0):
		err = ErrNonFiniteRate
	case e.A == 0 || e.B == 0:
		err = ErrZeroRate
	case e.A == e.B:
		err = ErrEqualRates
	case e.A+e.B == 0:
		err = ErrOppositeRates
	default:
		return nil
	}
	return fmt.Errorf("rates (%g, %g): %w", e.A, e.B, err)
}

// Integral reports whether both rates are integers that fit a BinAngle
// multiplication.
func (e Envelope) Integral() bool {
	isInt := func(f float64) bool {
		return f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32
	}
	return isInt(e.A) && isInt(e.B)
}

// ValidateIntegral is like Validate but additionally requires integral
// rates.
func (e Envelope) ValidateIntegral() error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !e.Integral() {
		return fmt.Errorf("rates (%g, %g): %w", e.A, e.B, ErrNotIntegral)
	}
	return nil
}

// Swap returns the envelope with the roles of the two circles exchanged.
func (e Envelope) Swap() Envelope {
	return Envelope{A: e.B, B: e.A, Reflect: e.Reflect}
}

func (e Envelope) String() string {
	if e.Reflect {
		return fmt.Sprintf("envelope(%g, −%g)", e.A, e.B)
	}
	return fmt.Sprintf("envelope(%g, %g)", e.A, e.B)
}

// Eval returns the point of the envelope at parameter angle, in radians.
//
// Near the asymptotes the result grows without bound, and exactly at an
// asymptote it may be infinite or NaN.
func (e Envelope) Eval(angle float64) Point {
	return envelopePoint(VecFromAngle(angle*e.A), VecFromAngle(angle*e.B), e.A, e.B, e.Reflect)
}

// EvalBin is like Eval, but the parameter is a binary angle and the angles
// on the circles are computed exactly. The rates must be integral.
func (e Envelope) EvalBin(angle BinAngle) Point {
	a, b := int(e.A), int(e.B)
	return envelopePoint(angle.Mul(a).Cossin(), angle.Mul(b).Cossin(), e.A, e.B, e.Reflect)
}

// envelopePoint computes the point where the chord from a circle point to
// b circle point touches its envelope. adir and bdir are the unit vectors
// towards the two points before scaling by the radii.
//
// Each chord end moves tangentially along its circle. The torque of one end
// is the moment of its velocity about the other end; the chord pivots about
// the point dividing it in the inverse ratio of the two torques. Weighting
// the end points avoids intersecting nearly parallel lines.
func envelopePoint(adir, bdir Vec2, a, b float64, reflect bool) Point {
	apoint := adir.Div(a)
	bpoint := bdir.Div(b)
	aspeed := adir.Turn90()
	bspeed := bdir.Turn90()
	if reflect {
		bpoint = bpoint.Negate()
		bspeed = bspeed.Negate()
	}
	atorque := aspeed.Turn90().Dot(apoint.Sub(bpoint))
	btorque := bspeed.Turn90().Dot(bpoint.Sub(apoint))
	return Point(apoint.Mul(btorque).Add(bpoint.Mul(atorque)).Div(atorque + btorque))
}

// Bracket is the parameter interval of one branch of the curve, between two
// consecutive asymptotes. Mid is always a finite point of the curve.
type Bracket struct {
	Start, Mid, End float64
}

// Span returns End − Start.
func (br Bracket) Span() float64 {
	return br.End - br.Start
}

// period returns the parameter distance between consecutive asymptotes.
// The sum of the torques is proportional to cos((a−b)·t) − 1, or to
// cos((a−b)·t) + 1 for the reflected form, so it vanishes with period
// 2π/|a−b|.
func (e Envelope) period() float64 {
	return 2 * math.Pi / math.Abs(e.A-e.B)
}

// Asymptote returns the parameter of the k-th asymptote, where the two
// chord ends' tangents are parallel. Asymptote(0) is 0 for the plain form
// and half a period for the reflected form.
func (e Envelope) Asymptote(k int) float64 {
	w := e.period()
	if e.Reflect {
		return (float64(k) - 0.5) * w
	}
	return float64(k) * w
}

// Branch returns the k-th branch, the one starting at Asymptote(k). For the
// reflected form, Branch(0) is centered on the cusp at t = 0.
func (e Envelope) Branch(k int) Bracket {
	start := e.Asymptote(k)
	end := e.Asymptote(k + 1)
	return Bracket{Start: start, Mid: 0.5 * (start + end), End: end}
}

// Branches returns n consecutive branches starting with branch k.
func (e Envelope) Branches(k, n int) []Bracket {
	out := make([]Bracket, 0, n)
	for i := range n {
		out = append(out, e.Branch(k+i))
	}
	return out
}

// BranchesPerTurn returns |a − b|, the number of branches in one full turn
// of the parameter, which is the whole curve when both rates are integers.
// It reports false for non-integral rates, whose curves need not close.
func (e Envelope) BranchesPerTurn() (int, bool) {
	if !e.Integral() {
		return 0, false
	}
	return int(math.Abs(e.A - e.B)), true
}
