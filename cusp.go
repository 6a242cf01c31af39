package tricuspid

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

const (
	// EstimatorSteps is the number of second derivative estimates computed
	// by [SecondDerivativeSeries], at angles 2⁰ through 2⁻²⁵.
	EstimatorSteps = 26

	// DefaultEstimatorIndex selects the estimate at angle 2⁻¹⁴. Smaller
	// indices are dominated by higher-order terms of the curve, larger ones
	// by cancellation in x(angle) − x(0). The choice is empirical for curves
	// drawn at the scale of [DefaultClipRadius] with angles in radians; it
	// has to be validated again if that scale changes.
	DefaultEstimatorIndex = 14
)

var (
	// ErrNoSignChange is returned by [FindDegenerateB] when the second
	// derivative has the same sign at both ends of the bracket.
	ErrNoSignChange = errors.New("second derivative does not change sign over bracket")
	// ErrEstimatorIndex is returned for an estimator index outside
	// [0, EstimatorSteps).
	ErrEstimatorIndex = errors.New("estimator index out of range")
)

// cuspEnvelope returns the reflected envelope, which has a cusp at angle 0.
func cuspEnvelope(a, b float64) (Envelope, error) {
	return NewEnvelope(a, b, true)
}

// der2At estimates x''(0) from the sample at angle 2⁻ⁱ. The curve is
// symmetric about the x axis at the cusp, so x is even in the angle and
// 2·(x(h) − x(0))/h² approaches x''(0) as h shrinks.
func der2At(e Envelope, x0 float64, i int) float64 {
	h := math.Ldexp(1, -i)
	return 2 * (e.Eval(h).X - x0) / (h * h)
}

// SecondDerivativeSeries returns the estimates of the second derivative of x
// with respect to the curve parameter at the cusp of the reflected curve for
// rates a and b, one per angle 2⁻ⁱ, i = 0, …, 25. It is meant for inspecting
// how the estimates settle and then degrade as the angle shrinks.
func SecondDerivativeSeries(a, b float64) ([EstimatorSteps]float64, error) {
	var out [EstimatorSteps]float64
	e, err := cuspEnvelope(a, b)
	if err != nil {
		return out, err
	}
	x0 := e.Eval(0).X
	for i := range out {
		out[i] = der2At(e, x0, i)
	}
	return out, nil
}

// EstimateSecondDerivative returns the estimate of x''(0) at
// [DefaultEstimatorIndex].
func EstimateSecondDerivative(a, b float64) (float64, error) {
	return EstimateSecondDerivativeAt(a, b, DefaultEstimatorIndex)
}

// EstimateSecondDerivativeAt is like [EstimateSecondDerivative] with an
// explicit estimator index.
func EstimateSecondDerivativeAt(a, b float64, index int) (float64, error) {
	if index < 0 || index >= EstimatorSteps {
		return 0, fmt.Errorf("index %d: %w", index, ErrEstimatorIndex)
	}
	e, err := cuspEnvelope(a, b)
	if err != nil {
		return 0, err
	}
	return der2At(e, e.Eval(0).X, index), nil
}

// CuspKind tells which way the cusp at the start of a reflected curve
// bends, and so whether a lobe carries three cusps or one.
type CuspKind int

const (
	CuspDegenerate CuspKind = iota
	// CuspIn: positive second derivative.
	CuspIn
	// CuspOut: negative second derivative.
	CuspOut
)

func (k CuspKind) String() string {
	switch k {
	case CuspIn:
		return "in"
	case CuspOut:
		return "out"
	case CuspDegenerate:
		return "degenerate"
	default:
		return fmt.Sprintf("CuspKind(%d)", int(k))
	}
}

// CuspOrientation classifies the cusp for rates a and b by the sign of the
// estimated second derivative.
func CuspOrientation(a, b float64) (CuspKind, error) {
	d2, err := EstimateSecondDerivative(a, b)
	if err != nil {
		return CuspDegenerate, err
	}
	switch {
	case d2 > 0:
		return CuspIn, nil
	case d2 < 0:
		return CuspOut, nil
	default:
		return CuspDegenerate, nil
	}
}

// SearchOptions configures [FindDegenerateB]. A nil pointer selects the
// defaults.
type SearchOptions struct {
	// Index is the estimator index. Zero means [DefaultEstimatorIndex];
	// an index of zero proper can't be selected, it is useless anyway.
	Index int
	// Widen lets the search grow a bracket whose ends have the same sign
	// instead of failing with [ErrNoSignChange].
	Widen bool
	// NewFinder creates the root finder. Nil means [NewITP].
	NewFinder func() RootFinder
}

// Degeneracy is the result of [FindDegenerateB].
type Degeneracy struct {
	A float64
	// B is the rate at which the second derivative at the cusp vanishes.
	B          float64
	Iterations int
	Converged  bool
	// LowDer2 and HighDer2 are the estimates at the ends of the initial
	// bracket.
	LowDer2, HighDer2 float64
}

// FindDegenerateB finds the rate b in [bLow, bHigh] at which the second
// derivative of x at the cusp of the reflected curve vanishes, with a fixed.
// This is the boundary between curves whose lobes carry three cusps and
// curves whose lobes carry one.
//
// The estimates at bLow and bHigh must have opposite signs, unless
// opts.Widen is set.
func FindDegenerateB(a, bLow, bHigh float64, opts *SearchOptions) (Degeneracy, error) {
	var o SearchOptions
	if opts != nil {
		o = *opts
	}
	if o.Index == 0 {
		o.Index = DefaultEstimatorIndex
	}
	if o.NewFinder == nil {
		o.NewFinder = NewITP
	}

	res := Degeneracy{A: a}
	var err error
	if res.LowDer2, err = EstimateSecondDerivativeAt(a, bLow, o.Index); err != nil {
		return Degeneracy{}, err
	}
	if res.HighDer2, err = EstimateSecondDerivativeAt(a, bHigh, o.Index); err != nil {
		return Degeneracy{}, err
	}
	if !o.Widen && math.Signbit(res.LowDer2) == math.Signbit(res.HighDer2) && res.LowDer2 != 0 && res.HighDer2 != 0 {
		return Degeneracy{}, fmt.Errorf("a = %g, b ∈ [%g, %g]: der2 %g and %g: %w",
			a, bLow, bHigh, res.LowDer2, res.HighDer2, ErrNoSignChange)
	}

	// A degenerate b can only be reached while widening. Report it and stop
	// the search by pretending to have hit the root.
	var evalErr error
	f := func(b float64) float64 {
		d2, err := EstimateSecondDerivativeAt(a, b, o.Index)
		if err != nil {
			evalErr = err
			return 0
		}
		return d2
	}
	sol := Solve(o.NewFinder(), f, bLow, res.LowDer2, bHigh, res.HighDer2, o.Widen)
	if evalErr != nil {
		return Degeneracy{}, fmt.Errorf("searching degenerate b for a = %g: %w", a, evalErr)
	}
	res.B = sol.X
	res.Iterations = sol.Iterations
	res.Converged = sol.Converged
	if !res.Converged {
		Logger().Warn("degeneracy search did not converge",
			slog.Float64("a", a), slog.Float64("b", res.B), slog.Int("iterations", res.Iterations))
	}
	return res, nil
}
