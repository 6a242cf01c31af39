package tricuspid

import "math"

// RootFinder is a derivative-free, bracketing, one-dimensional root finder
// driven one function evaluation at a time.
//
// The caller evaluates the function at the point returned by Init or Step,
// feeds the value back through Step, and stops as soon as Finished reports
// true. A RootFinder serves exactly one search and is not safe for concurrent
// use.
type RootFinder interface {
	// Init starts a search from the bracket (x0, y0), (x1, y1) and returns
	// the next point to evaluate. If y0 and y1 have the same sign and widen
	// is set, the bracket is grown outward until the sign changes; otherwise
	// the search finishes without converging.
	Init(x0, y0, x1, y1 float64, widen bool) float64
	// Step reports the function value at the last requested point and
	// returns the next point to evaluate.
	Step(y float64) float64
	// Finished reports whether the search has converged or given up.
	Finished() bool
	// Root returns the best estimate of the root so far.
	Root() float64
	// Converged reports whether the search met its tolerance, as opposed
	// to running out of iterations or failing to find a sign change.
	Converged() bool
	// Iterations returns the number of function values fed through Step.
	Iterations() int
}

const (
	// DefaultEpsilon is the default absolute tolerance of [ITP].
	DefaultEpsilon = 1e-12
	// DefaultMaxIter is the default iteration cap of [ITP]. ITP needs at
	// most n0 more iterations than bisection, so this only trips on
	// pathological inputs or a very small epsilon.
	DefaultMaxIter = 200
	// DefaultMaxWiden is the default number of times [ITP] doubles a
	// same-sign bracket before giving up.
	DefaultMaxWiden = 32
)

type itpPhase int

const (
	itpIdle itpPhase = iota
	itpWidenLow
	itpWidenHigh
	itpBisect
	itpDone
)

// ITP is a [RootFinder] using the [ITP method], as described in the paper
// [An Enhancement of the Bisection Method Average Performance Preserving
// Minmax Optimality]. It hardwires k2 to 2.
//
// The zero value is ready to use with the defaults described on each field.
//
// Function values that are NaN are treated as +Inf. An infinite endpoint
// value disables the regula falsi estimate, which then degrades to bisection
// until both endpoints are finite.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
type ITP struct {
	// Epsilon is the absolute tolerance on the root. Zero means
	// [DefaultEpsilon].
	Epsilon float64
	// N0 trades bisection against the secant component, see [SolveITP].
	N0 int
	// K1 is the truncation factor. Zero means 0.2 / (b − a) of the initial
	// bracket, as suggested by the paper.
	K1 float64
	// MaxIter caps the number of bisection-phase iterations. Zero means
	// [DefaultMaxIter].
	MaxIter int
	// MaxWiden caps the number of bracket doublings. Zero means
	// [DefaultMaxWiden].
	MaxWiden int

	phase         itpPhase
	a, b          float64
	ya, yb        float64
	sign          float64
	scaledEpsilon float64
	k1            float64
	x             float64
	root          float64
	converged     bool
	iter          int
	widened       int
}

var _ RootFinder = (*ITP)(nil)

// NewITP returns an ITP root finder with default settings.
func NewITP() RootFinder {
	return &ITP{}
}

func (s *ITP) epsilon() float64 {
	if s.Epsilon > 0 {
		return s.Epsilon
	}
	return DefaultEpsilon
}

func (s *ITP) maxIter() int {
	if s.MaxIter > 0 {
		return s.MaxIter
	}
	return DefaultMaxIter
}

func (s *ITP) maxWiden() int {
	if s.MaxWiden > 0 {
		return s.MaxWiden
	}
	return DefaultMaxWiden
}

func sanitize(y float64) float64 {
	if math.IsNaN(y) {
		return math.Inf(1)
	}
	return y
}

// Init implements RootFinder.
func (s *ITP) Init(x0, y0, x1, y1 float64, widen bool) float64 {
	y0, y1 = sanitize(y0), sanitize(y1)
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	s.a, s.ya = x0, y0
	s.b, s.yb = x1, y1
	s.iter = 0
	s.widened = 0
	s.converged = false

	switch {
	case y0 == 0:
		return s.finish(x0, true)
	case y1 == 0:
		return s.finish(x1, true)
	case math.Signbit(y0) != math.Signbit(y1):
		return s.startBisect()
	case !widen:
		if math.Abs(y0) < math.Abs(y1) {
			return s.finish(x0, false)
		}
		return s.finish(x1, false)
	default:
		return s.widen()
	}
}

// widen doubles the bracket away from the endpoint whose value is larger in
// magnitude, on the assumption that the root lies beyond the smaller one.
func (s *ITP) widen() float64 {
	if s.widened >= s.maxWiden() {
		if math.Abs(s.ya) < math.Abs(s.yb) {
			return s.finish(s.a, false)
		}
		return s.finish(s.b, false)
	}
	s.widened++
	w := s.b - s.a
	if math.Abs(s.ya) < math.Abs(s.yb) {
		s.phase = itpWidenLow
		s.x = s.a - w
	} else {
		s.phase = itpWidenHigh
		s.x = s.b + w
	}
	return s.x
}

func (s *ITP) startBisect() float64 {
	s.phase = itpBisect
	// Orient the bracket so that s.sign*ya < 0 < s.sign*yb.
	s.sign = 1
	if s.ya > 0 {
		s.sign = -1
	}
	s.ya *= s.sign
	s.yb *= s.sign

	eps := s.epsilon()
	n1_2 := int(max(math.Ceil(math.Log2((s.b-s.a)/eps))-1.0, 0.0))
	nmax := s.N0 + n1_2
	s.scaledEpsilon = eps * math.Ldexp(1, nmax)
	s.k1 = s.K1
	if s.k1 <= 0 {
		s.k1 = 0.2 / (s.b - s.a)
	}
	return s.next()
}

// next computes the next ITP point, or finishes if the bracket is small
// enough.
func (s *ITP) next() float64 {
	a, b := s.a, s.b
	eps := s.epsilon()
	if b-a <= 2.0*eps {
		return s.finish(0.5*(a+b), true)
	}
	if s.iter >= s.maxIter() {
		return s.finish(0.5*(a+b), false)
	}
	x1_2 := 0.5 * (a + b)
	r := s.scaledEpsilon - 0.5*(b-a)
	xf := (s.yb*a - s.ya*b) / (s.yb - s.ya)
	if math.IsNaN(xf) || math.IsInf(xf, 0) || xf < a || xf > b {
		xf = x1_2
	}
	sigma := x1_2 - xf
	// This has k2 = 2 hardwired for efficiency.
	delta := s.k1 * ((b - a) * (b - a))
	var xt float64
	if delta <= math.Abs(x1_2-xf) {
		xt = xf + math.Copysign(delta, sigma)
	} else {
		xt = x1_2
	}
	if math.Abs(xt-x1_2) <= r {
		s.x = xt
	} else {
		s.x = x1_2 - math.Copysign(r, sigma)
	}
	return s.x
}

// Step implements RootFinder.
func (s *ITP) Step(y float64) float64 {
	y = sanitize(y)
	switch s.phase {
	case itpWidenLow, itpWidenHigh:
		if s.phase == itpWidenLow {
			s.a, s.ya = s.x, y
		} else {
			s.b, s.yb = s.x, y
		}
		switch {
		case y == 0:
			return s.finish(s.x, true)
		case math.Signbit(s.ya) != math.Signbit(s.yb):
			return s.startBisect()
		default:
			return s.widen()
		}
	case itpBisect:
		s.iter++
		y *= s.sign
		if y > 0.0 {
			s.b = s.x
			s.yb = y
		} else if y < 0.0 {
			s.a = s.x
			s.ya = y
		} else {
			return s.finish(s.x, true)
		}
		s.scaledEpsilon *= 0.5
		return s.next()
	default:
		return s.root
	}
}

func (s *ITP) finish(x float64, converged bool) float64 {
	s.phase = itpDone
	s.root = x
	s.x = x
	s.converged = converged
	return x
}

// Finished implements RootFinder.
func (s *ITP) Finished() bool { return s.phase == itpDone }

// Root implements RootFinder.
func (s *ITP) Root() float64 {
	if s.phase == itpBisect {
		return 0.5 * (s.a + s.b)
	}
	return s.root
}

// Converged implements RootFinder.
func (s *ITP) Converged() bool { return s.phase == itpDone && s.converged }

// Iterations implements RootFinder.
func (s *ITP) Iterations() int { return s.iter + s.widened }

// Solution is the outcome of driving a [RootFinder] to completion.
type Solution struct {
	X          float64
	Iterations int
	// Converged is false when the finder ran out of iterations or never saw
	// a sign change. X is then the best estimate available and should be
	// treated with reduced confidence.
	Converged bool
}

// Solve drives rf over f, starting from the bracket (x0, y0), (x1, y1). The
// function values at the bracket are passed in because callers usually
// already have them.
func Solve(rf RootFinder, f func(float64) float64, x0, y0, x1, y1 float64, widen bool) Solution {
	x := rf.Init(x0, y0, x1, y1, widen)
	for !rf.Finished() {
		x = rf.Step(f(x))
	}
	return Solution{
		X:          rf.Root(),
		Iterations: rf.Iterations(),
		Converged:  rf.Converged(),
	}
}

// SolveITP solves an arbitrary function for a zero-crossing in [a, b] with
// the ITP method and returns the root.
//
// The values of ya and yb are given as arguments rather than computed from f,
// as the values may already be known, or they may be less expensive to compute
// as special cases. They must have opposite signs.
//
// The n0 parameter controls the relative impact of the bisection and secant
// components. When it is 0, the number of iterations is guaranteed to be no
// more than the number required by bisection. When the function is smooth, a
// value of 1 gives the secant method more of a chance to engage.
//
// To match the paper, a k1 of 0.2 / (b − a) is suggested.
func SolveITP(
	f func(float64) float64,
	a float64,
	b float64,
	epsilon float64,
	n0 int,
	k1 float64,
	ya float64,
	yb float64,
) float64 {
	s := ITP{Epsilon: epsilon, N0: n0, K1: k1}
	return Solve(&s, f, a, ya, b, yb, false).X
}
