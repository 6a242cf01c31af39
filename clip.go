package tricuspid

import (
	"errors"
	"fmt"
	"math"
)

// DefaultClipRadius bounds the part of the plane in which curves are
// sampled. Beyond it the branches run off towards their asymptotes and are of
// no use for plotting. It is tuned for circles of radius at most 1 and should
// be revisited together with [DefaultEstimatorIndex] if the scale changes.
const DefaultClipRadius = 256

// ErrOutsideClip is returned when the interior reference angle of a branch
// already lies outside the clip radius, so no bracket exists.
var ErrOutsideClip = errors.New("branch midpoint outside clip radius")

// ErrClipRadius is returned for a clip radius that isn't positive and
// finite.
var ErrClipRadius = errors.New("invalid clip radius")

// Clip is the result of clipping one end of a branch.
type Clip struct {
	// Angle is the parameter at which the curve crosses the clip radius,
	// or the raw angle if the curve never left the disk.
	Angle      float64
	Iterations int
	// Converged is false if the root finder stopped early. Angle is
	// still usable for plotting.
	Converged bool
}

// ClipBoundary finds the parameter between mid and raw at which the curve's
// distance from the origin equals radius. The point at mid must lie inside
// the radius, which must be positive and finite. newFinder may be nil, in
// which case [NewITP] is used.
//
// The search runs relative to mid, from the bracket (raw − mid, f(raw)) and
// (0, f(mid)), where f is the distance from the origin minus radius.
func (e Envelope) ClipBoundary(raw, mid, radius float64, newFinder func() RootFinder) (Clip, error) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return Clip{}, fmt.Errorf("%g: %w", radius, ErrClipRadius)
	}
	f := func(x float64) float64 {
		// NaN and Inf mean the asymptote, which is outside.
		d := e.Eval(mid + x).Radius() - radius
		if math.IsNaN(d) {
			return math.Inf(1)
		}
		return d
	}

	fmid := f(0)
	if !(fmid < 0) {
		return Clip{}, fmt.Errorf("%s at %g: %w", e, mid, ErrOutsideClip)
	}
	fraw := f(raw - mid)
	if fraw <= 0 {
		return Clip{Angle: raw, Converged: true}, nil
	}

	if newFinder == nil {
		newFinder = NewITP
	}
	sol := Solve(newFinder(), f, raw-mid, fraw, 0, fmid, false)
	return Clip{
		Angle:      mid + sol.X,
		Iterations: sol.Iterations,
		Converged:  sol.Converged,
	}, nil
}
