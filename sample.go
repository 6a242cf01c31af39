package tricuspid

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyBracket is returned for a branch whose start isn't before its end.
var ErrEmptyBracket = errors.New("empty parameter bracket")

// SampleOptions configures [Envelope.SamplePart]. The zero value, and a nil
// pointer, select the defaults.
type SampleOptions struct {
	// ClipRadius is the radius of the disk outside of which the curve is
	// not sampled. Zero means [DefaultClipRadius].
	ClipRadius float64
	// Step is the nominal parameter distance between samples. Zero means
	// [OneDegree].
	Step float64
	// Quantize rounds each sample parameter to the nearest [BinAngle] and
	// evaluates with [Envelope.EvalBin]. It requires integral rates.
	Quantize bool
	// NewFinder creates the root finder for each clipped end. Nil means
	// [NewITP].
	NewFinder func() RootFinder
}

func (opts *SampleOptions) clipRadius() float64 {
	if opts == nil || opts.ClipRadius <= 0 {
		return DefaultClipRadius
	}
	return opts.ClipRadius
}

func (opts *SampleOptions) step() float64 {
	if opts == nil || opts.Step <= 0 {
		return OneDegree
	}
	return opts.Step
}

func (opts *SampleOptions) quantize() bool {
	return opts != nil && opts.Quantize
}

func (opts *SampleOptions) newFinder() func() RootFinder {
	if opts == nil || opts.NewFinder == nil {
		return NewITP
	}
	return opts.NewFinder
}

// Part is one continuous branch of a curve, sampled in order of increasing
// parameter. It is an open polyline: the last point does not connect back to
// the first.
type Part struct {
	Points []Point
	// Closed is always false for envelope branches. It is carried so that
	// renderers can treat parts and closed outlines alike.
	Closed bool
	// Start and End are the clipped parameter bounds. Points[0] lies at
	// Start and the last point at End, unless they were dropped.
	Start, End float64
	Step       float64
	// Converged is false if either clipping search stopped early.
	Converged bool
	// Dropped counts samples that were discarded because they were not
	// finite.
	Dropped int
}

// SamplePart clips the branch [start, end] to the clip radius and samples it
// at a step that divides the clipped span evenly into roughly Step-sized
// increments, both ends included. The midpoint of start and end must lie
// inside the clip radius, or the error wraps [ErrOutsideClip].
func (e Envelope) SamplePart(start, end float64, opts *SampleOptions) (Part, error) {
	if err := e.Validate(); err != nil {
		return Part{}, err
	}
	quantize := opts.quantize()
	if quantize && !e.Integral() {
		return Part{}, fmt.Errorf("quantized sampling of %s: %w", e, ErrNotIntegral)
	}
	if !(start < end) {
		return Part{}, fmt.Errorf("bracket [%g, %g]: %w", start, end, ErrEmptyBracket)
	}

	mid := 0.5 * (start + end)
	radius := opts.clipRadius()
	newFinder := opts.newFinder()
	lo, err := e.ClipBoundary(start, mid, radius, newFinder)
	if err != nil {
		return Part{}, err
	}
	hi, err := e.ClipBoundary(end, mid, radius, newFinder)
	if err != nil {
		return Part{}, err
	}

	span := hi.Angle - lo.Angle
	n := max(int(math.Round(span/opts.step())), 1)
	angles := make([]float64, n+1)
	floats.Span(angles, lo.Angle, hi.Angle)
	angles[n] = hi.Angle

	part := Part{
		Points:    make([]Point, 0, n+1),
		Start:     lo.Angle,
		End:       hi.Angle,
		Step:      span / float64(n),
		Converged: lo.Converged && hi.Converged,
	}
	for _, th := range angles {
		var pt Point
		if quantize {
			pt = e.EvalBin(BinFromRadians(th))
		} else {
			pt = e.Eval(th)
		}
		if !pt.IsFinite() {
			part.Dropped++
			continue
		}
		part.Points = append(part.Points, pt)
	}
	Logger().Debug("sampled part",
		slog.String("curve", e.String()),
		slog.Float64("start", part.Start),
		slog.Float64("end", part.End),
		slog.Int("points", len(part.Points)),
		slog.Int("iterations", lo.Iterations+hi.Iterations))
	return part, nil
}

// Trace samples every branch of an integer-rate curve over one full turn of
// the parameter. There are |a − b| branches; any whose midpoint lies outside
// the clip radius is skipped.
func (e Envelope) Trace(opts *SampleOptions) ([]Part, error) {
	if err := e.ValidateIntegral(); err != nil {
		return nil, err
	}
	n, _ := e.BranchesPerTurn()
	return e.TraceBranches(e.Branches(0, n), opts)
}

// TraceBranches samples the given branches. Branches that fail with
// [ErrOutsideClip] are skipped and logged; other errors abort.
func (e Envelope) TraceBranches(brs []Bracket, opts *SampleOptions) ([]Part, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	log := Logger()
	parts := make([]Part, 0, len(brs))
	for i, br := range brs {
		part, err := e.SamplePart(br.Start, br.End, opts)
		if errors.Is(err, ErrOutsideClip) {
			log.Warn("skipping branch", slog.String("curve", e.String()), slog.Int("branch", i), slog.Any("error", err))
			continue
		}
		if err != nil {
			return nil, err
		}
		if !part.Converged {
			log.Warn("clip search did not converge",
				slog.String("curve", e.String()), slog.Int("branch", i),
				slog.Float64("start", part.Start), slog.Float64("end", part.End))
		}
		if part.Dropped > 0 {
			log.Warn("dropped non-finite samples",
				slog.String("curve", e.String()), slog.Int("branch", i), slog.Int("dropped", part.Dropped))
		}
		parts = append(parts, part)
	}
	return parts, nil
}
