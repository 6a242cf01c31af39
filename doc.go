// Package tricuspid computes and samples the envelopes of chord families
// between two concentric circles. It was written to explore the family of
// curves traced when two points travel the same distance around circles of
// radii 1/a and 1/b and the chord joining them sweeps out an envelope.
//
// # Envelopes
//
// [Envelope] describes one such curve. For a curve parameter t, the point on
// the first circle sits at angle a·t and the point on the second at angle
// b·t. [Envelope.Eval] returns the point where the chord touches its
// envelope. The rates must satisfy a ≠ 0, b ≠ 0, a ≠ b and a ≠ −b; see
// [Envelope.Validate].
//
// With integer rates the curve closes after one turn of the parameter and
// consists of |a − b| branches separated by asymptotes, where the two chord
// ends move in parallel. Integer-rate curves can be evaluated with binary
// angles ([BinAngle], [Envelope.EvalBin]), which keeps their periodicity
// exact.
//
// The reflected form ([Envelope.Reflect]) negates the point on the second
// circle. It puts a cusp at t = 0, which makes it the natural form for
// studying cusps with real rates.
//
// # Sampling
//
// Branches run off to infinity at both ends. [Envelope.SamplePart] clips a
// branch to a disk around the origin, finding the exact parameters at which
// the curve leaves the disk with a root finder, and samples it evenly in
// between. [Envelope.Trace] samples a whole integer-rate curve.
//
// # Root finding
//
// [RootFinder] is a stateful, derivative-free root finder driven one
// function evaluation at a time, so that callers keep control of how the
// function is computed. [ITP] implements it with the ITP method. [Solve] and
// [SolveITP] drive it for ordinary functions.
//
// # Cusps
//
// At the cusp of the reflected curve the second derivative of x changes
// sign as b varies with a fixed. When it is positive, each lobe of the curve
// carries three cusps; when it is negative, one. [FindDegenerateB] finds the
// rate at which it vanishes.
//
// # Geometry
//
// The package also carries the small amount of 2D geometry needed to draw
// the curves: [Point], [Vec2], [Affine], [Rect], [Line], [Circle], and
// [BezPath], along with [Spline] for smoothing sampled points into cubic
// Béziers.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [Approximate a circle with cubic Bézier curves] by Spencer Mortensen
//   - [Stern–Brocot tree]
//
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [Approximate a circle with cubic Bézier curves]: https://spencermortensen.com/articles/bezier-circle/
// [Stern–Brocot tree]: https://en.wikipedia.org/wiki/Stern%E2%80%93Brocot_tree
package tricuspid
