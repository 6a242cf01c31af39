package tricuspid

import (
	"iter"
	"math"
	"slices"
)

// LineExtent is how far either way from its center a zero-radius circle is
// drawn by [Circle.PathElements] and [Circle.Approx].
const LineExtent = 1e3

// Circle is a circle parametrized by arc length. With a positive radius,
// stations are measured counterclockwise from the point at angle Bearing.
// A negative radius starts diametrically opposite and runs clockwise.
//
// A zero radius degenerates the circle into the straight line through Center
// in direction Bearing, with stations measured along it.
type Circle struct {
	Center  Point
	Radius  float64
	Bearing float64
}

// NewAxis returns the zero-radius circle through center with the given
// bearing.
func NewAxis(center Point, bearing float64) Circle {
	return Circle{Center: center, Bearing: bearing}
}

// IsLine reports whether c is a straight line.
func (c Circle) IsLine() bool {
	return c.Radius == 0
}

// Curvature returns 1/Radius, or 0 for a line.
func (c Circle) Curvature() float64 {
	if c.Radius == 0 {
		return 0
	}
	return 1 / c.Radius
}

// Station returns the point at arc length along from the starting point.
func (c Circle) Station(along float64) Point {
	if c.Radius == 0 {
		return c.Center.Translate(VecFromAngle(c.Bearing).Mul(along))
	}
	return c.Center.Translate(VecFromAngle(c.Bearing + along/c.Radius).Mul(c.Radius))
}

// Tangent returns the unit direction of travel at arc length along.
func (c Circle) Tangent(along float64) Vec2 {
	if c.Radius == 0 {
		return VecFromAngle(c.Bearing)
	}
	return VecFromAngle(c.Bearing + along/c.Radius).Turn90()
}

// Approx returns points on the circle such that the polygon through them,
// closed, deviates from the circle by at most tolerance. For a line it
// returns the two ends of the drawn segment.
func (c Circle) Approx(tolerance float64) []Point {
	if c.Radius == 0 {
		return []Point{c.Station(-LineExtent), c.Station(LineExtent)}
	}
	r := math.Abs(c.Radius)
	n := 3
	if tolerance < r {
		// The sagitta of a chord subtending θ is r·(1 − cos(θ/2)).
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1-tolerance/r))))
	}
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = c.Station(2 * math.Pi * r * float64(i) / float64(n))
	}
	return pts
}

func (c Circle) Path(tolerance float64) BezPath { return slices.Collect(c.PathElements(tolerance)) }

// PathElements approximates the circle with cubic Béziers, accurate to
// within tolerance. A line is drawn as a segment of length 2·[LineExtent].
func (c Circle) PathElements(tolerance float64) iter.Seq[PathElement] {
	if c.Radius == 0 {
		return Line{c.Station(-LineExtent), c.Station(LineExtent)}.PathElements(tolerance)
	}
	return func(yield func(PathElement) bool) {
		scaledError := math.Abs(c.Radius) / tolerance
		var n int
		var armLength float64
		if scaledError < 1.0/1.9608e-4 {
			// Solution from http://spencermortensen.com/articles/bezier-circle/
			n = 4
			armLength = 0.551915024494
		} else {
			// This is empirically determined to fall within error tolerance.
			n = int(math.Ceil(math.Pow(1.1163*scaledError, 1.0/6.0)))
			armLength = (4.0 / 3.0) * math.Tan(math.Pi/2/(float64(n)))
		}

		r := math.Abs(c.Radius)
		rot := Rotate(c.Bearing).ThenTranslate(Vec2(c.Center))
		at := func(x, y float64) Point { return Pt(r*x, r*y).Transform(rot) }
		if !yield(MoveTo(at(1, 0))) {
			return
		}
		deltaTh := 2.0 * math.Pi / float64(n)
		for ix := 1; ix <= n; ix++ {
			a := armLength
			th1 := deltaTh * float64(ix)
			th0 := th1 - deltaTh
			s0, c0 := math.Sincos(th0)
			var s1, c1 float64
			if ix == n {
				s1 = 0.0
				c1 = 1.0
			} else {
				s1, c1 = math.Sincos(th1)
			}
			if !yield(CubicTo(
				at(c0-a*s0, s0+a*c0),
				at(c1+a*s1, s1-a*c1),
				at(c1, s1),
			)) {
				return
			}
		}
		if !yield(ClosePath()) {
			return
		}
	}
}

func (c Circle) IsInf() bool {
	return c.Center.IsInf() || math.IsInf(c.Radius, 0)
}

func (c Circle) IsNaN() bool {
	return c.Center.IsNaN() || math.IsNaN(c.Radius)
}

func (c Circle) Contains(pt Point) bool {
	return pt.Sub(c.Center).Hypot2() < c.Radius*c.Radius
}
