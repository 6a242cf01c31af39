package tricuspid

// Decimate drops points of the polyline pts that lie within tolerance of
// the simplified polyline, using the Ramer–Douglas–Peucker algorithm. The
// first and last points are always kept. If closed is set, pts is treated as
// a ring and the point farthest from the first is kept as well.
func Decimate(pts []Point, tolerance float64, closed bool) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}
	keep := make([]bool, len(pts))
	keep[0] = true
	keep[len(pts)-1] = true

	type span struct{ lo, hi int }
	var stack []span
	if closed {
		far := 0
		var farDist float64
		for i, pt := range pts {
			if d := pt.DistanceSquared(pts[0]); d > farDist {
				far, farDist = i, d
			}
		}
		keep[far] = true
		stack = append(stack, span{0, far}, span{far, len(pts) - 1})
	} else {
		stack = append(stack, span{0, len(pts) - 1})
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}
		chord := Line{pts[s.lo], pts[s.hi]}
		worst, worstDist := -1, tolerance
		for i := s.lo + 1; i < s.hi; i++ {
			var d float64
			if chord.P0 == chord.P1 {
				d = pts[i].Distance(chord.P0)
			} else {
				d = chord.Distance(pts[i])
			}
			if d > worstDist {
				worst, worstDist = i, d
			}
		}
		if worst < 0 {
			continue
		}
		keep[worst] = true
		stack = append(stack, span{s.lo, worst}, span{worst, s.hi})
	}

	out := make([]Point, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

// Spline returns a path of cubic Béziers passing through every point of
// pts, with Catmull-Rom tangents. Open splines use one-sided tangents at
// their ends; closed splines wrap around and end with ClosePath.
func Spline(pts []Point, closed bool) BezPath {
	n := len(pts)
	switch {
	case n == 0:
		return nil
	case n == 1:
		return BezPath{MoveTo(pts[0])}
	case n == 2 && !closed:
		return BezPath{MoveTo(pts[0]), LineTo(pts[1])}
	}

	at := func(i int) Point {
		if closed {
			return pts[((i%n)+n)%n]
		}
		return pts[min(max(i, 0), n-1)]
	}
	tangent := func(i int) Vec2 {
		if !closed && (i == 0 || i == n-1) {
			return at(i + 1).Sub(at(i - 1))
		}
		return at(i + 1).Sub(at(i - 1)).Mul(0.5)
	}

	segs := n - 1
	if closed {
		segs = n
	}
	path := make(BezPath, 0, segs+2)
	path.MoveTo(pts[0])
	for i := range segs {
		p0, p1 := at(i), at(i+1)
		path.CubicTo(
			p0.Translate(tangent(i).Mul(1.0/3.0)),
			p1.Translate(tangent(i+1).Mul(-1.0/3.0)),
			p1,
		)
	}
	if closed {
		path.ClosePath()
	}
	return path
}

// SplineWithin decimates pts to tolerance and returns the spline through
// the remaining points.
func SplineWithin(pts []Point, closed bool, tolerance float64) BezPath {
	return Spline(Decimate(pts, tolerance, closed), closed)
}
