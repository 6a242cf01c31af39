package tricuspid

import (
	"math"
	"testing"
)

func TestDecimate(t *testing.T) {
	var line []Point
	for i := range 10 {
		line = append(line, Pt(float64(i), 2*float64(i)))
	}
	diff(t, []Point{Pt(0, 0), Pt(9, 18)}, Decimate(line, 1e-9, false))

	zigzag := []Point{Pt(0, 0), Pt(1, 1), Pt(2, 0), Pt(3, 1), Pt(4, 0)}
	diff(t, zigzag, Decimate(zigzag, 0.1, false))
	diff(t, []Point{Pt(0, 0), Pt(4, 0)}, Decimate(zigzag, 2, false))

	short := []Point{Pt(0, 0), Pt(1, 1)}
	diff(t, short, Decimate(short, 10, false))
}

func TestDecimateClosed(t *testing.T) {
	c := Circle{Radius: 1}
	pts := c.Approx(1e-4)
	got := Decimate(pts, 10, true)
	if len(got) != 3 {
		t.Fatalf("got %d points, want 3", len(got))
	}
	// The point opposite the first survives.
	if d := got[1].Distance(Pt(-1, 0)); d > 0.05 {
		t.Errorf("got %s, want about (-1, 0)", got[1])
	}

	fine := Decimate(pts, 1e-3, true)
	if len(fine) >= len(pts) || len(fine) < 8 {
		t.Errorf("got %d of %d points", len(fine), len(pts))
	}
}

func TestSplineInterpolates(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 1), Pt(6, 0)}
	for _, closed := range []bool{false, true} {
		path := Spline(pts, closed)
		var ends []Point
		cubics := 0
		for el := range path.Elements() {
			switch el.Kind {
			case MoveToKind:
				ends = append(ends, el.P0)
			case CubicToKind:
				ends = append(ends, el.P2)
				cubics++
			}
		}
		want := pts
		wantCubics := len(pts) - 1
		if closed {
			want = append(append([]Point(nil), pts...), pts[0])
			wantCubics = len(pts)
			if path[len(path)-1].Kind != ClosePathKind {
				t.Errorf("closed spline doesn't end with ClosePath")
			}
		}
		diff(t, want, ends)
		if cubics != wantCubics {
			t.Errorf("closed %t: got %d cubics, want %d", closed, cubics, wantCubics)
		}
	}
}

func TestSplineSmooth(t *testing.T) {
	// Control points on either side of an interior point are collinear
	// with it.
	pts := []Point{Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 1)}
	path := Spline(pts, false)
	for i := 1; i+1 < len(path); i++ {
		in, out := path[i], path[i+1]
		if !Collinear(in.P1, in.P2, out.P0, 1e-12) {
			t.Errorf("joint %d isn't smooth: %s, %s", i, in, out)
		}
	}
}

func TestSplineDegenerate(t *testing.T) {
	if p := Spline(nil, false); p != nil {
		t.Errorf("got %v, want nil", p)
	}
	diff(t, BezPath{MoveTo(Pt(1, 1))}, Spline([]Point{Pt(1, 1)}, true))
	diff(t, BezPath{MoveTo(Pt(1, 1)), LineTo(Pt(2, 2))}, Spline([]Point{Pt(1, 1), Pt(2, 2)}, false))
}

func TestSplineWithin(t *testing.T) {
	c := Circle{Center: Pt(1, 1), Radius: 2}
	path := SplineWithin(c.Approx(1e-5), true, 1e-3)
	if !path.IsFinite() {
		t.Fatal("spline isn't finite")
	}
	var cur Point
	for el := range path.Elements() {
		if el.Kind == CubicToKind {
			mid := Point(Vec2(cur).Add(Vec2(el.P0).Mul(3)).Add(Vec2(el.P1).Mul(3)).Add(Vec2(el.P2)).Div(8))
			if d := math.Abs(mid.Distance(c.Center) - 2); d > 0.01 {
				t.Errorf("segment midpoint off the circle by %g", d)
			}
		}
		if el.Kind != ClosePathKind {
			cur = el.End()
		}
	}
}
