package tricuspid

import (
	"math"
	"testing"
)

func TestLineLength(t *testing.T) {
	l := Line{Pt(0.0, 0.0), Pt(1.0, 1.0)}
	if got, want := l.Length(), math.Sqrt(2.0); !approxEqual(got, want, 1e-12) {
		t.Errorf("got length %v, want %v", got, want)
	}
}

func TestLineIsInf(t *testing.T) {
	if (Line{Pt(0.0, 0.0), Pt(1.0, 1.0)}).IsInf() {
		t.Error("line is infinite but shouldn't be")
	}

	if !(Line{Pt(0.0, 0.0), Pt(math.Inf(1), 1.0)}).IsInf() {
		t.Errorf("line is finite but shouldn't be")
	}

	if !(Line{Pt(0.0, 0.0), Pt(0.0, math.Inf(1))}).IsInf() {
		t.Errorf("line is finite but shouldn't be")
	}
}

func TestLineCrossingPoint(t *testing.T) {
	hLine := Line{Pt(0.0, 0.0), Pt(100.0, 0.0)}
	vLine := Line{Pt(10.0, -10.0), Pt(10.0, 10.0)}
	pt, ok := hLine.CrossingPoint(vLine)
	if !ok {
		t.Fatal("expected lines to cross")
	}
	assertNear(t, pt, Pt(10, 0), 1e-9)

	// Crossing points lie on the extensions of the segments.
	vLine = Line{Pt(-10.0, 10.0), Pt(-10.0, 20.0)}
	pt, ok = hLine.CrossingPoint(vLine)
	if !ok {
		t.Fatal("expected lines to cross")
	}
	assertNear(t, pt, Pt(-10, 0), 1e-9)

	if pt, ok := hLine.CrossingPoint(Line{Pt(0, 1), Pt(5, 1)}); ok {
		t.Errorf("parallel lines crossed at %s", pt)
	}
}

func TestLineDistance(t *testing.T) {
	l := Line{Pt(0, 0), Pt(2, 0)}
	if d := l.Distance(Pt(7, -3)); !approxEqual(d, 3, 1e-12) {
		t.Errorf("got distance %v, want 3", d)
	}
}
