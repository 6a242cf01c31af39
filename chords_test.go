package tricuspid

import (
	"math"
	"testing"
)

func TestUnitTripleStats(t *testing.T) {
	cf := UnitTripleFamily()
	diff(t, ChordStats{Short: 106, Long: 106, Even: 4}, cf.Stats(math.Sqrt(10), 1e-6))

	chords := cf.Chords()
	if len(chords) != 216 {
		t.Fatalf("got %d chords, want 216", len(chords))
	}
	// The chord at 135° of arc joins stations 90° apart.
	if d := chords[27].Length(); !approxEqual(d, math.Sqrt(10), 1e-12) {
		t.Errorf("got length %v, want √10", d)
	}
}

func TestChordEnvelope(t *testing.T) {
	cf := UnitTripleFamily()
	env := Envelope{A: 1, B: 1.0 / 3.0}
	chords := cf.Chords()
	checked := 0
	for i := range len(chords) - 1 {
		pt, ok := chords[i].CrossingPoint(chords[i+1])
		if !ok {
			continue
		}
		want := env.Eval((float64(i) + 0.5) * cf.Step)
		if want.Radius() > 2 {
			continue
		}
		checked++
		if d := pt.Distance(want); d > 0.01 {
			t.Errorf("chords %d and %d cross at %s, %g from the envelope", i, i+1, pt, d)
		}
	}
	if checked == 0 {
		t.Error("no crossing points checked")
	}

	pts := cf.Envelope()
	if len(pts) == 0 || len(pts) > len(chords) {
		t.Errorf("got %d envelope points", len(pts))
	}
	for _, pt := range pts {
		if !pt.IsFinite() {
			t.Errorf("non-finite envelope point %s", pt)
		}
	}
}

func TestChordEnvelopeParallel(t *testing.T) {
	chords := []Line{
		{Pt(0, 0), Pt(1, 0)},
		{Pt(0, 1), Pt(1, 1)},
		{Pt(0, 0), Pt(0, 1)},
	}
	// Chords 0 and 1 are parallel; 1 and 2 cross at (0, 1), 2 and 0 at the
	// origin.
	diff(t, []Point{Pt(0, 1), Pt(0, 0)}, ChordEnvelope(chords))
}

func TestAxisChords(t *testing.T) {
	chords := AxisChords(128)
	if len(chords) != 128 {
		t.Fatalf("got %d chords, want 128", len(chords))
	}
	for i, l := range chords {
		if l.IsInf() || l.IsNaN() {
			t.Fatalf("chord %d isn't finite: %v", i, l)
		}
		if math.Abs(l.P0.Y) > 1e-12 || math.Abs(l.P1.X) > 1e-12 {
			t.Errorf("chord %d doesn't join the axes: %v", i, l)
		}
		// tan·cot = 1
		if p := l.P0.X * l.P1.Y; !approxEqual(p, 1, 1e-9) {
			t.Errorf("chord %d: product of intercepts %v", i, p)
		}
	}

	for _, n := range []int{0, -1} {
		if got := AxisChords(n); got != nil {
			t.Errorf("AxisChords(%d) = %v, want nil", n, got)
		}
	}
}

func TestCheck142(t *testing.T) {
	for _, th := range []float64{1e-2, 1e-3} {
		if got := Check142(th) / (th * th * th); !approxEqual(got, -0.875, 1e-3) {
			t.Errorf("angle %g: cross product / angle³ = %v, want -0.875", th, got)
		}
	}
	if got := Check142(OneDegree); math.Abs(got) > 1e-5 {
		t.Errorf("got %v at one degree", got)
	}
	if got := Check142(0); got != 0 {
		t.Errorf("got %v at zero", got)
	}
	p0 := Pt(math.Cos(OneDegree), math.Sin(OneDegree))
	p1 := Point(VecFromAngle(4 * OneDegree).Div(4))
	p2 := Point(VecFromAngle(2 * OneDegree).Div(2))
	if !Collinear(p0, p1, p2, 1e-5) {
		t.Error("points at one degree aren't collinear")
	}
}
