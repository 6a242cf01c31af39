package tricuspid

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func checkPart(t *testing.T, e Envelope, part Part, radius, endTol float64) {
	t.Helper()
	pts := part.Points
	if len(pts) < 2 {
		t.Fatalf("%s: got %d points", e, len(pts))
	}
	if part.Closed {
		t.Errorf("%s: envelope part is closed", e)
	}
	if part.Dropped != 0 {
		t.Errorf("%s: dropped %d samples", e, part.Dropped)
	}
	if want := int(math.Round((part.End-part.Start)/part.Step)) + 1; len(pts) != want {
		t.Errorf("%s: got %d points, want %d", e, len(pts), want)
	}
	for i, pt := range pts {
		if !pt.IsFinite() {
			t.Errorf("%s: point %d is %s", e, i, pt)
		}
	}
	for _, end := range []Point{pts[0], pts[len(pts)-1]} {
		if r := end.Radius(); !approxEqual(r, radius, endTol) {
			t.Errorf("%s: end point %s at radius %v, want %v", e, end, r, radius)
		}
	}
	for i, pt := range pts[1 : len(pts)-1] {
		if r := pt.Radius(); r > radius+endTol {
			t.Errorf("%s: interior point %d at radius %v", e, i+1, r)
		}
	}
}

func TestSamplePart(t *testing.T) {
	e := Envelope{A: 1, B: 3}
	br := e.Branch(0)
	part, err := e.SamplePart(br.Start, br.End, nil)
	if err != nil {
		t.Fatal(err)
	}
	checkPart(t, e, part, DefaultClipRadius, 1e-6)
	if !part.Converged {
		t.Error("clipping didn't converge")
	}
	if part.Step > OneDegree*1.01 || part.Step < OneDegree*0.99 {
		t.Errorf("got step %v, want about one degree", part.Step)
	}
	if part.Start <= br.Start || part.End >= br.End {
		t.Errorf("clipped bounds [%v, %v] not inside branch %+v", part.Start, part.End, br)
	}

	// The curve passes through (0, 1/3) at the middle of the branch.
	mid := e.Eval(br.Mid)
	found := false
	for _, pt := range part.Points {
		if pt.Distance(mid) < 0.01 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("no sample near %s", mid)
	}
}

func TestSamplePartOptions(t *testing.T) {
	e := Envelope{A: 2, B: 7}
	br := e.Branch(2)
	opts := &SampleOptions{ClipRadius: 10, Step: 0.005}
	part, err := e.SamplePart(br.Start, br.End, opts)
	if err != nil {
		t.Fatal(err)
	}
	checkPart(t, e, part, 10, 1e-6)
	if !approxEqual(part.Step, 0.005, 0.005/float64(len(part.Points))) {
		t.Errorf("got step %v, want about 0.005", part.Step)
	}
}

func TestSamplePartQuantized(t *testing.T) {
	e := Envelope{A: 2, B: 7}
	br := e.Branch(0)
	part, err := e.SamplePart(br.Start, br.End, &SampleOptions{Quantize: true})
	if err != nil {
		t.Fatal(err)
	}
	checkPart(t, e, part, DefaultClipRadius, 1e-3)

	plain, err := e.SamplePart(br.Start, br.End, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(plain.Points) != len(part.Points) {
		t.Fatalf("got %d quantized and %d plain points", len(part.Points), len(plain.Points))
	}
	for i := range part.Points {
		if d := part.Points[i].Distance(plain.Points[i]); d > 1e-3 {
			t.Errorf("point %d: quantized and plain samples %g apart", i, d)
		}
	}

	_, err = Envelope{A: 1, B: 3.5}.SamplePart(0.1, 0.2, &SampleOptions{Quantize: true})
	if !errors.Is(err, ErrNotIntegral) {
		t.Errorf("got error %v, want ErrNotIntegral", err)
	}
}

// stuckFinder gives up at once and reports the first end of its bracket.
type stuckFinder struct{ x float64 }

func (s *stuckFinder) Init(x0, y0, x1, y1 float64, widen bool) float64 {
	s.x = x0
	return x0
}
func (s *stuckFinder) Step(y float64) float64 { return s.x }
func (s *stuckFinder) Finished() bool         { return true }
func (s *stuckFinder) Root() float64          { return s.x }
func (s *stuckFinder) Converged() bool        { return false }
func (s *stuckFinder) Iterations() int        { return 0 }

func TestSamplePartDropsNonFinite(t *testing.T) {
	// Without clipping, the grid ends on the asymptotes at 0 and π, where
	// the tangents are parallel and the point is 0/0.
	e := Envelope{A: 1, B: 3}
	br := e.Branch(0)
	opts := &SampleOptions{
		Quantize:  true,
		NewFinder: func() RootFinder { return &stuckFinder{} },
	}
	part, err := e.SamplePart(br.Start, br.End, opts)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, br.Start, part.Start)
	diff(t, br.End, part.End)
	diff(t, 2, part.Dropped)
	diff(t, false, part.Converged)
	if want := int(math.Round(math.Pi/OneDegree)) + 1; len(part.Points)+part.Dropped != want {
		t.Errorf("got %d points and %d dropped, want %d samples", len(part.Points), part.Dropped, want)
	}
	for i, pt := range part.Points {
		if !pt.IsFinite() {
			t.Errorf("point %d is %s", i, pt)
		}
	}
}

func TestSamplePartErrors(t *testing.T) {
	if _, err := (Envelope{A: 1, B: 1}).SamplePart(0, 1, nil); !errors.Is(err, ErrEqualRates) {
		t.Errorf("got error %v, want ErrEqualRates", err)
	}
	if _, err := (Envelope{A: 1, B: 3}).SamplePart(1, 1, nil); !errors.Is(err, ErrEmptyBracket) {
		t.Errorf("got error %v, want ErrEmptyBracket", err)
	}
	if _, err := (Envelope{A: 1, B: 3}).SamplePart(0, math.Pi, &SampleOptions{ClipRadius: 0.2}); !errors.Is(err, ErrOutsideClip) {
		t.Errorf("got error %v, want ErrOutsideClip", err)
	}
}

func TestTrace(t *testing.T) {
	tests := []struct {
		a, b  float64
		parts int
	}{
		{1, 3, 2},
		{2, 7, 5},
		{3, 1, 2},
		{1, 4, 3},
	}
	for _, tt := range tests {
		e := Envelope{A: tt.a, B: tt.b}
		parts, err := e.Trace(&SampleOptions{Quantize: true})
		if err != nil {
			t.Fatalf("%s: %v", e, err)
		}
		if len(parts) != tt.parts {
			t.Errorf("%s: got %d parts, want %d", e, len(parts), tt.parts)
		}
		for _, part := range parts {
			checkPart(t, e, part, DefaultClipRadius, 1e-3)
		}
	}

	if _, err := (Envelope{A: 1, B: 3.5}).Trace(nil); !errors.Is(err, ErrNotIntegral) {
		t.Errorf("got error %v, want ErrNotIntegral", err)
	}
}

func TestTraceBranchesSkipsOutside(t *testing.T) {
	e := Envelope{A: 1, B: 3}
	parts, err := e.TraceBranches(e.Branches(0, 2), &SampleOptions{ClipRadius: 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 0 {
		t.Errorf("got %d parts, want none", len(parts))
	}
}

func TestTraceBranchesReflected(t *testing.T) {
	e := Envelope{A: 1, B: 2 + math.Sqrt(3), Reflect: true}
	parts, err := e.TraceBranches([]Bracket{e.Branch(0)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(parts))
	}
	checkPart(t, e, parts[0], DefaultClipRadius, 1e-6)

	// The branch is symmetric about the x axis through its cusp.
	ys := make([]float64, len(parts[0].Points))
	for i, pt := range parts[0].Points {
		ys[i] = pt.Y
	}
	rev := make([]float64, len(ys))
	copy(rev, ys)
	floats.Reverse(rev)
	floats.Scale(-1, rev)
	if !floats.EqualApprox(ys, rev, 1e-6) {
		t.Error("reflected branch isn't symmetric about the x axis")
	}
}
