package tricuspid

import "math"

// ChordFamily is a family of chords joining points that travel the same arc
// length along two circles. Chord i joins From.Station(i·Step) to
// To.Station(i·Step).
type ChordFamily struct {
	From, To Circle
	Step     float64
	Count    int
}

// Chords returns the chords of the family.
func (cf ChordFamily) Chords() []Line {
	out := make([]Line, cf.Count)
	for i := range out {
		along := float64(i) * cf.Step
		out[i] = Line{cf.From.Station(along), cf.To.Station(along)}
	}
	return out
}

// Envelope approximates the envelope of the chords by the crossing points
// of consecutive chords, the last one paired with the first. Pairs of
// parallel chords are skipped.
func (cf ChordFamily) Envelope() []Point {
	return ChordEnvelope(cf.Chords())
}

// ChordEnvelope returns the crossing points of each chord with the next, in
// cyclic order. Parallel pairs and non-finite crossings are skipped.
func ChordEnvelope(chords []Line) []Point {
	out := make([]Point, 0, len(chords))
	for i, l := range chords {
		pt, ok := l.CrossingPoint(chords[(i+1)%len(chords)])
		if !ok || !pt.IsFinite() {
			continue
		}
		out = append(out, pt)
	}
	return out
}

// ChordStats counts chords shorter and longer than a threshold. Chords within
// the tolerance of the threshold count as neither.
type ChordStats struct {
	Short, Long, Even int
}

// Stats classifies the chords of the family by length.
func (cf ChordFamily) Stats(threshold, tolerance float64) ChordStats {
	return CountChords(cf.Chords(), threshold, tolerance)
}

// CountChords classifies chords by length against threshold.
func CountChords(chords []Line, threshold, tolerance float64) ChordStats {
	var st ChordStats
	for _, l := range chords {
		switch d := l.Length(); {
		case d < threshold-tolerance:
			st.Short++
		case d > threshold+tolerance:
			st.Long++
		default:
			st.Even++
		}
	}
	return st
}

// UnitTripleFamily is the family of chords between the unit circle and the
// circle of radius 3, one every five degrees of arc length over three turns
// of the unit circle, which is one turn of the larger one. Its chords are
// √10 long where the two stations are 90° apart.
func UnitTripleFamily() ChordFamily {
	return ChordFamily{
		From:  Circle{Radius: 1},
		To:    Circle{Radius: 3},
		Step:  DegreesToRadians(5),
		Count: 216,
	}
}

// AxisChords returns n chords between the x axis and the y axis. For the
// angles θ evenly spaced around a turn, offset by half a step so that none
// is a multiple of 90°, chord i joins (tan θ, 0) to (0, cot θ). It returns
// nil for n ≤ 0.
func AxisChords(n int) []Line {
	if n <= 0 {
		return nil
	}
	xaxis := NewAxis(Point{}, 0)
	yaxis := NewAxis(Point{}, math.Pi/2)
	step := binTurn / int64(n)
	out := make([]Line, n)
	for i := range out {
		th := BinAngle(int64(-Deg180) + step/2 + int64(i)*step).Radians()
		out[i] = Line{xaxis.Station(math.Tan(th)), yaxis.Station(1 / math.Tan(th))}
	}
	return out
}

// Check142 returns the cross product (p1 − p0) × (p2 − p0) of the unit-circle
// point at angle, the point at 4·angle on the circle of radius ¼ and the point
// at 2·angle on the circle of radius ½. At angle 0 all three lie on the x
// axis moving upward at unit speed, and they stay collinear to third order in
// the angle.
func Check142(angle float64) float64 {
	p0 := Point(VecFromAngle(angle))
	p1 := Point(VecFromAngle(4 * angle).Div(4))
	p2 := Point(VecFromAngle(2 * angle).Div(2))
	return p1.Sub(p0).Cross(p2.Sub(p0))
}
