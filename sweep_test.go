package tricuspid

import (
	"math"
	"testing"
)

func TestCoprimePairs(t *testing.T) {
	want := []Pair{{1, 2}, {1, 3}, {2, 3}, {1, 4}, {3, 4}}
	diff(t, want, CoprimePairs(2, 5))

	for _, p := range CoprimePairs(1, 40) {
		if p.A < 1 || p.A >= p.B || gcd(p.A, p.B) != 1 {
			t.Errorf("bad pair %s", p)
		}
		if _, err := p.Envelope(); err != nil {
			t.Errorf("pair %s: %v", p, err)
		}
	}
	if got := CoprimePairs(5, 5); len(got) != 0 {
		t.Errorf("got %v from empty range", got)
	}
}

func TestSternBrocot(t *testing.T) {
	want := []Pair{{1, 2}, {1, 3}, {1, 4}, {2, 7}, {3, 11}, {4, 15}}
	diff(t, want, SternBrocot(2+math.Sqrt(3), 20))

	// An exact hit ends the walk.
	diff(t, []Pair{{1, 2}, {2, 3}}, SternBrocot(1.5, 100))

	// The ratios close in on the target.
	pairs := SternBrocot(math.Pi, 1000)
	last := pairs[len(pairs)-1]
	if d := math.Abs(last.Ratio() - math.Pi); d > 1e-3 {
		t.Errorf("last pair %s is %g from π", last, d)
	}
	if SternBrocot(-1, 100) != nil {
		t.Error("walk toward a negative target")
	}
}

func TestGCD(t *testing.T) {
	diff(t, 6, gcd(12, 18))
	diff(t, 1, gcd(7, 15))
	diff(t, 5, gcd(0, 5))
	diff(t, 3, gcd(-9, 6))
}
