package tricuspid

import "fmt"

// Pair is a pair of integer circle rates.
type Pair struct {
	A, B int
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.A, p.B)
}

// Envelope returns the plain envelope for the pair.
func (p Pair) Envelope() (Envelope, error) {
	return NewEnvelope(float64(p.A), float64(p.B), false)
}

// Ratio returns B/A.
func (p Pair) Ratio() float64 {
	return float64(p.B) / float64(p.A)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// CoprimePairs returns the pairs with minB ≤ B < maxB, 1 ≤ A < B and A, B
// coprime, ordered by B, then A. Pairs with a common factor k draw the same
// curve as the reduced pair, scaled by 1/k, so they are left out.
func CoprimePairs(minB, maxB int) []Pair {
	var out []Pair
	for b := max(minB, 2); b < maxB; b++ {
		for a := 1; a < b; a++ {
			if gcd(a, b) == 1 {
				out = append(out, Pair{A: a, B: b})
			}
		}
	}
	return out
}

// SternBrocot walks the Stern–Brocot tree toward target = B/A and returns
// each mediant visited, stopping before either rate reaches maxB or when a
// mediant equals target. The mediant 1/1 is skipped since equal rates are
// degenerate. target must be positive.
func SternBrocot(target float64, maxB int) []Pair {
	if !(target > 0) {
		return nil
	}
	// Fractions are B/A; the walk starts between 0/1 and 1/0.
	lo := Pair{A: 1, B: 0}
	hi := Pair{A: 0, B: 1}
	var out []Pair
	for {
		m := Pair{A: lo.A + hi.A, B: lo.B + hi.B}
		if max(m.A, m.B) >= maxB {
			return out
		}
		if m.A != m.B {
			out = append(out, m)
		}
		switch r := m.Ratio(); {
		case r < target:
			lo = m
		case r > target:
			hi = m
		default:
			return out
		}
	}
}
