package tricuspid

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
)

var degenerateB = 2 + math.Sqrt(3)

func TestEstimateSecondDerivative(t *testing.T) {
	tests := []struct {
		a, b float64
		want float64
	}{
		{1, 3, 1.0 / 3.0},
		{1, 4, -3.0 / 16.0},
		{2, 5, 0.825},
	}
	for _, tt := range tests {
		got, err := EstimateSecondDerivative(tt.a, tt.b)
		if err != nil {
			t.Fatal(err)
		}
		if !approxEqual(got, tt.want, 1e-6) {
			t.Errorf("(%g, %g): got %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEstimateSecondDerivativeFiniteDifference(t *testing.T) {
	for _, b := range []float64{3, 3.3, 10.0 / 3.0, 3.5, 4, 5.5} {
		e := Envelope{A: 1, B: b, Reflect: true}
		x := func(th float64) float64 { return e.Eval(th).X }
		want := fd.Derivative(x, 0, &fd.Settings{Formula: fd.Central2nd, Step: 1e-3})
		got, err := EstimateSecondDerivative(1, b)
		if err != nil {
			t.Fatal(err)
		}
		if !approxEqual(got, want, 1e-4) {
			t.Errorf("b = %g: got %v, finite difference gives %v", b, got, want)
		}
	}
}

func TestSecondDerivativeSeries(t *testing.T) {
	series, err := SecondDerivativeSeries(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	est, err := EstimateSecondDerivative(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if series[DefaultEstimatorIndex] != est {
		t.Errorf("series[%d] = %v, estimate %v", DefaultEstimatorIndex, series[DefaultEstimatorIndex], est)
	}
	// The estimates settle as the angle shrinks, before cancellation sets in.
	for i := 8; i <= DefaultEstimatorIndex; i++ {
		if !approxEqual(series[i], 1.0/3.0, 1e-3) {
			t.Errorf("series[%d] = %v, want about 1/3", i, series[i])
		}
	}
}

func TestEstimateSecondDerivativeErrors(t *testing.T) {
	if _, err := EstimateSecondDerivativeAt(1, 3, EstimatorSteps); !errors.Is(err, ErrEstimatorIndex) {
		t.Errorf("got error %v, want ErrEstimatorIndex", err)
	}
	if _, err := EstimateSecondDerivativeAt(1, 3, -1); !errors.Is(err, ErrEstimatorIndex) {
		t.Errorf("got error %v, want ErrEstimatorIndex", err)
	}
	if _, err := EstimateSecondDerivative(2, 2); !errors.Is(err, ErrEqualRates) {
		t.Errorf("got error %v, want ErrEqualRates", err)
	}
	if _, err := SecondDerivativeSeries(0, 2); !errors.Is(err, ErrZeroRate) {
		t.Errorf("got error %v, want ErrZeroRate", err)
	}
}

func TestCuspOrientation(t *testing.T) {
	tests := []struct {
		a, b float64
		want CuspKind
	}{
		{1, 3, CuspIn},
		{1, 3.5, CuspIn},
		{1, 4, CuspOut},
		{1, 7, CuspOut},
	}
	for _, tt := range tests {
		got, err := CuspOrientation(tt.a, tt.b)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("(%g, %g): got %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
	diff(t, "in", CuspIn.String())
	diff(t, "out", CuspOut.String())
	diff(t, "degenerate", CuspDegenerate.String())
}

func TestFindDegenerateB(t *testing.T) {
	d, err := FindDegenerateB(1, 3.3, 4.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Converged {
		t.Error("search didn't converge")
	}
	if !approxEqual(d.B, degenerateB, 1e-5) {
		t.Errorf("got b = %v, want %v", d.B, degenerateB)
	}
	if !(d.LowDer2 > 0 && d.HighDer2 < 0) {
		t.Errorf("got bracket estimates %v and %v", d.LowDer2, d.HighDer2)
	}

	again, err := FindDegenerateB(1, 3.3, 4.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, d, again)

	// Degeneracy scales with the rates.
	d2, err := FindDegenerateB(2, 6.6, 8.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(d2.B, 2*degenerateB, 1e-5) {
		t.Errorf("a = 2: got b = %v, want %v", d2.B, 2*degenerateB)
	}
}

func TestFindDegenerateBNoSignChange(t *testing.T) {
	// Both ends of [10/3, 3.5] lie below the degenerate rate.
	_, err := FindDegenerateB(1, 10.0/3.0, 3.5, nil)
	if !errors.Is(err, ErrNoSignChange) {
		t.Fatalf("got error %v, want ErrNoSignChange", err)
	}

	d, err := FindDegenerateB(1, 10.0/3.0, 3.5, &SearchOptions{Widen: true})
	if err != nil {
		t.Fatal(err)
	}
	if !d.Converged || !approxEqual(d.B, degenerateB, 1e-5) {
		t.Errorf("widened search: got %+v, want b = %v", d, degenerateB)
	}
}

func TestFindDegenerateBFinder(t *testing.T) {
	calls := 0
	opts := &SearchOptions{
		Index: 12,
		NewFinder: func() RootFinder {
			calls++
			return &ITP{Epsilon: 1e-9, N0: 1}
		},
	}
	d, err := FindDegenerateB(1, 3.3, 4.0, opts)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("finder created %d times, want 1", calls)
	}
	if !approxEqual(d.B, degenerateB, 1e-4) {
		t.Errorf("got b = %v, want %v", d.B, degenerateB)
	}
}
