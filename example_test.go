package tricuspid_test

import (
	"fmt"
	"math"

	"honnef.co/go/tricuspid"
)

func ExampleSternBrocot() {
	fmt.Println(tricuspid.SternBrocot(2+math.Sqrt(3), 20))
	// Output:
	// [(1, 2) (1, 3) (1, 4) (2, 7) (3, 11) (4, 15)]
}

func ExampleCoprimePairs() {
	fmt.Println(tricuspid.CoprimePairs(2, 6))
	// Output:
	// [(1, 2) (1, 3) (2, 3) (1, 4) (3, 4) (1, 5) (2, 5) (3, 5) (4, 5)]
}

func ExampleEnvelope_Trace() {
	e, err := tricuspid.NewEnvelope(2, 7, false)
	if err != nil {
		panic(err)
	}
	parts, err := e.Trace(&tricuspid.SampleOptions{Quantize: true})
	if err != nil {
		panic(err)
	}
	fmt.Println(len(parts), "branches")
	// Output:
	// 5 branches
}

func ExampleFindDegenerateB() {
	d, err := tricuspid.FindDegenerateB(1, 3.3, 4, nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("b = %.5f, converged: %t\n", d.B, d.Converged)
	// Output:
	// b = 3.73205, converged: true
}

func ExampleCuspOrientation() {
	for _, b := range []float64{3, 4} {
		kind, err := tricuspid.CuspOrientation(1, b)
		if err != nil {
			panic(err)
		}
		fmt.Printf("(1, %g): %s\n", b, kind)
	}
	// Output:
	// (1, 3): in
	// (1, 4): out
}
