package retention_test

import (
	"fmt"

	"github.com/tsbach/fa-kit/retention"
)

// ExampleSelect compares the broken-stick null model against an observed
// proportion sequence.
func ExampleSelect() {
	props := []float64{0.5, 1.0 / 3.0, 1.0 / 6.0}

	fit := retention.NewBrokenStick(len(props))
	e := fit.Expectations()
	fmt.Printf("expected: %.4f %.4f %.4f\n", e[0], e[1], e[2])

	idx, err := retention.Select(props, retention.Options{Method: retention.BrokenStick})
	if err != nil {
		fmt.Println("select:", err)
		return
	}
	fmt.Println("retained:", idx)

	// Output:
	// expected: 0.6111 0.2778 0.1111
	// retained: [1 2]
}
