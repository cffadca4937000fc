package retention

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Method selects one retention policy. The zero value is BrokenStick, the
// library default.
type Method int

const (
	// BrokenStick retains ranks whose proportion strictly exceeds the
	// broken-stick null expectation at the same rank.
	BrokenStick Method = iota

	// TopN retains the min(NumKeep, p) largest components.
	TopN

	// TopPct retains the smallest prefix whose cumulative proportion is at
	// least PctKeep.
	TopPct

	// Kaiser retains components whose proportion strictly exceeds
	// 1/DataDim.
	Kaiser
)

// String returns the policy name used in published model options.
func (m Method) String() string {
	switch m {
	case BrokenStick:
		return "broken_stick"
	case TopN:
		return "top_n"
	case TopPct:
		return "top_pct"
	case Kaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Defaults for policy parameters.
const (
	// DefaultNumKeep is the TopN component count when none is given.
	DefaultNumKeep = 5

	// DefaultPctKeep is the TopPct cumulative-proportion target when none
	// is given.
	DefaultPctKeep = 0.90
)

// Options carries the chosen policy and its parameters. Only the parameter
// belonging to the chosen Method is consulted.
//
//   - NumKeep — TopN count; 0 means DefaultNumKeep, negative is ErrBadParam.
//   - PctKeep — TopPct target; 0 means DefaultPctKeep, outside (0,1] is
//     ErrBadParam.
//   - DataDim — Kaiser denominator; 0 means len(props), negative is
//     ErrBadParam.
type Options struct {
	Method  Method
	NumKeep int
	PctKeep float64
	DataDim int
}

// DefaultOptions returns the library defaults: the broken-stick policy with
// the standard parameter fallbacks.
func DefaultOptions() Options {
	return Options{
		Method:  BrokenStick,
		NumKeep: DefaultNumKeep,
		PctKeep: DefaultPctKeep,
	}
}

// Select applies the configured policy to a descending proportion sequence
// and returns the retained ranks in ascending order.
//
// Errors: ErrNoProportions, ErrBadParam, ErrUnknownMethod, and ErrEmptySet
// when the policy keeps nothing.
func Select(props []float64, opts Options) ([]int, error) {
	if len(props) == 0 {
		return nil, ErrNoProportions
	}

	var (
		idx []int
		err error
	)
	switch opts.Method {
	case TopN:
		idx, err = retainTopN(props, opts.NumKeep)
	case TopPct:
		idx, err = retainTopPct(props, opts.PctKeep)
	case Kaiser:
		idx, err = retainKaiser(props, opts.DataDim)
	case BrokenStick:
		idx, err = retainBrokenStick(props)
	default:
		return nil, fmt.Errorf("%v: %w", opts.Method, ErrUnknownMethod)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Method, err)
	}
	if len(idx) == 0 {
		return nil, fmt.Errorf("%s: %w", opts.Method, ErrEmptySet)
	}
	return idx, nil
}

// retainTopN keeps ranks 0..min(n,p)-1; they are the n largest because the
// proportions arrive in descending order.
func retainTopN(props []float64, n int) ([]int, error) {
	if n == 0 {
		n = DefaultNumKeep
	}
	if n < 0 {
		return nil, fmt.Errorf("NumKeep=%d: %w", n, ErrBadParam)
	}
	if n > len(props) {
		n = len(props)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx, nil
}

// retainTopPct keeps the minimal prefix whose cumulative proportion reaches
// pct.
func retainTopPct(props []float64, pct float64) ([]int, error) {
	if pct == 0 {
		pct = DefaultPctKeep
	}
	if pct < 0 || pct > 1 {
		return nil, fmt.Errorf("PctKeep=%v: %w", pct, ErrBadParam)
	}
	cum := make([]float64, len(props))
	floats.CumSum(cum, props)

	for i, c := range cum {
		if c >= pct {
			idx := make([]int, i+1)
			for j := range idx {
				idx[j] = j
			}
			return idx, nil
		}
	}
	// Cumulative sum never reached pct (possible only through rounding when
	// pct is very close to 1): keep everything.
	idx := make([]int, len(props))
	for j := range idx {
		idx[j] = j
	}
	return idx, nil
}

// retainKaiser keeps ranks whose proportion strictly exceeds 1/dataDim.
// A proportion exactly at the threshold is not retained.
func retainKaiser(props []float64, dataDim int) ([]int, error) {
	if dataDim == 0 {
		dataDim = len(props)
	}
	if dataDim < 0 {
		return nil, fmt.Errorf("DataDim=%d: %w", dataDim, ErrBadParam)
	}
	threshold := 1 / float64(dataDim)
	var idx []int
	for i, p := range props {
		if p > threshold {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

// retainBrokenStick keeps ranks whose proportion strictly exceeds the
// broken-stick expectation at the same rank. The comparison is elementwise,
// so the result may be non-contiguous.
func retainBrokenStick(props []float64) ([]int, error) {
	fit := NewBrokenStick(len(props))
	var idx []int
	for i, above := range fit.Exceeds(props) {
		if above {
			idx = append(idx, i)
		}
	}
	return idx, nil
}
