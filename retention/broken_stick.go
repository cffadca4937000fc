package retention

// BrokenStickFit is the closed-form null distribution for variance
// proportions when total variance is partitioned uniformly at random
// ("stick breaking"). It is purely a function of the number of components
// p: the expectation at 1-indexed rank k is
//
//	E[k] = (1/p) · Σ_{i=k}^{p} 1/i
//
// so E is strictly decreasing and sums to 1. A component whose observed
// proportion exceeds its rank's expectation carries more variance than the
// null model predicts.
type BrokenStickFit struct {
	p      int
	expect []float64
}

// NewBrokenStick fits the broken-stick expectations for p components.
// p < 1 yields a zero-value fit with no expectations.
func NewBrokenStick(p int) BrokenStickFit {
	if p < 1 {
		return BrokenStickFit{}
	}
	expect := make([]float64, p)
	// Accumulate the harmonic tail right-to-left: one pass, no re-summing.
	tail := 0.0
	for k := p; k >= 1; k-- {
		tail += 1 / float64(k)
		expect[k-1] = tail / float64(p)
	}
	return BrokenStickFit{p: p, expect: expect}
}

// Len returns the number of components the fit was built for.
func (b BrokenStickFit) Len() int { return b.p }

// Expectations returns a copy of the per-rank expected proportions.
func (b BrokenStickFit) Expectations() []float64 {
	out := make([]float64, len(b.expect))
	copy(out, b.expect)
	return out
}

// Exceeds reports, for each rank, whether the observed proportion strictly
// exceeds the null expectation at that rank. props must have length Len().
func (b BrokenStickFit) Exceeds(props []float64) []bool {
	out := make([]bool, len(b.expect))
	for k := range b.expect {
		if k < len(props) && props[k] > b.expect[k] {
			out[k] = true
		}
	}
	return out
}
