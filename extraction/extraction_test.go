package extraction_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tsbach/fa-kit/extraction"
)

// diag321 is the p=3 scenario used across the suite: eigenvalues 3, 2, 1
// with the standard basis as eigenvectors.
func diag321() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		3, 0, 0,
		0, 2, 0,
		0, 0, 1,
	})
}

// TestExtract_NilMatrix verifies the nil guard.
func TestExtract_NilMatrix(t *testing.T) {
	_, err := extraction.Extract(nil, nil)
	assert.ErrorIs(t, err, extraction.ErrNilMatrix, "nil covariance must error")
}

// TestExtract_Diag321 pins the end-to-end reference scenario: proportions
// [1/2, 1/3, 1/6] in descending order, eigenvectors the standard basis
// (up to sign).
func TestExtract_Diag321(t *testing.T) {
	comps, err := extraction.Extract(diag321(), nil)
	require.NoError(t, err)

	require.Len(t, comps.Props, 3)
	assert.InDelta(t, 0.5, comps.Props[0], 1e-12, "first proportion")
	assert.InDelta(t, 1.0/3.0, comps.Props[1], 1e-12, "second proportion")
	assert.InDelta(t, 1.0/6.0, comps.Props[2], 1e-12, "third proportion")

	assert.InDeltaSlice(t, []float64{3, 2, 1}, comps.Values, 1e-12, "eigenvalues in descending order")

	// Column j must be ±e_j.
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, math.Abs(comps.Vectors.At(i, j)), 1e-12,
				"eigenvector %d entry %d", j, i)
		}
	}
}

// TestExtract_ProportionInvariants checks that proportions sum to one and
// are non-increasing for a dense symmetric PSD matrix.
func TestExtract_ProportionInvariants(t *testing.T) {
	// Gram matrix of a fixed 4x3 design: symmetric PSD by construction.
	b := mat.NewDense(4, 3, []float64{
		1.0, 0.2, -0.5,
		0.3, 1.1, 0.4,
		-0.7, 0.5, 0.9,
		0.2, -0.3, 1.3,
	})
	var g mat.Dense
	g.Mul(b.T(), b)
	sym := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			sym.SetSym(i, j, g.At(i, j))
		}
	}

	comps, err := extraction.Extract(sym, nil)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, floats.Sum(comps.Props), 1e-9, "proportions sum to one")
	for i := 1; i < len(comps.Props); i++ {
		assert.LessOrEqual(t, comps.Props[i], comps.Props[i-1]+1e-15,
			"proportions must be non-increasing at rank %d", i)
	}
}

// TestExtract_NoiseSubtraction verifies the documented noise policy: the
// noise covariance is subtracted before decomposition.
func TestExtract_NoiseSubtraction(t *testing.T) {
	noise := mat.NewSymDense(3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	comps, err := extraction.Extract(diag321(), noise)
	require.NoError(t, err)

	// diag(3,2,1) − I = diag(2,1,0): proportions 2/3, 1/3, 0.
	require.Len(t, comps.Props, 3)
	assert.InDelta(t, 2.0/3.0, comps.Props[0], 1e-12, "noise-discounted first proportion")
	assert.InDelta(t, 1.0/3.0, comps.Props[1], 1e-12, "noise-discounted second proportion")
	assert.InDelta(t, 0.0, comps.Props[2], 1e-12, "fully-noise component has zero proportion")
}

// TestExtract_NoiseDimensionMismatch verifies the noise dimension guard.
func TestExtract_NoiseDimensionMismatch(t *testing.T) {
	noise := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	_, err := extraction.Extract(diag321(), noise)
	assert.ErrorIs(t, err, extraction.ErrDimensionMismatch, "2x2 noise against 3x3 covariance")
}

// TestExtract_Degenerate verifies that a zero matrix cannot define
// proportions.
func TestExtract_Degenerate(t *testing.T) {
	zero := mat.NewSymDense(2, nil)
	_, err := extraction.Extract(zero, nil)
	assert.ErrorIs(t, err, extraction.ErrDegenerate, "zero total variance must error")
}

// oneFactorCorr builds the exact one-factor correlation structure LLᵀ with
// a unit diagonal, for L = (0.9, 0.8, 0.7, 0.6).
func oneFactorCorr() (*mat.SymDense, []float64) {
	l := []float64{0.9, 0.8, 0.7, 0.6}
	p := len(l)
	r := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			if i == j {
				r.SetSym(i, i, 1)
			} else {
				r.SetSym(i, j, l[i]*l[j])
			}
		}
	}
	return r, l
}

// TestRefinePAF_OneFactorRecovery checks that refinement converges on an
// exact one-factor structure and recovers the generating loadings: with the
// true communalities on the diagonal the reduced matrix is rank one, so the
// fixed point of the iteration is the generating vector itself.
func TestRefinePAF_OneFactorRecovery(t *testing.T) {
	r, want := oneFactorCorr()

	comps, err := extraction.Extract(r, nil)
	require.NoError(t, err)

	raw := mat.NewDense(4, 1, nil)
	for i := 0; i < 4; i++ {
		raw.Set(i, 0, comps.Vectors.At(i, 0))
	}

	res, err := extraction.RefinePAF(raw, r, nil, extraction.DefaultPAFOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged, "exact one-factor structure must converge within the cap")
	assert.Less(t, res.Residual, extraction.DefaultPAFTol, "residual below tolerance on convergence")

	// Align sign before comparing against the generator.
	sign := 1.0
	if res.Loadings.At(0, 0) < 0 {
		sign = -1.0
	}
	for i := range want {
		assert.InDelta(t, want[i], sign*res.Loadings.At(i, 0), 1e-2,
			"recovered loading %d", i)
	}
	for i := 0; i < 4; i++ {
		h := res.Loadings.At(i, 0) * res.Loadings.At(i, 0)
		assert.GreaterOrEqual(t, h, 0.0, "communality %d lower bound", i)
		assert.LessOrEqual(t, h, 1.0+1e-9, "communality %d upper bound", i)
	}
}

// TestRefinePAF_CapReturnsBestIterate verifies that hitting the iteration
// cap is reported, not fatal.
func TestRefinePAF_CapReturnsBestIterate(t *testing.T) {
	r, _ := oneFactorCorr()
	comps, err := extraction.Extract(r, nil)
	require.NoError(t, err)

	raw := mat.NewDense(4, 1, nil)
	for i := 0; i < 4; i++ {
		raw.Set(i, 0, comps.Vectors.At(i, 0))
	}

	res, err := extraction.RefinePAF(raw, r, nil, extraction.PAFOptions{Tol: 1e-15, MaxIter: 1})
	require.NoError(t, err, "cap exhaustion is not an error")
	assert.False(t, res.Converged, "one iteration at 1e-15 tolerance cannot converge")
	assert.Equal(t, 1, res.Iterations, "exactly one iteration ran")
	assert.NotNil(t, res.Loadings, "the last iterate is still returned")
}

// TestRefinePAF_Guards covers the argument validation.
func TestRefinePAF_Guards(t *testing.T) {
	r, _ := oneFactorCorr()

	_, err := extraction.RefinePAF(nil, r, nil, extraction.DefaultPAFOptions())
	assert.ErrorIs(t, err, extraction.ErrNilMatrix, "nil loadings")

	wrongRows := mat.NewDense(3, 1, nil)
	_, err = extraction.RefinePAF(wrongRows, r, nil, extraction.DefaultPAFOptions())
	assert.ErrorIs(t, err, extraction.ErrDimensionMismatch, "loading rows must match covariance dim")

	ok := mat.NewDense(4, 1, []float64{0.5, 0.5, 0.5, 0.5})
	_, err = extraction.RefinePAF(ok, r, nil, extraction.PAFOptions{Tol: -1})
	assert.ErrorIs(t, err, extraction.ErrBadParam, "negative tolerance")
}
