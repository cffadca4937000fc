package extraction

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Defaults for principal-axis refinement.
const (
	// DefaultPAFTol is the communality-change tolerance that stops the
	// refinement loop.
	DefaultPAFTol = 1e-4

	// DefaultPAFMaxIter caps the refinement loop so a non-converging
	// problem cannot spin forever.
	DefaultPAFMaxIter = 50
)

// PAFOptions configures principal-axis refinement. Zero values select the
// documented defaults; negative values are rejected with ErrBadParam.
type PAFOptions struct {
	Tol     float64
	MaxIter int
}

// DefaultPAFOptions returns the documented refinement defaults.
func DefaultPAFOptions() PAFOptions {
	return PAFOptions{Tol: DefaultPAFTol, MaxIter: DefaultPAFMaxIter}
}

// PAFResult is the outcome of a refinement run. Non-convergence is not an
// error: Converged is false and Residual holds the last communality change
// so the caller can judge the iterate.
type PAFResult struct {
	Loadings   *mat.Dense
	Iterations int
	Residual   float64
	Converged  bool
}

// RefinePAF re-estimates loadings by iterative principal-axis factoring.
//
// loadings is the p×k block of retained raw components; cov the association
// matrix the components came from; noise the optional noise covariance,
// subtracted under the same policy as Extract. Each iteration replaces the
// working matrix's diagonal with the current communalities (row sums of
// squared loadings), re-decomposes, and rebuilds the loadings from the
// top-k eigenpairs scaled by sqrt of their (non-negative) eigenvalues. The
// loop stops when the largest absolute communality change drops below
// opts.Tol, or after opts.MaxIter iterations.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (loading rows vs covariance
// dimension, or k > p, or noise mismatch), ErrBadParam, ErrEigenFailed.
func RefinePAF(loadings *mat.Dense, cov, noise *mat.SymDense, opts PAFOptions) (*PAFResult, error) {
	if loadings == nil || cov == nil {
		return nil, fmt.Errorf("RefinePAF: %w", ErrNilMatrix)
	}
	if opts.Tol < 0 || opts.MaxIter < 0 {
		return nil, fmt.Errorf("RefinePAF: tol=%v maxIter=%d: %w", opts.Tol, opts.MaxIter, ErrBadParam)
	}
	if opts.Tol == 0 {
		opts.Tol = DefaultPAFTol
	}
	if opts.MaxIter == 0 {
		opts.MaxIter = DefaultPAFMaxIter
	}

	p := cov.SymmetricDim()
	rows, k := loadings.Dims()
	if rows != p || k < 1 || k > p {
		return nil, fmt.Errorf("RefinePAF: loadings %dx%d against covariance %dx%d: %w",
			rows, k, p, p, ErrDimensionMismatch)
	}
	adj, err := noiseAdjust(cov, noise)
	if err != nil {
		return nil, fmt.Errorf("RefinePAF: %w", err)
	}

	// Initial communality estimate from the supplied loadings.
	h := rowSumSquares(loadings)

	current := mat.DenseCopyOf(loadings)
	residual := math.Inf(1)
	iterations := 0
	converged := false

	work := mat.NewSymDense(p, nil)
	for iter := 0; iter < opts.MaxIter; iter++ {
		iterations = iter + 1

		// Reduced matrix: off-diagonal of adj, communalities on the diagonal.
		for i := 0; i < p; i++ {
			for j := i; j < p; j++ {
				if i == j {
					work.SetSym(i, i, h[i])
				} else {
					work.SetSym(i, j, adj.At(i, j))
				}
			}
		}

		var es mat.EigenSym
		if !es.Factorize(work, true) {
			return nil, fmt.Errorf("RefinePAF: iteration %d: %w", iterations, ErrEigenFailed)
		}
		values := es.Values(nil)
		var vectors mat.Dense
		es.VectorsTo(&vectors)

		order := make([]int, p)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return values[order[a]] > values[order[b]] })

		// Top-k loadings, sqrt(eigenvalue)-scaled so row sums of squares are
		// communalities.
		for c := 0; c < k; c++ {
			j := order[c]
			s := math.Sqrt(math.Max(values[j], 0))
			for i := 0; i < p; i++ {
				current.Set(i, c, vectors.At(i, j)*s)
			}
		}

		hNew := rowSumSquares(current)
		residual = 0
		for i := range h {
			if d := math.Abs(hNew[i] - h[i]); d > residual {
				residual = d
			}
		}
		h = hNew

		if residual < opts.Tol {
			converged = true
			break
		}
	}

	return &PAFResult{
		Loadings:   current,
		Iterations: iterations,
		Residual:   residual,
		Converged:  converged,
	}, nil
}

// rowSumSquares returns the per-row sum of squared entries, i.e. the
// communalities of a loading matrix.
func rowSumSquares(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		var ss float64
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			ss += v * v
		}
		out[i] = ss
	}
	return out
}
