package covar

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Options configures covariance construction.
//
// Fields:
//   - Demean — subtract per-column means before forming the covariance
//     (sample path only; the association path has no demeaning concept).
//   - Scale  — divide by per-column RMS (sample path) or by sqrt(diagonal)
//     (association path), yielding a correlation-like matrix.
//   - Labels — external identifiers, one per variable. When nil, positional
//     identifiers "0".."p-1" are assigned.
//
// Demean alone produces a covariance matrix; Demean together with Scale
// produces a correlation matrix.
type Options struct {
	Demean bool
	Scale  bool
	Labels []string
}

// Result is the output of either construction path.
//
// Mean is nil on the association path, where no column means exist. Scale is
// always populated: per-column RMS on the sample path, sqrt(diagonal) on the
// association path. A degenerate (zero) scale entry is recorded as 1 and the
// corresponding variable is left unscaled, mirroring how degenerate rows are
// treated in row-normalization kernels.
type Result struct {
	Cov    *mat.SymDense
	Mean   []float64
	Scale  []float64
	Labels []string
}

// FromSamples builds a covariance (or correlation) matrix from an
// n-samples × p-features data matrix.
//
// The input is copied; preprocessing never mutates the caller's matrix.
// Column means are always computed and recorded so that scoring can replay
// the same preprocessing. When Demean is set the means are subtracted before
// anything else; the per-column RMS sqrt(mean(x²)) is then measured on the
// possibly-demeaned columns, and divided out when Scale is set. The final
// product is XᵀX/(n−1).
//
// Errors: ErrNilMatrix, ErrTooFewSamples (n < 2), ErrNotNumeric (NaN/Inf
// entries), ErrLabelCount.
func FromSamples(data *mat.Dense, opts Options) (*Result, error) {
	if data == nil {
		return nil, ErrNilMatrix
	}
	n, p := data.Dims()
	if n < 2 {
		return nil, fmt.Errorf("FromSamples: %d row(s): %w", n, ErrTooFewSamples)
	}
	if err := validateFinite(data); err != nil {
		return nil, fmt.Errorf("FromSamples: %w", err)
	}
	labels, err := labelsFor(p, opts.Labels)
	if err != nil {
		return nil, fmt.Errorf("FromSamples: %w", err)
	}

	work := mat.DenseCopyOf(data)

	// Column means, recorded unconditionally for later scoring.
	mean := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, work)
		mean[j] = stat.Mean(col, nil)
	}
	if opts.Demean {
		for i := 0; i < n; i++ {
			for j := 0; j < p; j++ {
				work.Set(i, j, work.At(i, j)-mean[j])
			}
		}
	}

	// Column RMS on the (possibly demeaned) data.
	scale := make([]float64, p)
	for j := 0; j < p; j++ {
		var ss float64
		for i := 0; i < n; i++ {
			v := work.At(i, j)
			ss += v * v
		}
		scale[j] = math.Sqrt(ss / float64(n))
	}
	if opts.Scale {
		for j := 0; j < p; j++ {
			if scale[j] == 0 {
				scale[j] = 1 // degenerate column stays unscaled
				continue
			}
			for i := 0; i < n; i++ {
				work.Set(i, j, work.At(i, j)/scale[j])
			}
		}
	}

	var prod mat.Dense
	prod.Mul(work.T(), work)
	prod.Scale(1/float64(n-1), &prod)

	return &Result{
		Cov:    symFromDense(&prod),
		Mean:   mean,
		Scale:  scale,
		Labels: labels,
	}, nil
}

// FromCov accepts a matrix that is already a square association matrix
// (covariance or correlation). The per-variable scale is derived as
// sqrt(diagonal); when Scale is set, rows and columns are divided by it
// (outer normalization), producing a unit-diagonal correlation matrix.
// No demeaning is defined on this path and Mean is nil.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNotNumeric (NaN/Inf entries or a
// negative diagonal), ErrLabelCount.
func FromCov(data *mat.Dense, opts Options) (*Result, error) {
	if data == nil {
		return nil, ErrNilMatrix
	}
	r, c := data.Dims()
	if r != c {
		return nil, fmt.Errorf("FromCov: shape %dx%d: %w", r, c, ErrNonSquare)
	}
	if err := validateFinite(data); err != nil {
		return nil, fmt.Errorf("FromCov: %w", err)
	}
	labels, err := labelsFor(r, opts.Labels)
	if err != nil {
		return nil, fmt.Errorf("FromCov: %w", err)
	}

	scale := make([]float64, r)
	for j := 0; j < r; j++ {
		d := data.At(j, j)
		if d < 0 {
			return nil, fmt.Errorf("FromCov: negative diagonal at %d: %w", j, ErrNotNumeric)
		}
		scale[j] = math.Sqrt(d)
	}

	cov := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			cov.SetSym(i, j, data.At(i, j))
		}
	}
	if opts.Scale {
		for j := range scale {
			if scale[j] == 0 {
				scale[j] = 1
			}
		}
		for i := 0; i < r; i++ {
			for j := i; j < r; j++ {
				cov.SetSym(i, j, cov.At(i, j)/(scale[i]*scale[j]))
			}
		}
	}

	return &Result{
		Cov:    cov,
		Mean:   nil,
		Scale:  scale,
		Labels: labels,
	}, nil
}

// CheckNoise validates a separately measured noise covariance against the
// dimension of an already-built association matrix and returns it as a
// symmetric matrix. The input is copied.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch (against dim),
// ErrNotNumeric.
func CheckNoise(noise *mat.Dense, dim int) (*mat.SymDense, error) {
	if noise == nil {
		return nil, ErrNilMatrix
	}
	r, c := noise.Dims()
	if r != c {
		return nil, fmt.Errorf("CheckNoise: shape %dx%d: %w", r, c, ErrNonSquare)
	}
	if r != dim {
		return nil, fmt.Errorf("CheckNoise: noise is %dx%d, data covariance is %dx%d: %w",
			r, c, dim, dim, ErrDimensionMismatch)
	}
	if err := validateFinite(noise); err != nil {
		return nil, fmt.Errorf("CheckNoise: %w", err)
	}

	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sym.SetSym(i, j, noise.At(i, j))
		}
	}
	return sym, nil
}

// symFromDense folds a numerically symmetric product into a SymDense,
// reading the upper triangle.
func symFromDense(d *mat.Dense) *mat.SymDense {
	p, _ := d.Dims()
	sym := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			sym.SetSym(i, j, d.At(i, j))
		}
	}
	return sym
}

// labelsFor resolves the variable labels for p variables: positional
// identifiers when none are supplied, otherwise the supplied slice verified
// to have exactly p entries.
func labelsFor(p int, supplied []string) ([]string, error) {
	if supplied == nil {
		labels := make([]string, p)
		for i := range labels {
			labels[i] = strconv.Itoa(i)
		}
		return labels, nil
	}
	if len(supplied) != p {
		return nil, fmt.Errorf("%d label(s) for %d variable(s): %w", len(supplied), p, ErrLabelCount)
	}
	out := make([]string, p)
	copy(out, supplied)
	return out, nil
}

// validateFinite rejects NaN and ±Inf entries.
func validateFinite(m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("entry (%d,%d): %w", i, j, ErrNotNumeric)
			}
		}
	}
	return nil
}
