package rotation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Criterion selects the simplicity criterion maximized per rotation plane.
// The zero value is Varimax, the library default.
type Criterion int

const (
	// Varimax maximizes the variance of squared loadings within each
	// factor column.
	Varimax Criterion = iota

	// Quartimax maximizes the fourth-power concentration of loadings
	// within each variable row.
	Quartimax
)

// String returns the criterion name used in published model options.
func (c Criterion) String() string {
	switch c {
	case Varimax:
		return "varimax"
	case Quartimax:
		return "quartimax"
	default:
		return fmt.Sprintf("Criterion(%d)", int(c))
	}
}

// Defaults for the sweep loop.
const (
	// DefaultTol is the minimum full-sweep criterion improvement below
	// which rotation is considered converged.
	DefaultTol = 1e-6

	// DefaultMaxSweeps caps the number of full pairwise sweeps.
	DefaultMaxSweeps = 100
)

// angleEps discards numerically void plane rotations.
const angleEps = 1e-12

// Options configures rotation. Zero Tol/MaxSweeps select the documented
// defaults; negative values are rejected with ErrBadParam.
//
// Normalize enables row-wise Kaiser normalization: each variable row is
// divided by the square root of its communality before sweeping and
// restored afterwards, so high-communality variables do not dominate the
// criterion. It is off by default.
type Options struct {
	Criterion Criterion
	Tol       float64
	MaxSweeps int
	Normalize bool
}

// DefaultOptions returns the varimax defaults without normalization.
func DefaultOptions() Options {
	return Options{Criterion: Varimax, Tol: DefaultTol, MaxSweeps: DefaultMaxSweeps}
}

// Result is the outcome of a rotation run.
//
//   - Loadings  — the rotated p×k matrix, equal to the input times Rotation.
//   - Rotation  — the accumulated k×k orthogonal matrix (RᵗR = I within
//     numerical tolerance).
//   - Sweeps    — full sweeps executed.
//   - Converged — whether the criterion improvement fell below tolerance
//     before the sweep cap; false means the best iterate was returned on
//     cap exhaustion.
//   - Value     — the final criterion value, evaluated on the working
//     matrix the stop condition tracked; under Normalize that is the
//     Kaiser-normalized loadings, not the denormalized output.
type Result struct {
	Loadings  *mat.Dense
	Rotation  *mat.Dense
	Sweeps    int
	Converged bool
	Value     float64
}

// Rotate applies iterative pairwise-plane orthogonal rotation to a p×k
// loading matrix under the configured criterion. The input is copied, never
// mutated. A single-column matrix is already as simple as it can get and is
// returned unchanged with the identity rotation.
//
// Errors: ErrNilMatrix, ErrUnknownMethod, ErrBadParam.
func Rotate(loadings *mat.Dense, opts Options) (*Result, error) {
	if loadings == nil {
		return nil, fmt.Errorf("Rotate: %w", ErrNilMatrix)
	}
	if opts.Criterion != Varimax && opts.Criterion != Quartimax {
		return nil, fmt.Errorf("Rotate: %v: %w", opts.Criterion, ErrUnknownMethod)
	}
	if opts.Tol < 0 || opts.MaxSweeps < 0 {
		return nil, fmt.Errorf("Rotate: tol=%v maxSweeps=%d: %w", opts.Tol, opts.MaxSweeps, ErrBadParam)
	}
	if opts.Tol == 0 {
		opts.Tol = DefaultTol
	}
	if opts.MaxSweeps == 0 {
		opts.MaxSweeps = DefaultMaxSweeps
	}

	p, k := loadings.Dims()
	work := mat.DenseCopyOf(loadings)
	rot := identity(k)
	if k < 2 {
		return &Result{
			Loadings:  work,
			Rotation:  rot,
			Sweeps:    0,
			Converged: true,
			Value:     criterionValue(work, opts.Criterion),
		}, nil
	}

	// Kaiser normalization: weight rows to unit communality for the sweeps.
	var rowScale []float64
	if opts.Normalize {
		rowScale = make([]float64, p)
		for i := 0; i < p; i++ {
			var ss float64
			for j := 0; j < k; j++ {
				v := work.At(i, j)
				ss += v * v
			}
			rowScale[i] = math.Sqrt(ss)
			if rowScale[i] > 0 {
				for j := 0; j < k; j++ {
					work.Set(i, j, work.At(i, j)/rowScale[i])
				}
			}
		}
	}

	fp := float64(p)
	prev := criterionValue(work, opts.Criterion)
	sweeps := 0
	converged := false

	for sweep := 0; sweep < opts.MaxSweeps; sweep++ {
		sweeps = sweep + 1

		for a := 0; a < k-1; a++ {
			for b := a + 1; b < k; b++ {
				// Closed-form plane angle (Kaiser): accumulate the quartic
				// trigonometric sums over the two columns.
				var sumU, sumV, sumC, sumD float64
				for i := 0; i < p; i++ {
					x, y := work.At(i, a), work.At(i, b)
					u := x*x - y*y
					v := 2 * x * y
					sumU += u
					sumV += v
					sumC += u*u - v*v
					sumD += 2 * u * v
				}

				var num, den float64
				if opts.Criterion == Varimax {
					num = sumD - 2*sumU*sumV/fp
					den = sumC - (sumU*sumU-sumV*sumV)/fp
				} else {
					num = sumD
					den = sumC
				}

				phi := 0.25 * math.Atan2(num, den)
				if math.Abs(phi) < angleEps {
					continue
				}
				c, s := math.Cos(phi), math.Sin(phi)
				rotatePair(work, a, b, c, s)
				rotatePair(rot, a, b, c, s)
			}
		}

		cur := criterionValue(work, opts.Criterion)
		if cur-prev < opts.Tol {
			converged = true
			break
		}
		prev = cur
	}

	// Capture the criterion on the matrix the sweeps optimized, then undo
	// the Kaiser row weighting.
	value := criterionValue(work, opts.Criterion)
	if opts.Normalize {
		for i := 0; i < p; i++ {
			if rowScale[i] > 0 {
				for j := 0; j < k; j++ {
					work.Set(i, j, work.At(i, j)*rowScale[i])
				}
			}
		}
	}

	return &Result{
		Loadings:  work,
		Rotation:  rot,
		Sweeps:    sweeps,
		Converged: converged,
		Value:     value,
	}, nil
}

// rotatePair applies the 2×2 plane rotation with cosine c and sine s to
// columns a and b of m.
func rotatePair(m *mat.Dense, a, b int, c, s float64) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		x, y := m.At(i, a), m.At(i, b)
		m.Set(i, a, c*x+s*y)
		m.Set(i, b, c*y-s*x)
	}
}

// criterionValue evaluates the simplicity criterion being maximized; the
// sweep loop stops when a full sweep no longer improves it.
func criterionValue(m *mat.Dense, crit Criterion) float64 {
	p, k := m.Dims()
	fp := float64(p)

	var total float64
	switch crit {
	case Quartimax:
		for i := 0; i < p; i++ {
			for j := 0; j < k; j++ {
				v := m.At(i, j)
				total += v * v * v * v
			}
		}
	default: // Varimax
		for j := 0; j < k; j++ {
			var sum2, sum4 float64
			for i := 0; i < p; i++ {
				v := m.At(i, j)
				sum2 += v * v
				sum4 += v * v * v * v
			}
			total += sum4 - sum2*sum2/fp
		}
	}
	return total
}

// identity builds a k×k identity matrix.
func identity(k int) *mat.Dense {
	m := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		m.Set(i, i, 1)
	}
	return m
}
