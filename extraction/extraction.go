package extraction

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EigenTol is the relative tolerance separating a numerically invalid
// negative eigenvalue from round-off noise. An eigenvalue below
// −EigenTol·max(1,|λmax|) is discarded; a small negative within the band is
// kept and clamped to zero for proportion purposes.
const EigenTol = 1e-9

// Components is the ordered result of eigen-extraction.
//
//   - Vectors — p×m matrix whose column j is the unit eigenvector of the
//     j-th largest eigenvalue (m = p unless invalid pairs were dropped).
//   - Values  — eigenvalues in the same descending order, small negatives
//     clamped to zero.
//   - Props   — Values normalized to sum to one.
type Components struct {
	Vectors *mat.Dense
	Values  []float64
	Props   []float64
}

// Extract eigen-decomposes the (noise-adjusted) association matrix.
//
// When noise is non-nil it is subtracted entrywise from cov before the
// decomposition; the subtraction policy discounts measurement-noise
// variance from every extracted component. Eigenpairs are sorted by
// descending eigenvalue. Pairs whose eigenvalue is NaN or negative beyond
// EigenTol are discarded as numerically invalid; all other pairs are kept,
// so Vectors normally has the full p columns.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (noise vs cov),
// ErrEigenFailed, ErrDegenerate (all variance gone).
func Extract(cov, noise *mat.SymDense) (*Components, error) {
	if cov == nil {
		return nil, fmt.Errorf("Extract: %w", ErrNilMatrix)
	}
	work, err := noiseAdjust(cov, noise)
	if err != nil {
		return nil, fmt.Errorf("Extract: %w", err)
	}
	p := work.SymmetricDim()

	var es mat.EigenSym
	if !es.Factorize(work, true) {
		return nil, fmt.Errorf("Extract: %w", ErrEigenFailed)
	}
	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	// gonum reports eigenvalues in ascending order; we need descending.
	order := make([]int, p)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] > values[order[b]] })

	scaleTol := EigenTol
	if len(values) > 0 {
		if m := math.Abs(values[order[0]]); m > 1 {
			scaleTol *= m
		}
	}

	var (
		kept     []int
		keptVals []float64
	)
	for _, j := range order {
		v := values[j]
		if math.IsNaN(v) || v < -scaleTol {
			continue // numerically invalid pair
		}
		if v < 0 {
			v = 0
		}
		kept = append(kept, j)
		keptVals = append(keptVals, v)
	}

	total := floats.Sum(keptVals)
	if len(kept) == 0 || total == 0 {
		return nil, fmt.Errorf("Extract: %w", ErrDegenerate)
	}

	out := mat.NewDense(p, len(kept), nil)
	for c, j := range kept {
		for i := 0; i < p; i++ {
			out.Set(i, c, vectors.At(i, j))
		}
	}
	props := make([]float64, len(keptVals))
	for i, v := range keptVals {
		props[i] = v / total
	}

	return &Components{Vectors: out, Values: keptVals, Props: props}, nil
}

// noiseAdjust returns cov − noise (or cov itself when noise is nil),
// validating that the dimensions agree.
func noiseAdjust(cov, noise *mat.SymDense) (*mat.SymDense, error) {
	if noise == nil {
		return cov, nil
	}
	p := cov.SymmetricDim()
	if noise.SymmetricDim() != p {
		return nil, fmt.Errorf("noise is %dx%d, covariance is %dx%d: %w",
			noise.SymmetricDim(), noise.SymmetricDim(), p, p, ErrDimensionMismatch)
	}
	adj := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			adj.SetSym(i, j, cov.At(i, j)-noise.At(i, j))
		}
	}
	return adj, nil
}
