package fakit

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tsbach/fa-kit/retention"
	"github.com/tsbach/fa-kit/rotation"
)

// DataOptions configures how input data is preprocessed before the
// covariance is formed.
//
//   - Demean — subtract per-column means (sample path only; ignored when
//     loading an association matrix, which has no demeaning concept).
//   - Scale  — divide by per-column RMS (sample path) or sqrt(diagonal)
//     (association path). Demean+Scale on samples yields a correlation
//     matrix.
//   - Labels — one identifier per variable; nil defaults to "0".."p-1".
//
// The recorded mean and scale are replayed verbatim when scoring new data.
type DataOptions struct {
	Demean bool
	Scale  bool
	Labels []string
}

// FactorModel is the single mutable aggregate the pipeline stages read and
// extend. It is created by LoadSamples or LoadCov, mutated only through its
// stage methods, and owned exclusively by the calling goroutine for the
// duration of any call. All published state is returned as defensive
// copies.
type FactorModel struct {
	cov   *mat.SymDense
	noise *mat.SymDense

	demean bool
	scale  bool
	mean   []float64
	sdev   []float64
	labels []string

	raw    *mat.Dense
	values []float64
	props  []float64

	retained      []int
	retentionOpts retention.Options
	hasRetention  bool

	paf *mat.Dense

	rot          *mat.Dense
	rotationOpts rotation.Options
	hasRotation  bool
}

// Dim returns the number of variables p, or 0 before any data is loaded.
func (m *FactorModel) Dim() int {
	if m.cov == nil {
		return 0
	}
	return m.cov.SymmetricDim()
}

// Labels returns the ordered variable identifiers.
func (m *FactorModel) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Proportions returns each raw component's share of total variance, in
// descending order, or nil before extraction.
func (m *FactorModel) Proportions() []float64 {
	return copyFloats(m.props)
}

// Eigenvalues returns the eigenvalues behind the proportions, in the same
// descending order, or nil before extraction.
func (m *FactorModel) Eigenvalues() []float64 {
	return copyFloats(m.values)
}

// RawComponents returns the p×p matrix of unit eigenvectors (columns, in
// descending-eigenvalue order), or nil before extraction.
func (m *FactorModel) RawComponents() *mat.Dense {
	return copyDense(m.raw)
}

// RetainedIndices returns the ranks selected by the last retention run, in
// ascending order, or nil before retention.
func (m *FactorModel) RetainedIndices() []int {
	if m.retained == nil {
		return nil
	}
	out := make([]int, len(m.retained))
	copy(out, m.retained)
	return out
}

// RetentionOptions returns the options of the last retention run; ok is
// false before any retention has run.
func (m *FactorModel) RetentionOptions() (opts retention.Options, ok bool) {
	return m.retentionOpts, m.hasRetention
}

// PafComponents returns the p×k principal-axis-refined loadings, or nil
// before refinement.
func (m *FactorModel) PafComponents() *mat.Dense {
	return copyDense(m.paf)
}

// RotatedComponents returns the p×k rotated loadings, or nil before
// rotation.
func (m *FactorModel) RotatedComponents() *mat.Dense {
	return copyDense(m.rot)
}

// RotationOptions returns the options of the last rotation run; ok is
// false before any rotation has run.
func (m *FactorModel) RotationOptions() (opts rotation.Options, ok bool) {
	return m.rotationOpts, m.hasRotation
}

func copyFloats(s []float64) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

func copyDense(d *mat.Dense) *mat.Dense {
	if d == nil {
		return nil
	}
	return mat.DenseCopyOf(d)
}
