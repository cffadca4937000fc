package fakit

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tsbach/fa-kit/covar"
	"github.com/tsbach/fa-kit/extraction"
	"github.com/tsbach/fa-kit/retention"
	"github.com/tsbach/fa-kit/rotation"
)

// LoadSamples builds a FactorModel from an n-samples × p-features data
// matrix. The matrix is copied; preprocessing never touches the caller's
// data. See covar.FromSamples for the demean/RMS-scale semantics.
func LoadSamples(data *mat.Dense, opts DataOptions) (*FactorModel, error) {
	res, err := covar.FromSamples(data, covar.Options{
		Demean: opts.Demean,
		Scale:  opts.Scale,
		Labels: opts.Labels,
	})
	if err != nil {
		return nil, err
	}
	return &FactorModel{
		cov:    res.Cov,
		demean: opts.Demean,
		scale:  opts.Scale,
		mean:   res.Mean,
		sdev:   res.Scale,
		labels: res.Labels,
	}, nil
}

// LoadCov builds a FactorModel from a matrix that is already a p×p
// association matrix. Demean is ignored on this path; Scale outer-
// normalizes by sqrt(diagonal), turning a covariance into a correlation
// matrix. See covar.FromCov.
func LoadCov(data *mat.Dense, opts DataOptions) (*FactorModel, error) {
	res, err := covar.FromCov(data, covar.Options{
		Scale:  opts.Scale,
		Labels: opts.Labels,
	})
	if err != nil {
		return nil, err
	}
	return &FactorModel{
		cov:    res.Cov,
		scale:  opts.Scale,
		mean:   res.Mean,
		sdev:   res.Scale,
		labels: res.Labels,
	}, nil
}

// AddNoiseCov attaches a separately measured noise covariance, validated
// against the loaded association matrix. Extraction and refinement then
// subtract it from the data covariance to discount measurement noise.
//
// Errors: ErrPrecondition (no data loaded yet), ErrNonSquareMatrix,
// ErrDimensionMismatch, ErrInvalidInput.
func (m *FactorModel) AddNoiseCov(noise *mat.Dense) error {
	if m.cov == nil {
		return fmt.Errorf("AddNoiseCov: no association matrix loaded: %w", ErrPrecondition)
	}
	sym, err := covar.CheckNoise(noise, m.Dim())
	if err != nil {
		return err
	}
	m.noise = sym
	return nil
}

// ExtractComponents eigen-decomposes the (noise-adjusted) association
// matrix into raw components and variance proportions. Re-running replaces
// the previous extraction and invalidates the retained set and any refined
// or rotated loadings.
//
// Errors: ErrPrecondition, ErrEigenFailed, extraction.ErrDegenerate.
func (m *FactorModel) ExtractComponents() error {
	if m.cov == nil {
		return fmt.Errorf("ExtractComponents: no association matrix loaded: %w", ErrPrecondition)
	}
	comps, err := extraction.Extract(m.cov, m.noise)
	if err != nil {
		return err
	}

	m.raw = comps.Vectors
	m.values = comps.Values
	m.props = comps.Props

	// Everything downstream of extraction is stale now.
	m.retained = nil
	m.hasRetention = false
	m.paf = nil
	m.rot = nil
	m.hasRotation = false
	return nil
}

// FindRetained selects which raw components are signal under the configured
// policy and returns their ranks. Re-running overwrites the previous set
// and invalidates refined and rotated loadings, which were derived from it.
//
// Errors: ErrPrecondition (extraction has not run), ErrUnknownRetention,
// ErrEmptyRetention, retention.ErrBadParam.
func (m *FactorModel) FindRetained(opts retention.Options) ([]int, error) {
	if m.props == nil {
		return nil, fmt.Errorf("FindRetained: extraction has not run: %w", ErrPrecondition)
	}
	idx, err := retention.Select(m.props, opts)
	if err != nil {
		return nil, err
	}

	m.retained = idx
	m.retentionOpts = opts
	m.hasRetention = true
	m.paf = nil
	m.rot = nil
	m.hasRotation = false
	return m.RetainedIndices(), nil
}

// RefinePAF re-extracts the retained components by iterative principal-axis
// factoring, producing loadings that downweight noise contribution.
// Non-convergence within the iteration cap is reported through the result,
// not as an error. Re-running overwrites the previous refinement and
// invalidates rotated loadings.
//
// Errors: ErrPrecondition (no non-empty retained set), extraction
// sentinels.
func (m *FactorModel) RefinePAF(opts extraction.PAFOptions) (*extraction.PAFResult, error) {
	if m.raw == nil || len(m.retained) == 0 {
		return nil, fmt.Errorf("RefinePAF: no retained components: %w", ErrPrecondition)
	}
	res, err := extraction.RefinePAF(m.retainedBlock(), m.cov, m.noise, opts)
	if err != nil {
		return nil, err
	}

	m.paf = mat.DenseCopyOf(res.Loadings)
	m.rot = nil
	m.hasRotation = false
	return res, nil
}

// RotateComponents applies pairwise-plane orthogonal rotation to the most
// refined retained loadings available (PAF if present, else the retained
// raw block). Re-running overwrites the previous rotation.
//
// Errors: ErrPrecondition (no non-empty retained set), ErrUnknownRotation,
// rotation.ErrBadParam.
func (m *FactorModel) RotateComponents(opts rotation.Options) (*rotation.Result, error) {
	if m.raw == nil || len(m.retained) == 0 {
		return nil, fmt.Errorf("RotateComponents: no retained components: %w", ErrPrecondition)
	}

	loadings := m.paf
	if loadings == nil {
		loadings = m.retainedBlock()
	}
	res, err := rotation.Rotate(loadings, opts)
	if err != nil {
		return nil, err
	}

	m.rot = mat.DenseCopyOf(res.Loadings)
	m.rotationOpts = opts
	m.hasRotation = true
	return res, nil
}

// Scores projects new observations onto the most refined component matrix
// available: rotated, then PAF, then raw. The data must have the fitted
// variable dimension and is pushed through the same centering and scaling
// as the training data; the caller's matrix is not mutated.
//
// Errors: ErrNilMatrix, ErrNoComponents, ErrDimensionMismatch.
func (m *FactorModel) Scores(data *mat.Dense) (*mat.Dense, error) {
	if data == nil {
		return nil, fmt.Errorf("Scores: %w", ErrNilMatrix)
	}
	comps := m.rot
	if comps == nil {
		comps = m.paf
	}
	if comps == nil {
		comps = m.raw
	}
	if comps == nil {
		return nil, fmt.Errorf("Scores: %w", ErrNoComponents)
	}

	n, p := data.Dims()
	if p != m.Dim() {
		return nil, fmt.Errorf("Scores: data has %d variable(s), model has %d: %w",
			p, m.Dim(), ErrDimensionMismatch)
	}

	work := mat.DenseCopyOf(data)
	if m.demean && m.mean != nil {
		for i := 0; i < n; i++ {
			for j := 0; j < p; j++ {
				work.Set(i, j, work.At(i, j)-m.mean[j])
			}
		}
	}
	if m.scale && m.sdev != nil {
		for i := 0; i < n; i++ {
			for j := 0; j < p; j++ {
				work.Set(i, j, work.At(i, j)/m.sdev[j])
			}
		}
	}

	var out mat.Dense
	out.Mul(work, comps)
	return &out, nil
}

// retainedBlock builds the p×k block of raw eigenvector columns at the
// retained ranks.
func (m *FactorModel) retainedBlock() *mat.Dense {
	p, _ := m.raw.Dims()
	k := len(m.retained)
	block := mat.NewDense(p, k, nil)
	for c, idx := range m.retained {
		for i := 0; i < p; i++ {
			block.Set(i, c, m.raw.At(i, idx))
		}
	}
	return block
}
