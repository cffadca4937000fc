// Package extraction: sentinel error set, matched via errors.Is.

package extraction

import "errors"

var (
	// ErrNilMatrix is returned when a required matrix argument is nil.
	ErrNilMatrix = errors.New("extraction: nil matrix")

	// ErrDimensionMismatch is returned when the noise matrix or the loading
	// block does not agree with the covariance dimension.
	ErrDimensionMismatch = errors.New("extraction: dimension mismatch")

	// ErrEigenFailed is returned when the symmetric eigen-decomposition
	// does not converge.
	ErrEigenFailed = errors.New("extraction: eigen decomposition failed")

	// ErrDegenerate is returned when every eigenvalue is zero (or
	// numerically invalid) so variance proportions are undefined.
	ErrDegenerate = errors.New("extraction: total variance is zero")

	// ErrBadParam is returned for nonsensical refinement parameters, e.g.
	// a negative tolerance or iteration cap.
	ErrBadParam = errors.New("extraction: invalid refinement parameter")
)
