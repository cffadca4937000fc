// Package covar: sentinel error set.
// All construction paths MUST return these sentinels and tests MUST check
// them via errors.Is. Wrap with fmt.Errorf("ctx: %w", ErrX) when context is
// essential; callers still match via errors.Is.

package covar

import "errors"

var (
	// ErrNonSquare is returned when an association or noise matrix is not
	// square.
	ErrNonSquare = errors.New("covar: matrix is not square")

	// ErrDimensionMismatch is returned when a noise matrix dimension
	// disagrees with the data covariance dimension, or a scored matrix
	// disagrees with the fitted variable count.
	ErrDimensionMismatch = errors.New("covar: dimension mismatch")

	// ErrLabelCount is returned when the supplied label count does not equal
	// the number of variables.
	ErrLabelCount = errors.New("covar: label count does not match variable count")

	// ErrNotNumeric is returned when an input matrix contains NaN or ±Inf
	// where finite values are required.
	ErrNotNumeric = errors.New("covar: NaN or Inf encountered in input")

	// ErrTooFewSamples is returned by the sample path when fewer than two
	// rows are supplied; the n−1 covariance denominator needs at least two.
	ErrTooFewSamples = errors.New("covar: need at least two samples")

	// ErrNilMatrix is returned when a nil matrix is passed in.
	ErrNilMatrix = errors.New("covar: nil matrix")
)
