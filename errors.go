// Package fakit: root error surface.
// The pipeline's own failures are defined here; stage-package sentinels are
// re-exported as aliases so callers can match every pipeline error through
// errors.Is with a single import.

package fakit

import (
	"errors"

	"github.com/tsbach/fa-kit/covar"
	"github.com/tsbach/fa-kit/extraction"
	"github.com/tsbach/fa-kit/retention"
	"github.com/tsbach/fa-kit/rotation"
)

var (
	// ErrPrecondition is returned when a stage is invoked before its
	// required predecessor state exists (including before any association
	// matrix is loaded).
	ErrPrecondition = errors.New("fakit: pipeline stage invoked before its prerequisite stage")

	// ErrNoComponents is returned when scoring is attempted with no
	// extracted components of any kind.
	ErrNoComponents = errors.New("fakit: no components in model, run extraction first")
)

// Stage-package aliases. Semantically identical sentinels; errors.Is
// matches through either name.
var (
	// ErrNonSquareMatrix — an association or noise matrix is not square.
	ErrNonSquareMatrix = covar.ErrNonSquare

	// ErrDimensionMismatch — a noise or scoring matrix disagrees with the
	// fitted variable count.
	ErrDimensionMismatch = covar.ErrDimensionMismatch

	// ErrLabelCountMismatch — label count ≠ variable count.
	ErrLabelCountMismatch = covar.ErrLabelCount

	// ErrInvalidInput — NaN/Inf where finite values are required.
	ErrInvalidInput = covar.ErrNotNumeric

	// ErrNilMatrix — a nil matrix argument.
	ErrNilMatrix = covar.ErrNilMatrix

	// ErrUnknownRetention — retention Method outside the declared enum.
	ErrUnknownRetention = retention.ErrUnknownMethod

	// ErrEmptyRetention — the chosen policy retained nothing.
	ErrEmptyRetention = retention.ErrEmptySet

	// ErrUnknownRotation — rotation Criterion outside the declared enum.
	ErrUnknownRotation = rotation.ErrUnknownMethod

	// ErrEigenFailed — the symmetric eigen-decomposition did not converge.
	ErrEigenFailed = extraction.ErrEigenFailed
)
