// Package rotation: sentinel error set, matched via errors.Is.

package rotation

import "errors"

var (
	// ErrUnknownMethod is returned for a Criterion value outside the
	// declared enum.
	ErrUnknownMethod = errors.New("rotation: unknown rotation criterion")

	// ErrNilMatrix is returned when the loading matrix is nil.
	ErrNilMatrix = errors.New("rotation: nil loading matrix")

	// ErrBadParam is returned for nonsensical sweep parameters, e.g. a
	// negative tolerance or sweep cap.
	ErrBadParam = errors.New("rotation: invalid sweep parameter")
)
