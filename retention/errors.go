// Package retention: sentinel error set, matched via errors.Is.

package retention

import "errors"

var (
	// ErrUnknownMethod is returned for a Method value outside the declared
	// enum.
	ErrUnknownMethod = errors.New("retention: unknown retention method")

	// ErrEmptySet is returned when a policy retains no components; the
	// caller's configuration must change, downstream stages cannot proceed.
	ErrEmptySet = errors.New("retention: no components retained")

	// ErrNoProportions is returned when the proportion sequence is empty.
	ErrNoProportions = errors.New("retention: empty proportion sequence")

	// ErrBadParam is returned for nonsensical policy parameters, e.g.
	// NumKeep < 1 or PctKeep outside (0, 1].
	ErrBadParam = errors.New("retention: invalid policy parameter")
)
