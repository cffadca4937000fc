// Package retention decides which extracted components are signal.
//
// Input is the descending sequence of variance proportions produced by
// extraction; output is the set of component ranks to keep. Four mutually
// exclusive policies are provided, selected by a typed Method:
//
//   - TopN        — keep the n largest components.
//   - TopPct      — keep the smallest prefix whose cumulative proportion
//     reaches a target percentage.
//   - Kaiser      — keep every component whose proportion strictly exceeds
//     the average 1/dataDim.
//   - BrokenStick — keep every component whose proportion strictly exceeds
//     the broken-stick null expectation at the same rank.
//
// The broken-stick comparison is elementwise, so the retained ranks may be
// non-contiguous: a rank can fail the null test while later ranks pass it.
// Callers that require a contiguous prefix should use TopPct or TopN.
//
// An empty result is a configuration error, never silently tolerated:
// downstream refinement and rotation need at least one retained component.
package retention
