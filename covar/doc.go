// Package covar builds validated covariance and correlation matrices from
// raw per-sample data or from a pre-supplied square association matrix.
//
// Two construction paths are provided:
//
//   - FromSamples — an n-samples × p-features matrix is optionally demeaned
//     and RMS-scaled column-wise, then folded into XᵀX/(n−1). With both
//     flags enabled the result is a correlation matrix.
//   - FromCov — a p×p association matrix is taken as-is, with an optional
//     outer normalization by sqrt(diagonal) that turns a covariance into a
//     correlation matrix.
//
// Both paths copy their input defensively: the caller's matrix is never
// mutated. The per-variable mean and scale used during preprocessing are
// returned alongside the matrix so that new observations can be pushed
// through identical preprocessing later (see the scoring stage in the root
// package).
//
// CheckNoise validates a separately measured noise covariance against an
// already-built association matrix, so that downstream extraction can
// discount measurement noise.
package covar
