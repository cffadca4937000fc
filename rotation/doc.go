// Package rotation improves loading interpretability by iterative
// pairwise-plane (Jacobi-style) orthogonal rotation.
//
// Every sweep visits each pair of factor columns and rotates the pair by
// the closed-form angle that maximizes the chosen simplicity criterion
// restricted to that plane:
//
//   - Varimax   — maximizes the variance of squared loadings within each
//     factor column, optionally after row-wise Kaiser normalization by
//     communality.
//   - Quartimax — maximizes the overall fourth-power concentration of
//     loadings per variable row; no normalization term.
//
// The per-plane rotations accumulate into a k×k orthogonal matrix R, so
// the output satisfies Rotated = Loadings·R with RᵗR = I to numerical
// tolerance; total explained variance is unchanged. Sweeping stops when a
// full sweep improves the criterion by less than the tolerance, or at the
// sweep cap — cap exhaustion returns the best iterate, never an error.
package rotation
