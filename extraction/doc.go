// Package extraction decomposes an association matrix into ordered latent
// components and refines them by principal-axis factoring.
//
// Extract performs a full symmetric eigen-decomposition, orders the
// eigenpairs by descending eigenvalue, and reports each component's
// proportion of total variance. When a noise covariance is supplied it is
// subtracted from the data covariance before decomposition, discounting
// measurement-noise variance from the extracted structure.
//
// RefinePAF iteratively re-estimates per-variable communalities from the
// retained loadings: the working matrix's diagonal is replaced by the
// current communalities, re-decomposed, and the top-k sqrt(eigenvalue)-
// scaled loadings recomputed, until the largest communality change falls
// below tolerance or the iteration cap is reached. Failing to converge
// within the cap is not an error; the last iterate is returned along with
// the residual change for the caller to inspect.
package extraction
