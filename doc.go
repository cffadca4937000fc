// Package fakit extracts, retains, refines, rotates, and scores latent
// linear components of a covariance or correlation structure — classical
// exploratory factor analysis on dense p×p matrices.
//
// The pipeline runs strictly top to bottom through a FactorModel:
//
//	m, _ := fakit.LoadSamples(data, fakit.DataOptions{Demean: true, Scale: true})
//	_ = m.ExtractComponents()                                  // eigen-extraction
//	_, _ = m.FindRetained(retention.DefaultOptions())          // which components are signal
//	_, _ = m.RefinePAF(extraction.DefaultPAFOptions())         // principal-axis refinement
//	_, _ = m.RotateComponents(rotation.DefaultOptions())       // varimax / quartimax
//	scores, _ := m.Scores(newData)                             // project new observations
//
// Each stage requires the prior stage's output and fails with
// ErrPrecondition otherwise; a failed call never half-mutates the model.
// Re-running a stage overwrites its output and invalidates everything
// downstream, so stale refined or rotated state cannot survive a changed
// retention choice.
//
// The numerical work lives in the stage packages:
//
//	covar/      — covariance & correlation construction, noise validation
//	extraction/ — symmetric eigen-extraction and PAF refinement
//	retention/  — top-n, top-pct, Kaiser and broken-stick policies
//	rotation/   — pairwise-plane varimax/quartimax rotation
//
// Everything is synchronous and deterministic; a FactorModel must not be
// shared between goroutines while a stage is running.
package fakit
