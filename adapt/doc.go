// Package adapt implements the error-driven adaptive refinement planner at the
// heart of adapt-sim: given per-element error estimates produced by an external
// analysis engine, it decides which mesh elements to refine, or what target
// element size to request at each point.
//
// # Reading Guide
//
// Start with these three files to understand the planning kernel:
//   - stats.go: log-space mean/stddev of the error field (two global reductions)
//   - histogram.go: log-spaced error histogram with overflow bins
//   - planner.go: cutoff selection and the refine/hold decision per element
//
// # Architecture
//
// The planner is stateless: every cycle it consumes a fresh Analysis snapshot
// and returns a Plan. Collaborators live behind small interfaces:
//   - reduce.Reducer: sum/gather collectives across cooperating partitions
//     (adapt/reduce: serial and in-process multi-partition implementations)
//   - Analyzer: produces per-element error estimates and centroids
//   - Mesher: consumes refine flags or a feature-size field to rebuild the mesh
//     (adapt/field: synthetic stand-ins for both, used by the study loop)
//   - FeatureSizer: local target-size lookup threaded between remesh cycles
//
// The outer mesh → analyze → estimate → refine cycle is a bounded loop in
// driver.go; per-cycle decisions are recorded via adapt/trace.
package adapt
