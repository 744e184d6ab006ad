// Package trace provides per-cycle decision recording for refinement-study
// analysis. This package has no dependencies on adapt/; it stores pure data
// types produced by the study loop.
package trace

// CycleRecord captures one refinement cycle's aggregate planning outcome.
type CycleRecord struct {
	Cycle    int
	Policy   string
	Elements int64   // global element count entering the cycle
	Mean     float64 // mean of log(error)
	Stddev   float64 // stddev of log(error)
	Estimate float64 // global error estimate
	Cutoff   float64 // selected error cutoff (structured policy; 0 otherwise)
	Refined  int64   // elements flagged for refinement (structured/uniform)
}

// RemeshRecord captures one continuous-mode remesh request.
type RemeshRecord struct {
	Cycle   int
	Points  int     // gathered size samples handed to the mesher
	MinSize float64 // smallest requested element size
	MaxSize float64 // largest requested element size
}
