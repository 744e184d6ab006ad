package adapt

import "fmt"

// ErrorSample is one element's contribution to the error field: the element
// handle (owned by the external mesh), its strictly positive error estimate,
// and its centroid (used only by the continuous size policy).
type ErrorSample struct {
	ElementID int
	Error     float64
	Centroid  Point3
}

// Analysis is the per-cycle snapshot handed to the planner: the local
// partition's error estimates and centroids, plus this partition's
// contribution to the functional error estimate (the planner sums
// contributions across the group). Analyses are produced fresh each cycle,
// passed by value semantics, and never retained by the planner across cycles.
type Analysis struct {
	Errors    []float64 // per-element error estimates, parallel to Centroids
	Centroids []Point3  // per-element centroids
	Estimate  float64   // local contribution to the global error estimate
}

// Sample returns the i-th element's view of the analysis.
func (a *Analysis) Sample(i int) ErrorSample {
	s := ErrorSample{ElementID: i, Error: a.Errors[i]}
	if i < len(a.Centroids) {
		s.Centroid = a.Centroids[i]
	}
	return s
}

// Validate checks the snapshot invariants: every error strictly positive and,
// when centroids are present, one centroid per error value.
func (a *Analysis) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil analysis", ErrInvalidInput)
	}
	if len(a.Centroids) > 0 && len(a.Centroids) != len(a.Errors) {
		return fmt.Errorf("%w: %d centroids for %d errors", ErrInvalidInput, len(a.Centroids), len(a.Errors))
	}
	for i, e := range a.Errors {
		if e <= 0 {
			return fmt.Errorf("%w: error estimate %v at element %d must be > 0", ErrInvalidInput, e, i)
		}
	}
	return nil
}

// Analyzer produces one Analysis per refinement cycle. Implementations wrap an
// external forward+adjoint solve; adapt/field provides a synthetic one.
type Analyzer interface {
	Analyze(cycle int) (*Analysis, error)
}

// Mesher consumes refinement decisions and rebuilds the mesh for the next
// cycle. The planner never touches mesh data structures directly.
type Mesher interface {
	// ElementCount reports the local partition's current element count.
	ElementCount() int
	// Refine splits the flagged elements (structured mode).
	Refine(flags []bool) error
	// Remesh regenerates the mesh from a target feature-size field
	// (unstructured mode).
	Remesh(sizer FeatureSizer) error
}
