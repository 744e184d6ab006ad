package adapt

import (
	"fmt"
	"math"

	"github.com/adapt-sim/adapt-sim/adapt/reduce"
)

// Planner turns a per-cycle Analysis into a refinement decision. It holds
// configuration and a reducer handle but no cycle state: every Plan* call is
// a pure function of its inputs plus one set of collective reductions.
type Planner struct {
	cfg PlannerConfig
	red reduce.Reducer
}

// NewPlanner creates a Planner after validating the configuration.
func NewPlanner(cfg PlannerConfig, red reduce.Reducer) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("planner config: %w", err)
	}
	if red == nil {
		return nil, fmt.Errorf("%w: reducer is required", ErrInvalidInput)
	}
	return &Planner{cfg: cfg, red: red}, nil
}

// Config returns the configuration the planner was built with.
func (p *Planner) Config() PlannerConfig {
	return p.cfg
}

// StructuredPlan is the outcome of one structured planning pass. Flags and
// Refined are local to this partition; everything else is global.
type StructuredPlan struct {
	Stats      LogStats        // global log-error statistics
	Histogram  *ErrorHistogram // globally summed histogram
	Cutoff     float64         // selected error cutoff
	Flags      []bool          // one refine flag per local element, input order
	Refined    int             // local count of flagged elements
	TotalCount int64           // global element count
	Estimate   float64         // global error estimate
}

// PlanStructured runs the structured pipeline on one analysis snapshot:
// global count and log statistics, histogram, cutoff selection, and the
// per-element refine decision.
func (p *Planner) PlanStructured(a *Analysis) (*StructuredPlan, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	total := p.red.SumInt64(int64(len(a.Errors)))
	stats, err := ComputeLogStatistics(p.red, a.Errors, int(total))
	if err != nil {
		return nil, err
	}

	hist, err := BuildHistogram(p.red, a.Errors,
		p.cfg.Histogram.LowExp, p.cfg.Histogram.HighExp, p.cfg.Histogram.BinsPerDecade)
	if err != nil {
		return nil, err
	}

	cutoff, err := SelectCutoff(hist.Bins, hist.Bounds, p.cfg.Structured.TargetFraction)
	if err != nil {
		return nil, err
	}

	flags, err := DecideStructuredRefinement(a.Errors, cutoff)
	if err != nil {
		return nil, err
	}

	plan := &StructuredPlan{
		Stats:      stats,
		Histogram:  hist,
		Cutoff:     cutoff,
		Flags:      flags,
		TotalCount: total,
		Estimate:   p.red.SumFloat64(a.Estimate),
	}
	for _, f := range flags {
		if f {
			plan.Refined++
		}
	}
	return plan, nil
}

// DecideStructuredRefinement flags every element whose log error exceeds the
// log cutoff. Pure and order-preserving: one flag per input element.
// Raising the cutoff never flags more elements.
func DecideStructuredRefinement(errors []float64, cutoff float64) ([]bool, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("%w: cutoff %v must be > 0", ErrInvalidInput, cutoff)
	}
	logCutoff := math.Log(cutoff)
	flags := make([]bool, len(errors))
	for i, e := range errors {
		if e <= 0 {
			return nil, fmt.Errorf("%w: error estimate %v at element %d must be > 0", ErrInvalidInput, e, i)
		}
		flags[i] = math.Log(e) > logCutoff
	}
	return flags, nil
}

// UniformRefinement flags every element. Used by the uniform study mode to
// baseline the error-driven policies.
func UniformRefinement(n int) []bool {
	flags := make([]bool, n)
	for i := range flags {
		flags[i] = true
	}
	return flags
}
