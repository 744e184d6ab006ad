package adapt

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adapt-sim/adapt-sim/adapt/trace"
)

// Refinement policy names accepted by the study loop.
const (
	PolicyUniform    = "uniform"    // refine everything, every cycle (baseline)
	PolicyStructured = "structured" // histogram cutoff, binary refine flags
	PolicyContinuous = "continuous" // feature-size field, full remesh
)

var validPolicies = map[string]bool{
	PolicyUniform:    true,
	PolicyStructured: true,
	PolicyContinuous: true,
}

// LoopConfig groups the outer refinement-cycle parameters.
type LoopConfig struct {
	Cycles         int    // number of analyze/refine cycles (must be >= 1)
	Policy         string // one of the Policy* constants
	ResultsPattern string // per-cycle histogram table path with a %d verb; empty disables
	TraceLevel     trace.TraceLevel
}

// Loop is the bounded outer refinement cycle: mesh → analyze → estimate →
// refine, a fixed number of times. The final cycle analyzes and reports but
// does not refine, so the reported statistics describe the delivered mesh.
type Loop struct {
	cfg      LoopConfig
	planner  *Planner
	analyzer Analyzer
	mesher   Mesher

	// sizer threads the continuous policy's feature-size field from one
	// remesh cycle into the next.
	sizer FeatureSizer

	Trace   *trace.RefinementTrace
	Metrics *Metrics
}

// NewLoop creates a study loop after validating its configuration.
func NewLoop(cfg LoopConfig, planner *Planner, analyzer Analyzer, mesher Mesher) (*Loop, error) {
	if cfg.Cycles < 1 {
		return nil, fmt.Errorf("%w: cycle count %d must be >= 1", ErrInvalidInput, cfg.Cycles)
	}
	if !validPolicies[cfg.Policy] {
		return nil, fmt.Errorf("%w: unknown refinement policy %q; valid policies: [%s, %s, %s]",
			ErrInvalidInput, cfg.Policy, PolicyUniform, PolicyStructured, PolicyContinuous)
	}
	if !trace.IsValidTraceLevel(string(cfg.TraceLevel)) {
		return nil, fmt.Errorf("%w: unknown trace level %q", ErrInvalidInput, cfg.TraceLevel)
	}
	if planner == nil || analyzer == nil || mesher == nil {
		return nil, fmt.Errorf("%w: planner, analyzer and mesher are required", ErrInvalidInput)
	}
	return &Loop{
		cfg:      cfg,
		planner:  planner,
		analyzer: analyzer,
		mesher:   mesher,
		Trace:    trace.NewRefinementTrace(cfg.TraceLevel),
		Metrics:  &Metrics{},
	}, nil
}

// Run executes the configured number of refinement cycles.
func (l *Loop) Run() error {
	for cycle := 0; cycle < l.cfg.Cycles; cycle++ {
		if err := l.runCycle(cycle); err != nil {
			return fmt.Errorf("cycle %d: %w", cycle, err)
		}
	}
	return nil
}

func (l *Loop) runCycle(cycle int) error {
	start := time.Now()

	analysis, err := l.analyzer.Analyze(cycle)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	last := cycle == l.cfg.Cycles-1
	record := trace.CycleRecord{Cycle: cycle, Policy: l.cfg.Policy}

	switch l.cfg.Policy {
	case PolicyContinuous:
		plan, err := l.planner.PlanContinuous(analysis, l.sizer)
		if err != nil {
			return err
		}
		record.Elements = plan.TotalCount
		record.Mean = plan.Stats.Mean
		record.Stddev = plan.Stats.Stddev
		record.Estimate = plan.Estimate
		if err := l.writeHistogram(cycle, plan.Histogram); err != nil {
			return err
		}

		if !last && plan.Sizer != nil {
			l.sizer = plan.Sizer
			if err := l.mesher.Remesh(plan.Sizer); err != nil {
				return fmt.Errorf("remesh: %w", err)
			}
			lo, hi := sizeRange(plan.Sizes)
			l.Trace.RecordRemesh(trace.RemeshRecord{
				Cycle:   cycle,
				Points:  plan.Sizer.Len(),
				MinSize: lo,
				MaxSize: hi,
			})
		}
		logrus.Infof("cycle %d: elements=%d estimate=%.6e mean=%.4f stddev=%.4f",
			cycle, record.Elements, record.Estimate, record.Mean, record.Stddev)

	default: // PolicyStructured and PolicyUniform share the reporting path.
		plan, err := l.planner.PlanStructured(analysis)
		if err != nil {
			return err
		}
		record.Elements = plan.TotalCount
		record.Mean = plan.Stats.Mean
		record.Stddev = plan.Stats.Stddev
		record.Estimate = plan.Estimate
		record.Cutoff = plan.Cutoff
		if err := l.writeHistogram(cycle, plan.Histogram); err != nil {
			return err
		}

		flags := plan.Flags
		if l.cfg.Policy == PolicyUniform {
			flags = UniformRefinement(len(analysis.Errors))
		}
		if !last {
			refined := int64(0)
			for _, f := range flags {
				if f {
					refined++
				}
			}
			record.Refined = refined
			if err := l.mesher.Refine(flags); err != nil {
				return fmt.Errorf("refine: %w", err)
			}
		}
		logrus.Infof("cycle %d: elements=%d estimate=%.6e cutoff=%.6e refined=%d",
			cycle, record.Elements, record.Estimate, record.Cutoff, record.Refined)
	}

	l.Trace.RecordCycle(record)
	l.Metrics.ObserveCycle(record.Elements, record.Refined, record.Estimate, time.Since(start))
	return nil
}

func (l *Loop) writeHistogram(cycle int, hist *ErrorHistogram) error {
	if l.cfg.ResultsPattern == "" {
		return nil
	}
	return WriteHistogramTable(fmt.Sprintf(l.cfg.ResultsPattern, cycle), hist)
}

func sizeRange(sizes []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range sizes {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	if len(sizes) == 0 {
		lo, hi = 0, 0
	}
	return lo, hi
}
