package adapt

import (
	"fmt"
	"math"
)

// DecideContinuousRefinement proposes a target element size for every
// gathered element. The per-element target error is a configured fraction of
// the mean global share (estimate / totalCount); the proposed size follows
// from the assumed convergence order via
//
//	h = (errTarget / err)^SizeExponent
//
// scaled by the local feature size (or the fallback target size when no
// lookup is supplied), held within [0.25, 2]x that local scale, and finally
// clamped to the global [HMin, HMax].
//
// This runs on the complete global arrays only: the caller gathers errors and
// points to the coordinating partition before calling.
func DecideContinuousRefinement(cfg ContinuousConfig, errors []float64, points []Point3, globalEstimate float64, totalCount int, local FeatureSizer) ([]float64, error) {
	if totalCount <= 0 {
		return nil, fmt.Errorf("%w: total element count %d must be > 0", ErrInvalidInput, totalCount)
	}
	if globalEstimate <= 0 {
		return nil, fmt.Errorf("%w: global error estimate %v must be > 0", ErrInvalidInput, globalEstimate)
	}
	if local != nil && len(points) != len(errors) {
		return nil, fmt.Errorf("%w: %d points for %d errors", ErrInvalidInput, len(points), len(errors))
	}

	errTarget := cfg.TargetErrorFraction * globalEstimate / float64(totalCount)

	sizes := make([]float64, len(errors))
	for i, e := range errors {
		if e <= 0 {
			return nil, fmt.Errorf("%w: error estimate %v at element %d must be > 0", ErrInvalidInput, e, i)
		}
		hp := math.Pow(errTarget/e, cfg.SizeExponent)

		hLocal := cfg.TargetSize
		if local != nil {
			hLocal = local.FeatureSize(points[i])
		}
		h := clamp(hp*hLocal, 0.25*hLocal, 2*hLocal)
		sizes[i] = clamp(h, cfg.HMin, cfg.HMax)
	}
	return sizes, nil
}

// ContinuousPlan is the outcome of one continuous planning pass. Points,
// Sizes and Sizer are populated on the coordinating partition (rank 0) only;
// other ranks see them nil and rely on the coordinator to drive the remesh.
type ContinuousPlan struct {
	Stats      LogStats         // global log-error statistics
	Histogram  *ErrorHistogram  // globally summed histogram
	Points     []Point3         // gathered element centroids
	Sizes      []float64        // target size per gathered point
	Sizer      *PointFeatureSize // next cycle's local size lookup
	TotalCount int64            // global element count
	Estimate   float64          // global error estimate the targets derive from
}

// PlanContinuous runs the continuous pipeline on one analysis snapshot:
// global statistics and histogram for reporting, an all-to-root gather of
// errors and centroids, then the size proposal on the gathered view. prev is
// the previous cycle's feature-size field, nil on the first cycle.
func (p *Planner) PlanContinuous(a *Analysis, prev FeatureSizer) (*ContinuousPlan, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if len(a.Centroids) != len(a.Errors) {
		return nil, fmt.Errorf("%w: continuous planning needs one centroid per element", ErrInvalidInput)
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

	estimate := p.red.SumFloat64(a.Estimate)

	flat := make([]float64, 0, 3*len(a.Centroids))
	for _, c := range a.Centroids {
		flat = append(flat, c.X, c.Y, c.Z)
	}
	gatheredErrors := p.red.GatherFloat64s(a.Errors)
	gatheredXYZ := p.red.GatherFloat64s(flat)

	plan := &ContinuousPlan{
		Stats:      stats,
		Histogram:  hist,
		TotalCount: total,
		Estimate:   estimate,
	}
	if p.red.Rank() != 0 {
		return plan, nil
	}

	points := make([]Point3, len(gatheredErrors))
	for i := range points {
		points[i] = Point3{X: gatheredXYZ[3*i], Y: gatheredXYZ[3*i+1], Z: gatheredXYZ[3*i+2]}
	}

	sizes, err := DecideContinuousRefinement(p.cfg.Continuous, gatheredErrors, points, estimate, int(total), prev)
	if err != nil {
		return nil, err
	}

	sizer, err := NewPointFeatureSize(points, sizes, p.cfg.Continuous.HMin, p.cfg.Continuous.HMax)
	if err != nil {
		return nil, err
	}

	plan.Points = points
	plan.Sizes = sizes
	plan.Sizer = sizer
	return plan, nil
}
