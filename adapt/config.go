package adapt

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// HistogramConfig groups the log-spaced histogram parameters.
type HistogramConfig struct {
	LowExp        int // lowest decade exponent of the dynamic range (default -16)
	HighExp       int // highest decade exponent (default 4, must be > LowExp)
	BinsPerDecade int // bins per decade (default 10, must be >= 1)
}

// StructuredConfig groups the structured (binary refine flag) policy parameters.
type StructuredConfig struct {
	TargetFraction float64 // fraction of elements to place above the cutoff (default 0.3, in (0, 1])
}

// ContinuousConfig groups the continuous feature-size policy parameters.
type ContinuousConfig struct {
	TargetErrorFraction float64 // per-element target as a fraction of the mean global share (default 0.1)
	SizeExponent        float64 // exponent in h = (target/err)^exponent; 0.5 assumes error ~ h^2 (default 0.5)
	TargetSize          float64 // fallback target element size when no local lookup exists (must be > 0)
	HMin                float64 // global floor on emitted sizes (default 0.05 * TargetSize)
	HMax                float64 // global ceiling on emitted sizes (default TargetSize)
}

// PlannerConfig groups everything the planner needs for one study.
type PlannerConfig struct {
	Histogram  HistogramConfig
	Structured StructuredConfig
	Continuous ContinuousConfig
}

// DefaultPlannerConfig returns the planner configuration used by the wing-box
// study: dynamic range [1e-16, 1e4] at 10 bins per decade, 30% refinement
// fraction, and a 10% per-element error target for the continuous policy.
func DefaultPlannerConfig(targetSize float64) PlannerConfig {
	return PlannerConfig{
		Histogram: HistogramConfig{
			LowExp:        -16,
			HighExp:       4,
			BinsPerDecade: 10,
		},
		Structured: StructuredConfig{
			TargetFraction: 0.3,
		},
		Continuous: ContinuousConfig{
			TargetErrorFraction: 0.1,
			SizeExponent:        0.5,
			TargetSize:          targetSize,
			HMin:                0.05 * targetSize,
			HMax:                targetSize,
		},
	}
}

// Validate reports every configuration problem at once.
func (c *PlannerConfig) Validate() error {
	var result *multierror.Error

	if c.Histogram.LowExp >= c.Histogram.HighExp {
		result = multierror.Append(result, fmt.Errorf("%w: histogram low exponent %d must be < high exponent %d",
			ErrInvalidInput, c.Histogram.LowExp, c.Histogram.HighExp))
	}
	if c.Histogram.BinsPerDecade < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: bins per decade %d must be >= 1",
			ErrInvalidInput, c.Histogram.BinsPerDecade))
	}
	if f := c.Structured.TargetFraction; f <= 0 || f > 1 {
		result = multierror.Append(result, fmt.Errorf("%w: target fraction %v must be in (0, 1]",
			ErrInvalidInput, f))
	}
	if f := c.Continuous.TargetErrorFraction; f <= 0 || f > 1 {
		result = multierror.Append(result, fmt.Errorf("%w: target error fraction %v must be in (0, 1]",
			ErrInvalidInput, f))
	}
	if c.Continuous.SizeExponent <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: size exponent %v must be > 0",
			ErrInvalidInput, c.Continuous.SizeExponent))
	}
	if c.Continuous.TargetSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: target size %v must be > 0",
			ErrInvalidInput, c.Continuous.TargetSize))
	}
	if c.Continuous.HMin <= 0 || c.Continuous.HMax < c.Continuous.HMin {
		result = multierror.Append(result, fmt.Errorf("%w: size limits [%v, %v] must satisfy 0 < hmin <= hmax",
			ErrInvalidInput, c.Continuous.HMin, c.Continuous.HMax))
	}

	return result.ErrorOrNil()
}
