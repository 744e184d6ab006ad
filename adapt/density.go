package adapt

import "fmt"

// RefineAction is a three-valued per-element decision used by the
// density-driven policy: split the element, leave it, or merge it back.
type RefineAction int

const (
	ActionCoarsen RefineAction = -1
	ActionHold    RefineAction = 0
	ActionRefine  RefineAction = 1
)

// DensityConfig groups the topology-optimization refinement thresholds.
// Elements whose design density exceeds Upper carry structure and get
// refined; elements below Lower are void and get coarsened away.
type DensityConfig struct {
	Lower float64 // coarsen below this density (default 0.05)
	Upper float64 // refine above this density (default 0.5)
}

// DefaultDensityConfig returns the usual compliance-study thresholds.
func DefaultDensityConfig() DensityConfig {
	return DensityConfig{Lower: 0.05, Upper: 0.5}
}

// DecideDensityRefinement maps per-element design densities to refinement
// actions. Densities are expected in [0, 1]; the thresholds must satisfy
// 0 <= lower < upper <= 1.
func DecideDensityRefinement(cfg DensityConfig, densities []float64) ([]RefineAction, error) {
	if cfg.Lower < 0 || cfg.Upper <= cfg.Lower || cfg.Upper > 1 {
		return nil, fmt.Errorf("%w: density thresholds [%v, %v] must satisfy 0 <= lower < upper <= 1",
			ErrInvalidInput, cfg.Lower, cfg.Upper)
	}
	actions := make([]RefineAction, len(densities))
	for i, rho := range densities {
		switch {
		case rho > cfg.Upper:
			actions[i] = ActionRefine
		case rho < cfg.Lower:
			actions[i] = ActionCoarsen
		default:
			actions[i] = ActionHold
		}
	}
	return actions, nil
}
