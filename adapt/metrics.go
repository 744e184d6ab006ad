// Tracks study-wide and per-cycle refinement metrics such as:

package adapt

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates statistics about a refinement study for final
// reporting. Useful for comparing refinement policies and debugging
// convergence behavior over cycles.
type Metrics struct {
	CyclesCompleted int     // number of refinement cycles run
	TotalRefined    int64   // total elements flagged for refinement
	PeakElements    int64   // largest global element count seen
	InitialEstimate float64 // global error estimate on the first cycle
	FinalEstimate   float64 // global error estimate on the last cycle

	RefinedShares []float64 // per-cycle refined / elements
	CycleSeconds  []float64 // wall time per cycle
}

// ObserveCycle records one completed cycle.
func (m *Metrics) ObserveCycle(elements, refined int64, estimate float64, elapsed time.Duration) {
	if m.CyclesCompleted == 0 {
		m.InitialEstimate = estimate
	}
	m.CyclesCompleted++
	m.TotalRefined += refined
	if elements > m.PeakElements {
		m.PeakElements = elements
	}
	m.FinalEstimate = estimate
	if elements > 0 {
		m.RefinedShares = append(m.RefinedShares, float64(refined)/float64(elements))
	}
	m.CycleSeconds = append(m.CycleSeconds, elapsed.Seconds())
}

// Print displays aggregated metrics at the end of the study.
func (m *Metrics) Print(startTime time.Time) {
	fmt.Println("=== Refinement Study Metrics ===")
	fmt.Printf("Cycles Completed     : %d\n", m.CyclesCompleted)
	fmt.Printf("Peak Element Count   : %d\n", m.PeakElements)
	fmt.Printf("Total Elements Refined : %d\n", m.TotalRefined)
	if m.CyclesCompleted > 0 {
		fmt.Printf("Initial Error Estimate : %.6e\n", m.InitialEstimate)
		fmt.Printf("Final Error Estimate   : %.6e\n", m.FinalEstimate)
		if m.FinalEstimate > 0 {
			fmt.Printf("Estimate Reduction     : %.2fx\n", m.InitialEstimate/m.FinalEstimate)
		}
	}
	if len(m.RefinedShares) > 0 {
		shares := append([]float64(nil), m.RefinedShares...)
		sort.Float64s(shares)
		fmt.Printf("Mean Refined Share   : %.4f\n", stat.Mean(shares, nil))
		fmt.Printf("Median Refined Share : %.4f\n", stat.Quantile(0.5, stat.Empirical, shares, nil))
	}
	fmt.Printf("Total Wall Time      : %.3fs\n", time.Since(startTime).Seconds())
}
