package trace

// StudySummary aggregates statistics from a RefinementTrace.
type StudySummary struct {
	RunID             string
	TotalCycles       int
	TotalRefined      int64
	FinalElements     int64
	FinalEstimate     float64
	EstimateReduction float64 // first-cycle estimate / last-cycle estimate
	MeanRefinedShare  float64 // mean over cycles of refined / elements
	Remeshes          int
}

// Summarize computes aggregate statistics from a RefinementTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RefinementTrace) *StudySummary {
	summary := &StudySummary{}
	if rt == nil {
		return summary
	}

	summary.RunID = rt.RunID
	summary.TotalCycles = len(rt.Cycles)
	summary.Remeshes = len(rt.Remeshes)

	if len(rt.Cycles) == 0 {
		return summary
	}

	shareSum := 0.0
	for _, c := range rt.Cycles {
		summary.TotalRefined += c.Refined
		if c.Elements > 0 {
			shareSum += float64(c.Refined) / float64(c.Elements)
		}
	}
	summary.MeanRefinedShare = shareSum / float64(len(rt.Cycles))

	first := rt.Cycles[0]
	last := rt.Cycles[len(rt.Cycles)-1]
	summary.FinalElements = last.Elements
	summary.FinalEstimate = last.Estimate
	if last.Estimate > 0 {
		summary.EstimateReduction = first.Estimate / last.Estimate
	}

	return summary
}
