// H1 Target-Fraction Efficiency Sweep
//
// This program sweeps the structured policy's target fraction and records,
// for each setting, how much the global error estimate drops per element
// added to the mesh. The question: is there a knee where flagging a larger
// share of the error stops paying for the extra elements it creates?
//
// Usage: go run fraction_sweep.go --cycles 6 --output fraction_sweep.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/adapt-sim/adapt-sim/adapt"
	"github.com/adapt-sim/adapt-sim/adapt/field"
	"github.com/adapt-sim/adapt-sim/adapt/reduce"
	"github.com/adapt-sim/adapt-sim/adapt/trace"
)

func main() {
	cycles := flag.Int("cycles", 6, "refinement cycles per study")
	seed := flag.Int64("seed", 42, "synthetic field seed")
	output := flag.String("output", "fraction_sweep.csv", "output CSV path")
	flag.Parse()

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("creating %s: %v", *output, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{
		"target_fraction", "final_elements", "final_estimate",
		"estimate_reduction", "total_refined", "reduction_per_element",
	}); err != nil {
		log.Fatalf("writing header: %v", err)
	}

	for frac := 0.05; frac <= 0.901; frac += 0.05 {
		summary, err := runStudy(frac, *cycles, *seed)
		if err != nil {
			log.Fatalf("fraction %.2f: %v", frac, err)
		}
		added := summary.FinalElements - 16
		perElement := 0.0
		if added > 0 {
			perElement = summary.EstimateReduction / float64(added)
		}
		fmt.Fprintf(os.Stderr, "fraction=%.2f elements=%d reduction=%.2fx\n",
			frac, summary.FinalElements, summary.EstimateReduction)
		if err := w.Write([]string{
			strconv.FormatFloat(frac, 'f', 2, 64),
			strconv.FormatInt(summary.FinalElements, 10),
			strconv.FormatFloat(summary.FinalEstimate, 'e', 6, 64),
			strconv.FormatFloat(summary.EstimateReduction, 'f', 4, 64),
			strconv.FormatInt(summary.TotalRefined, 10),
			strconv.FormatFloat(perElement, 'e', 6, 64),
		}); err != nil {
			log.Fatalf("writing row: %v", err)
		}
	}
}

// runStudy runs one structured-policy study on the standard 4x4 hot-spot
// field and returns its summary.
func runStudy(fraction float64, cycles int, seed int64) (*trace.StudySummary, error) {
	mesh, err := field.NewGridMesh(4, 4, 1.0, 8)
	if err != nil {
		return nil, err
	}
	fieldCfg := field.DefaultFieldConfig(adapt.Point3{X: 2, Y: 2}, 0.5)
	analyzer, err := field.NewSyntheticAnalyzer(fieldCfg, mesh, adapt.NewPartitionedRNG(adapt.NewStudyKey(seed)))
	if err != nil {
		return nil, err
	}

	plannerCfg := adapt.DefaultPlannerConfig(1.0)
	plannerCfg.Structured.TargetFraction = fraction
	planner, err := adapt.NewPlanner(plannerCfg, reduce.NewSerial())
	if err != nil {
		return nil, err
	}

	loop, err := adapt.NewLoop(adapt.LoopConfig{
		Cycles:     cycles,
		Policy:     adapt.PolicyStructured,
		TraceLevel: trace.TraceLevelCycles,
	}, planner, analyzer, mesh)
	if err != nil {
		return nil, err
	}
	if err := loop.Run(); err != nil {
		return nil, err
	}
	return trace.Summarize(loop.Trace), nil
}
