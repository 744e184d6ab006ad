package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adapt-sim/adapt-sim/adapt"
	"github.com/adapt-sim/adapt-sim/adapt/field"
	"github.com/adapt-sim/adapt-sim/adapt/reduce"
	"github.com/adapt-sim/adapt-sim/adapt/trace"
)

var (
	// CLI flags for the refinement study
	seed           int64   // Seed for the synthetic error field
	cycles         int     // Number of analyze/refine cycles
	policy         string  // Refinement policy: uniform, structured, continuous
	logLevel       string  // Log verbosity level
	traceLevel     string  // Trace level: none, cycles
	resultsPattern string  // Per-cycle histogram table path (with %d verb); empty disables
	lowExp         int     // Histogram dynamic range, low decade exponent
	highExp        int     // Histogram dynamic range, high decade exponent
	binsPerDecade  int     // Histogram bins per decade
	targetFraction float64 // Fraction of elements to refine (structured policy)
	errorFraction  float64 // Per-element target error fraction (continuous policy)
	sizeExponent   float64 // Size-proposal exponent (continuous policy)
	targetSize     float64 // Fallback target element size (continuous policy)

	// CLI flags for the synthetic mesh and error field
	gridNX     int     // Root cells along x
	gridNY     int     // Root cells along y
	cellSize   float64 // Root cell edge length
	maxLevel   int     // Refinement depth limit
	graded     bool    // Grade initial levels along the span
	minLevel   int     // Graded seeding: level at the tip
	maxSeed    int     // Graded seeding: level at the root of the span
	peakX      float64 // Hot spot x coordinate
	peakY      float64 // Hot spot y coordinate
	peakWidth  float64 // Hot spot Gaussian width
	noiseSigma float64 // Lognormal noise sigma (0 disables)

	// CLI flags for case presets
	caseFile string // YAML file holding named study cases
	caseName string // Name of the preset case to run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "adapt-sim",
	Short: "Error-driven adaptive mesh refinement planner and study loop",
}

// runCmd executes one refinement study using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a refinement study",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if caseName != "" {
			if c := GetCaseConfig(caseFile, caseName); c != nil {
				applyCase(c)
			} else {
				logrus.Fatalf("Case %q not found in %s", caseName, caseFile)
			}
		}

		logrus.Infof("Starting study: policy=%s cycles=%d grid=%dx%d cellSize=%v seed=%d",
			policy, cycles, gridNX, gridNY, cellSize, seed)

		startTime := time.Now()

		mesh, err := buildMesh()
		if err != nil {
			logrus.Fatalf("unable to build mesh: %v", err)
		}

		rng := adapt.NewPartitionedRNG(adapt.NewStudyKey(seed))
		fieldCfg := field.DefaultFieldConfig(adapt.Point3{X: peakX, Y: peakY}, peakWidth)
		fieldCfg.NoiseSigma = noiseSigma
		analyzer, err := field.NewSyntheticAnalyzer(fieldCfg, mesh, rng)
		if err != nil {
			logrus.Fatalf("unable to create analyzer: %v", err)
		}

		plannerCfg := adapt.DefaultPlannerConfig(targetSize)
		plannerCfg.Histogram = adapt.HistogramConfig{LowExp: lowExp, HighExp: highExp, BinsPerDecade: binsPerDecade}
		plannerCfg.Structured.TargetFraction = targetFraction
		plannerCfg.Continuous.TargetErrorFraction = errorFraction
		plannerCfg.Continuous.SizeExponent = sizeExponent
		planner, err := adapt.NewPlanner(plannerCfg, reduce.NewSerial())
		if err != nil {
			logrus.Fatalf("unable to create planner: %v", err)
		}

		loop, err := adapt.NewLoop(adapt.LoopConfig{
			Cycles:         cycles,
			Policy:         policy,
			ResultsPattern: resultsPattern,
			TraceLevel:     trace.TraceLevel(traceLevel),
		}, planner, analyzer, mesh)
		if err != nil {
			logrus.Fatalf("unable to create study loop: %v", err)
		}

		if err := loop.Run(); err != nil {
			logrus.Fatalf("study failed: %v", err)
		}

		loop.Metrics.Print(startTime)
		summary := trace.Summarize(loop.Trace)
		if loop.Trace.Level == trace.TraceLevelCycles {
			logrus.Infof("run %s: cycles=%d refined=%d finalElements=%d estimateReduction=%.2fx",
				summary.RunID, summary.TotalCycles, summary.TotalRefined,
				summary.FinalElements, summary.EstimateReduction)
		}

		logrus.Info("Study complete.")
	},
}

// buildMesh creates the initial mesh, optionally pre-graded along the span
// so the structure's root starts finer than its tip.
func buildMesh() (*field.GridMesh, error) {
	if !graded {
		return field.NewGridMesh(gridNX, gridNY, cellSize, maxLevel)
	}
	coords := make([]float64, gridNX*gridNY)
	for r := range coords {
		coords[r] = (float64(r/gridNX) + 0.5) * cellSize
	}
	levels, err := adapt.GradedInitialLevels(coords, float64(gridNY)*cellSize, minLevel, maxSeed)
	if err != nil {
		return nil, err
	}
	return field.NewGradedGridMesh(gridNX, gridNY, cellSize, maxLevel, levels)
}

func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "seed for the synthetic error field")
	runCmd.Flags().IntVar(&cycles, "cycles", 5, "number of analyze/refine cycles")
	runCmd.Flags().StringVar(&policy, "policy", adapt.PolicyStructured, "refinement policy: uniform, structured, continuous")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log verbosity level")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelCycles), "trace level: none, cycles")
	runCmd.Flags().StringVar(&resultsPattern, "results-pattern", "", "per-cycle histogram table path with a %d verb (empty disables)")
	runCmd.Flags().IntVar(&lowExp, "low-exp", -16, "histogram dynamic range, low decade exponent")
	runCmd.Flags().IntVar(&highExp, "high-exp", 4, "histogram dynamic range, high decade exponent")
	runCmd.Flags().IntVar(&binsPerDecade, "bins-per-decade", 10, "histogram bins per decade")
	runCmd.Flags().Float64Var(&targetFraction, "target-fraction", 0.3, "fraction of elements to refine (structured)")
	runCmd.Flags().Float64Var(&errorFraction, "error-fraction", 0.1, "per-element target error fraction (continuous)")
	runCmd.Flags().Float64Var(&sizeExponent, "size-exponent", 0.5, "size-proposal exponent (continuous)")
	runCmd.Flags().Float64Var(&targetSize, "target-size", 1.0, "fallback target element size (continuous)")
	runCmd.Flags().IntVar(&gridNX, "grid-nx", 8, "root cells along x")
	runCmd.Flags().IntVar(&gridNY, "grid-ny", 8, "root cells along y")
	runCmd.Flags().Float64Var(&cellSize, "cell-size", 1.0, "root cell edge length")
	runCmd.Flags().IntVar(&maxLevel, "max-level", 6, "refinement depth limit")
	runCmd.Flags().BoolVar(&graded, "graded", false, "grade initial levels along the span")
	runCmd.Flags().IntVar(&minLevel, "min-level", 0, "graded seeding: level at the span tip")
	runCmd.Flags().IntVar(&maxSeed, "seed-level", 2, "graded seeding: level at the span root")
	runCmd.Flags().Float64Var(&peakX, "peak-x", 2.0, "hot spot x coordinate")
	runCmd.Flags().Float64Var(&peakY, "peak-y", 2.0, "hot spot y coordinate")
	runCmd.Flags().Float64Var(&peakWidth, "peak-width", 0.5, "hot spot Gaussian width")
	runCmd.Flags().Float64Var(&noiseSigma, "noise-sigma", 0.0, "lognormal noise sigma (0 disables)")
	runCmd.Flags().StringVar(&caseFile, "case-file", "cases.yaml", "YAML file holding named study cases")
	runCmd.Flags().StringVar(&caseName, "case", "", "name of the preset case to run")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
