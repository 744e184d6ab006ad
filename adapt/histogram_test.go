package adapt

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/adapt-sim/adapt-sim/adapt/reduce"
)

func TestHistogramBounds_StrictlyDecreasingPowersOfTen(t *testing.T) {
	bounds, err := HistogramBounds(-16, 4, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bounds) != 10*(4-(-16))+1 {
		t.Fatalf("bounds length: got %d, want %d", len(bounds), 201)
	}
	if bounds[0] != 1e4 {
		t.Errorf("bounds[0]: got %v, want 1e4", bounds[0])
	}
	if math.Abs(bounds[len(bounds)-1]-1e-16) > 1e-26 {
		t.Errorf("last bound: got %v, want 1e-16", bounds[len(bounds)-1])
	}
	for j := 1; j < len(bounds); j++ {
		if bounds[j] >= bounds[j-1] {
			t.Fatalf("bounds not strictly decreasing at %d: %v >= %v", j, bounds[j], bounds[j-1])
		}
	}
}

func TestHistogramBounds_InvalidArguments(t *testing.T) {
	tests := []struct {
		name                    string
		low, high, binsPerDecade int
	}{
		{"low equals high", 2, 2, 10},
		{"low above high", 4, -16, 10},
		{"zero bins per decade", -16, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := HistogramBounds(tt.low, tt.high, tt.binsPerDecade); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestBuildHistogram_CountConservation(t *testing.T) {
	// Counts must sum exactly to the input length for any range choice.
	rng := rand.New(rand.NewSource(7))
	errs := make([]float64, 500)
	for i := range errs {
		// Spread values across and beyond the dynamic ranges under test.
		errs[i] = math.Pow(10, -24+42*rng.Float64())
	}

	tests := []struct {
		name                    string
		low, high, binsPerDecade int
	}{
		{"wide range", -16, 4, 10},
		{"narrow range", -2, 2, 1},
		{"single decade", 0, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hist, err := BuildHistogram(reduce.NewSerial(), errs, tt.low, tt.high, tt.binsPerDecade)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := hist.Total(); got != int64(len(errs)) {
				t.Errorf("total count: got %d, want %d", got, len(errs))
			}
			if len(hist.Bins) != len(hist.Bounds)+1 {
				t.Errorf("bins length: got %d, want %d", len(hist.Bins), len(hist.Bounds)+1)
			}
		})
	}
}

func TestBuildHistogram_OnesLandInSingleBin(t *testing.T) {
	// GIVEN errors = [1, 1, 1, 1] over the wing-box dynamic range
	hist, err := BuildHistogram(reduce.NewSerial(), []float64{1, 1, 1, 1}, -16, 4, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN all four land in the bin whose upper bound is 10^0
	// (bounds[40] == 1, so the interior bin at index 41)
	for i, c := range hist.Bins {
		want := int64(0)
		if i == 41 {
			want = 4
		}
		if c != want {
			t.Errorf("bin %d: got %d, want %d", i, c, want)
		}
	}
}

func TestBuildHistogram_ExactUpperBoundary_CountedOnce(t *testing.T) {
	// GIVEN a value exactly equal to 10^highExp
	hist, err := BuildHistogram(reduce.NewSerial(), []float64{1e4}, -16, 4, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN it is not overflow-high: ties route into the bin they bound above
	if hist.Bins[0] != 0 {
		t.Errorf("overflow-high bin: got %d, want 0", hist.Bins[0])
	}
	if hist.Bins[1] != 1 {
		t.Errorf("first interior bin: got %d, want 1", hist.Bins[1])
	}
	if hist.Total() != 1 {
		t.Errorf("total: got %d, want 1", hist.Total())
	}
}

func TestBuildHistogram_ExactLowerBoundary_CountedOnce(t *testing.T) {
	// A value exactly on the histogram floor goes to the overflow-low bin,
	// never uncounted.
	hist, err := BuildHistogram(reduce.NewSerial(), []float64{1e-16}, -16, 4, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hist.Bins[len(hist.Bins)-1] != 1 {
		t.Errorf("overflow-low bin: got %d, want 1", hist.Bins[len(hist.Bins)-1])
	}
	if hist.Total() != 1 {
		t.Errorf("total: got %d, want 1", hist.Total())
	}
}

func TestBuildHistogram_OverflowBins(t *testing.T) {
	hist, err := BuildHistogram(reduce.NewSerial(), []float64{1e7, 1e-20}, -16, 4, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hist.Bins[0] != 1 {
		t.Errorf("overflow-high: got %d, want 1", hist.Bins[0])
	}
	if hist.Bins[len(hist.Bins)-1] != 1 {
		t.Errorf("overflow-low: got %d, want 1", hist.Bins[len(hist.Bins)-1])
	}
}

func TestBuildHistogram_NonPositiveValue_Fails(t *testing.T) {
	_, err := BuildHistogram(reduce.NewSerial(), []float64{1, -2}, -16, 4, 10)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBuildHistogram_PartitionedCountsSum(t *testing.T) {
	// GIVEN the same values split across two partitions
	all := []float64{1e-2, 1e-4, 1e-6, 1e-8, 3e-2, 2e-5}
	parts := [][]float64{all[:2], all[2:]}

	want, err := BuildHistogram(reduce.NewSerial(), all, -16, 4, 10)
	if err != nil {
		t.Fatalf("serial histogram: %v", err)
	}

	group := reduce.NewGroup(2)
	got := make([]*ErrorHistogram, 2)
	done := make(chan error, 2)
	for r := range parts {
		go func(rank int) {
			h, err := BuildHistogram(group.Member(rank), parts[rank], -16, 4, 10)
			got[rank] = h
			done <- err
		}(r)
	}
	for range parts {
		if err := <-done; err != nil {
			t.Fatalf("partitioned histogram: %v", err)
		}
	}

	// THEN both ranks observe the globally summed counts
	for rank := 0; rank < 2; rank++ {
		for i := range want.Bins {
			if got[rank].Bins[i] != want.Bins[i] {
				t.Fatalf("rank %d bin %d: got %d, want %d", rank, i, got[rank].Bins[i], want.Bins[i])
			}
		}
	}
}
