package adapt

import (
	"fmt"
	"math"

	"github.com/adapt-sim/adapt-sim/adapt/reduce"
)

// ErrorHistogram is a log-spaced histogram of the global error field.
//
// Bounds holds nbins+1 strictly decreasing powers of ten; Bins holds nbins+2
// counts: index 0 is the overflow-high bin (values above Bounds[0]), the last
// index is the overflow-low bin (values at or below the last bound), and interior
// bin j+1 counts values in (Bounds[j+1], Bounds[j]]. Counts are global: they
// have already been summed across all partitions.
type ErrorHistogram struct {
	Bounds []float64
	Bins   []int64
}

// Total returns the global element count across all bins.
func (h *ErrorHistogram) Total() int64 {
	var total int64
	for _, c := range h.Bins {
		total += c
	}
	return total
}

// HistogramBounds returns the nbins+1 bin boundaries for the dynamic range
// [10^lowExp, 10^highExp]: bounds[j] = 10^(highExp - j/binsPerDecade),
// strictly decreasing from 10^highExp down to 10^lowExp.
func HistogramBounds(lowExp, highExp, binsPerDecade int) ([]float64, error) {
	if lowExp >= highExp {
		return nil, fmt.Errorf("%w: low exponent %d must be < high exponent %d", ErrInvalidInput, lowExp, highExp)
	}
	if binsPerDecade < 1 {
		return nil, fmt.Errorf("%w: bins per decade %d must be >= 1", ErrInvalidInput, binsPerDecade)
	}
	nbins := binsPerDecade * (highExp - lowExp)
	bounds := make([]float64, nbins+1)
	for j := 0; j <= nbins; j++ {
		bounds[j] = math.Pow(10, float64(highExp)-float64(j)/float64(binsPerDecade))
	}
	return bounds, nil
}

// BuildHistogram bins the local partition's error values into the log-spaced
// histogram and sums the counts across all partitions (one integer vector
// reduction). Ties at a bin boundary route to the coarser (lower-index) bin,
// so the counts partition the input exactly: summed over all bins they equal
// the global element count.
func BuildHistogram(red reduce.Reducer, errors []float64, lowExp, highExp, binsPerDecade int) (*ErrorHistogram, error) {
	bounds, err := HistogramBounds(lowExp, highExp, binsPerDecade)
	if err != nil {
		return nil, err
	}

	bins := make([]int64, len(bounds)+1)
	for i, e := range errors {
		if e <= 0 {
			return nil, fmt.Errorf("%w: error estimate %v at element %d must be > 0", ErrInvalidInput, e, i)
		}
		switch {
		case e > bounds[0]:
			bins[0]++
		case e <= bounds[len(bounds)-1]:
			// Bins are upper-inclusive, so the overflow-low bin takes values at or
			// below the last bound; every positive value lands in exactly one bin.
			bins[len(bins)-1]++
		default:
			for j := 0; j < len(bounds)-1; j++ {
				if e <= bounds[j] && e > bounds[j+1] {
					bins[j+1]++
					break
				}
			}
		}
	}

	return &ErrorHistogram{Bounds: bounds, Bins: red.SumInt64s(bins)}, nil
}
