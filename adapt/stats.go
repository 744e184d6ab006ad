package adapt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/adapt-sim/adapt-sim/adapt/reduce"
)

// LogStats holds the mean and standard deviation of log(error) over the
// global error field.
type LogStats struct {
	Mean   float64
	Stddev float64
}

// ComputeLogStatistics computes the mean and standard deviation of log(error)
// across all partitions. errors holds the local partition's values;
// totalCount is the global element count (already reduced by the caller).
//
// Two-pass: one global sum reduction for the mean, a second for the variance.
// Every partition in the reducer's group must call this in lockstep with
// strictly positive values; a validation failure is fatal for the whole cycle.
func ComputeLogStatistics(red reduce.Reducer, errors []float64, totalCount int) (LogStats, error) {
	if totalCount <= 1 {
		return LogStats{}, fmt.Errorf("%w: total element count %d must be > 1 for a stddev", ErrInvalidInput, totalCount)
	}

	logs := make([]float64, len(errors))
	for i, e := range errors {
		if e <= 0 {
			return LogStats{}, fmt.Errorf("%w: error estimate %v at element %d must be > 0", ErrInvalidInput, e, i)
		}
		logs[i] = math.Log(e)
	}

	mean := red.SumFloat64(floats.Sum(logs)) / float64(totalCount)

	sq := 0.0
	for _, l := range logs {
		d := l - mean
		sq += d * d
	}
	stddev := math.Sqrt(red.SumFloat64(sq) / float64(totalCount-1))

	return LogStats{Mean: mean, Stddev: stddev}, nil
}
