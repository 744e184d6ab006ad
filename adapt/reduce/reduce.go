// Package reduce provides the collective-reduction collaborator the planner
// depends on: scalar and vector sum reductions across cooperating partitions,
// plus an all-to-root gather for the continuous size policy.
//
// Two implementations are provided: Serial (single partition, identity
// collectives) and Group (in-process multi-partition collectives over a
// generation-counted barrier). A real deployment would back Reducer with MPI
// or an equivalent message-passing layer; the planner only sees this interface.
package reduce

// Reducer is the collective interface consumed by the planner. All collective
// calls are synchronous: they return only after every cooperating partition
// has contributed, so the caller always observes fully merged results.
//
// Every partition in a group must issue the same sequence of collective calls
// with vector arguments of equal length; violating that contract is a caller
// bug, not a recoverable error.
type Reducer interface {
	// Rank identifies this partition within the group, in [0, Size).
	Rank() int
	// Size reports the number of cooperating partitions.
	Size() int
	// SumFloat64 returns the sum of v over all partitions.
	SumFloat64(v float64) float64
	// SumInt64 returns the sum of v over all partitions.
	SumInt64(v int64) int64
	// SumInt64s returns the elementwise sum of v over all partitions.
	SumInt64s(v []int64) []int64
	// GatherFloat64s concatenates v from all partitions in rank order.
	// Only rank 0 receives the result; all other ranks receive nil.
	GatherFloat64s(v []float64) []float64
}

// Serial is the single-partition Reducer: every collective is an identity
// operation on the local contribution.
type Serial struct{}

// NewSerial creates a single-partition Reducer.
func NewSerial() *Serial {
	return &Serial{}
}

func (s *Serial) Rank() int { return 0 }

func (s *Serial) Size() int { return 1 }

func (s *Serial) SumFloat64(v float64) float64 { return v }

func (s *Serial) SumInt64(v int64) int64 { return v }

func (s *Serial) SumInt64s(v []int64) []int64 {
	out := make([]int64, len(v))
	copy(out, v)
	return out
}

func (s *Serial) GatherFloat64s(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
