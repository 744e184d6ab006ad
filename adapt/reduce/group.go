package reduce

import (
	"fmt"
	"sync"
)

// Group coordinates collectives between n in-process partitions, each running
// on its own goroutine. Every collective is one barrier round: contributions
// are parked in rank-indexed slots, the last arrival combines them, and the
// result is broadcast to all members.
//
// A round cannot complete until every member arrives, and a member cannot
// start round k+1 before returning from round k, so the published result is
// stable for the full duration of the round that produced it.
type Group struct {
	mu   sync.Mutex
	cond *sync.Cond

	size       int
	arrived    int
	generation uint64
	slots      []any
	result     any
}

// NewGroup creates a collective group for n cooperating partitions.
// It panics if n <= 0.
func NewGroup(n int) *Group {
	if n <= 0 {
		panic(fmt.Sprintf("reduce: group size %d must be > 0", n))
	}
	g := &Group{
		size:  n,
		slots: make([]any, n),
	}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Size reports the number of partitions in the group.
func (g *Group) Size() int { return g.size }

// Member returns the Reducer handle for the given rank. Each rank's handle
// must be used from a single goroutine.
func (g *Group) Member(rank int) *Member {
	if rank < 0 || rank >= g.size {
		panic(fmt.Sprintf("reduce: rank %d out of range [0, %d)", rank, g.size))
	}
	return &Member{group: g, rank: rank}
}

// round runs one collective: park the contribution, block until all members
// arrive, and return the combined result. combine runs exactly once per round,
// on the goroutine of the last member to arrive.
func (g *Group) round(rank int, contrib any, combine func(slots []any) any) any {
	g.mu.Lock()
	defer g.mu.Unlock()

	gen := g.generation
	g.slots[rank] = contrib
	g.arrived++

	if g.arrived == g.size {
		g.result = combine(g.slots)
		g.arrived = 0
		g.generation++
		g.cond.Broadcast()
	} else {
		for g.generation == gen {
			g.cond.Wait()
		}
	}
	return g.result
}

// Member is one partition's handle into a Group. It implements Reducer.
type Member struct {
	group *Group
	rank  int
}

func (m *Member) Rank() int { return m.rank }

func (m *Member) Size() int { return m.group.size }

func (m *Member) SumFloat64(v float64) float64 {
	result := m.group.round(m.rank, v, func(slots []any) any {
		sum := 0.0
		for _, s := range slots {
			sum += s.(float64)
		}
		return sum
	})
	return result.(float64)
}

func (m *Member) SumInt64(v int64) int64 {
	result := m.group.round(m.rank, v, func(slots []any) any {
		var sum int64
		for _, s := range slots {
			sum += s.(int64)
		}
		return sum
	})
	return result.(int64)
}

func (m *Member) SumInt64s(v []int64) []int64 {
	result := m.group.round(m.rank, v, func(slots []any) any {
		first := slots[0].([]int64)
		sum := make([]int64, len(first))
		for _, s := range slots {
			vec := s.([]int64)
			if len(vec) != len(sum) {
				panic(fmt.Sprintf("reduce: vector length mismatch: %d vs %d", len(vec), len(sum)))
			}
			for i, x := range vec {
				sum[i] += x
			}
		}
		return sum
	})
	out := make([]int64, len(result.([]int64)))
	copy(out, result.([]int64))
	return out
}

func (m *Member) GatherFloat64s(v []float64) []float64 {
	result := m.group.round(m.rank, v, func(slots []any) any {
		var all []float64
		for _, s := range slots {
			all = append(all, s.([]float64)...)
		}
		return all
	})
	if m.rank != 0 {
		return nil
	}
	gathered := result.([]float64)
	out := make([]float64, len(gathered))
	copy(out, gathered)
	return out
}
