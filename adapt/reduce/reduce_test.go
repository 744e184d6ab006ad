package reduce

import (
	"math"
	"sync"
	"testing"
)

func TestSerial_IdentityCollectives(t *testing.T) {
	s := NewSerial()

	if s.Rank() != 0 || s.Size() != 1 {
		t.Errorf("rank/size: got %d/%d, want 0/1", s.Rank(), s.Size())
	}
	if got := s.SumFloat64(3.5); got != 3.5 {
		t.Errorf("SumFloat64: got %v, want 3.5", got)
	}
	if got := s.SumInt64(-7); got != -7 {
		t.Errorf("SumInt64: got %d, want -7", got)
	}

	in := []int64{1, 2, 3}
	out := s.SumInt64s(in)
	out[0] = 99
	if in[0] != 1 {
		t.Error("SumInt64s must not alias the input")
	}

	fin := []float64{0.5, 1.5}
	fout := s.GatherFloat64s(fin)
	if len(fout) != 2 || fout[0] != 0.5 || fout[1] != 1.5 {
		t.Errorf("GatherFloat64s: got %v", fout)
	}
	fout[0] = 99
	if fin[0] != 0.5 {
		t.Error("GatherFloat64s must not alias the input")
	}
}

func TestGroup_ScalarSums(t *testing.T) {
	// GIVEN 4 partitions each contributing rank+1
	const n = 4
	g := NewGroup(n)

	var wg sync.WaitGroup
	results := make([]float64, n)
	for r := 0; r < n; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			results[rank] = g.Member(rank).SumFloat64(float64(rank + 1))
		}(r)
	}
	wg.Wait()

	// THEN every rank observes the full sum
	for rank, got := range results {
		if got != 10 {
			t.Errorf("rank %d: got %v, want 10", rank, got)
		}
	}
}

func TestGroup_VectorSums(t *testing.T) {
	const n = 3
	g := NewGroup(n)

	var wg sync.WaitGroup
	results := make([][]int64, n)
	for r := 0; r < n; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			results[rank] = g.Member(rank).SumInt64s([]int64{int64(rank), 1, 0})
		}(r)
	}
	wg.Wait()

	for rank, got := range results {
		if got[0] != 3 || got[1] != 3 || got[2] != 0 {
			t.Errorf("rank %d: got %v, want [3 3 0]", rank, got)
		}
	}
}

func TestGroup_GatherConcatenatesInRankOrder(t *testing.T) {
	const n = 3
	g := NewGroup(n)

	var wg sync.WaitGroup
	results := make([][]float64, n)
	for r := 0; r < n; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			// Rank r contributes r copies of float64(r).
			contrib := make([]float64, rank)
			for i := range contrib {
				contrib[i] = float64(rank)
			}
			results[rank] = g.Member(rank).GatherFloat64s(contrib)
		}(r)
	}
	wg.Wait()

	// Only rank 0 receives the gathered array: [1, 2, 2].
	want := []float64{1, 2, 2}
	if len(results[0]) != len(want) {
		t.Fatalf("rank 0: got %v, want %v", results[0], want)
	}
	for i := range want {
		if results[0][i] != want[i] {
			t.Errorf("rank 0 index %d: got %v, want %v", i, results[0][i], want[i])
		}
	}
	for rank := 1; rank < n; rank++ {
		if results[rank] != nil {
			t.Errorf("rank %d: got %v, want nil", rank, results[rank])
		}
	}
}

func TestGroup_ManySequentialRounds(t *testing.T) {
	// Back-to-back collectives must not bleed results across rounds.
	const n = 4
	const rounds = 200
	g := NewGroup(n)

	var wg sync.WaitGroup
	failures := make(chan string, n*rounds)
	for r := 0; r < n; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			m := g.Member(rank)
			for round := 0; round < rounds; round++ {
				want := float64(n * round)
				if got := m.SumFloat64(float64(round)); got != want {
					failures <- "round sum mismatch"
					return
				}
				if got := m.SumInt64(int64(round)); got != int64(n*round) {
					failures <- "int round sum mismatch"
					return
				}
			}
		}(r)
	}
	wg.Wait()
	close(failures)
	for f := range failures {
		t.Fatal(f)
	}
}

func TestGroup_MemberValidation(t *testing.T) {
	g := NewGroup(2)
	for _, rank := range []int{-1, 2} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("rank %d: expected panic", rank)
				}
			}()
			g.Member(rank)
		}()
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero-size group")
		}
	}()
	NewGroup(0)
}

func TestGroup_SumIsOrderIndependent(t *testing.T) {
	// Floating-point reassociation: the combine walks slots in rank order,
	// so every rank sees the identical bit pattern.
	const n = 3
	g := NewGroup(n)
	contribs := []float64{0.1, 0.2, 0.3}

	var wg sync.WaitGroup
	results := make([]float64, n)
	for r := 0; r < n; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			results[rank] = g.Member(rank).SumFloat64(contribs[rank])
		}(r)
	}
	wg.Wait()

	for rank := 1; rank < n; rank++ {
		if math.Float64bits(results[rank]) != math.Float64bits(results[0]) {
			t.Errorf("rank %d: bit pattern differs from rank 0", rank)
		}
	}
}
