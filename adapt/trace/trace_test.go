package trace

import "testing"

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"cycles", true},
		{"", true},
		{"decisions", false},
		{"verbose", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRefinementTrace_RecordsAtCyclesLevel(t *testing.T) {
	rt := NewRefinementTrace(TraceLevelCycles)

	rt.RecordCycle(CycleRecord{Cycle: 0, Policy: "structured", Elements: 100, Refined: 30})
	rt.RecordRemesh(RemeshRecord{Cycle: 0, Points: 100, MinSize: 0.1, MaxSize: 1.0})

	if len(rt.Cycles) != 1 || len(rt.Remeshes) != 1 {
		t.Fatalf("got %d cycle and %d remesh records, want 1 and 1", len(rt.Cycles), len(rt.Remeshes))
	}
	if rt.RunID == "" {
		t.Error("expected a non-empty run ID")
	}
}

func TestRefinementTrace_DropsRecordsAtNoneLevel(t *testing.T) {
	rt := NewRefinementTrace(TraceLevelNone)

	rt.RecordCycle(CycleRecord{Cycle: 0})
	rt.RecordRemesh(RemeshRecord{Cycle: 0})

	if len(rt.Cycles) != 0 || len(rt.Remeshes) != 0 {
		t.Errorf("got %d cycle and %d remesh records, want 0 and 0", len(rt.Cycles), len(rt.Remeshes))
	}
}

func TestRefinementTrace_DistinctRunIDs(t *testing.T) {
	a := NewRefinementTrace(TraceLevelCycles)
	b := NewRefinementTrace(TraceLevelCycles)
	if a.RunID == b.RunID {
		t.Error("expected distinct run IDs for distinct traces")
	}
}
