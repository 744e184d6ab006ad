package trace

import "github.com/google/uuid"

// TraceLevel controls the verbosity of refinement tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelCycles captures every cycle's planning outcome and remesh request.
	TraceLevelCycles TraceLevel = "cycles"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelCycles: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// RefinementTrace collects cycle records during one refinement study.
type RefinementTrace struct {
	RunID    string
	Level    TraceLevel
	Cycles   []CycleRecord
	Remeshes []RemeshRecord
}

// NewRefinementTrace creates a RefinementTrace ready for recording, tagged
// with a fresh run identifier.
func NewRefinementTrace(level TraceLevel) *RefinementTrace {
	return &RefinementTrace{
		RunID:    uuid.NewString(),
		Level:    level,
		Cycles:   make([]CycleRecord, 0),
		Remeshes: make([]RemeshRecord, 0),
	}
}

// enabled reports whether records should be kept.
func (rt *RefinementTrace) enabled() bool {
	return rt.Level == TraceLevelCycles
}

// RecordCycle appends a cycle record.
func (rt *RefinementTrace) RecordCycle(record CycleRecord) {
	if rt.enabled() {
		rt.Cycles = append(rt.Cycles, record)
	}
}

// RecordRemesh appends a remesh record.
func (rt *RefinementTrace) RecordRemesh(record RemeshRecord) {
	if rt.enabled() {
		rt.Remeshes = append(rt.Remeshes, record)
	}
}
