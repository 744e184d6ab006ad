package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testCasesYAML = `
cases:
  wing-coarse:
    cycles: 3
    policy: structured
    target_fraction: 0.2
    grid_nx: 4
    grid_ny: 4
    cell_size: 2.0
    peak_x: 3.0
    peak_y: 5.0
    peak_width: 1.0
  wing-continuous:
    policy: continuous
    error_fraction: 0.05
    size_exponent: 1.0
    target_size: 0.5
`

func writeTestCases(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.yaml")
	if err := os.WriteFile(path, []byte(testCasesYAML), 0644); err != nil {
		t.Fatalf("writing case file: %v", err)
	}
	return path
}

func TestGetCaseConfig_FoundCase(t *testing.T) {
	// GIVEN a preset file with two named cases
	path := writeTestCases(t)

	// WHEN a case that exists is requested
	c := GetCaseConfig(path, "wing-coarse")

	// THEN its fields come back as written
	assert.NotNil(t, c)
	assert.Equal(t, 3, c.Cycles)
	assert.Equal(t, "structured", c.Policy)
	assert.Equal(t, 0.2, c.TargetFraction)
	assert.Equal(t, 4, c.GridNX)
	assert.Equal(t, 2.0, c.CellSize)
}

func TestGetCaseConfig_MissingCase(t *testing.T) {
	path := writeTestCases(t)

	c := GetCaseConfig(path, "no-such-case")

	assert.Nil(t, c)
}

func TestGetCaseConfig_MissingFile_Panics(t *testing.T) {
	assert.Panics(t, func() {
		GetCaseConfig(filepath.Join(t.TempDir(), "absent.yaml"), "anything")
	})
}

func TestApplyCase_OverridesOnlySetFields(t *testing.T) {
	// GIVEN flag values at their defaults
	defer resetStudyFlags(t)()
	cycles, policy, targetFraction = 5, "structured", 0.3
	errorFraction, gridNX, cellSize = 0.1, 8, 1.0

	// WHEN a preset that only sets the continuous knobs is applied
	applyCase(&StudyCase{
		Policy:        "continuous",
		ErrorFraction: 0.05,
		SizeExponent:  1.0,
		TargetSize:    0.5,
	})

	// THEN the preset's fields win and everything else keeps its default
	assert.Equal(t, "continuous", policy)
	assert.Equal(t, 0.05, errorFraction)
	assert.Equal(t, 1.0, sizeExponent)
	assert.Equal(t, 0.5, targetSize)
	assert.Equal(t, 5, cycles)
	assert.Equal(t, 8, gridNX)
	assert.Equal(t, 1.0, cellSize)
}

func TestApplyCase_PeakMovesWithWidth(t *testing.T) {
	defer resetStudyFlags(t)()
	peakX, peakY, peakWidth = 2.0, 2.0, 0.5

	applyCase(&StudyCase{PeakX: 3.0, PeakY: 5.0, PeakWidth: 1.0})

	assert.Equal(t, 3.0, peakX)
	assert.Equal(t, 5.0, peakY)
	assert.Equal(t, 1.0, peakWidth)
}

// resetStudyFlags snapshots the package-level flag variables and returns a
// restore func, so tests that mutate them do not leak into each other.
func resetStudyFlags(t *testing.T) func() {
	t.Helper()
	savedCycles, savedPolicy := cycles, policy
	savedTF, savedEF, savedSE, savedTS := targetFraction, errorFraction, sizeExponent, targetSize
	savedNX, savedNY, savedCell, savedMax := gridNX, gridNY, cellSize, maxLevel
	savedPX, savedPY, savedPW, savedNoise := peakX, peakY, peakWidth, noiseSigma
	savedLow, savedHigh, savedBins := lowExp, highExp, binsPerDecade
	savedGraded, savedMinLevel, savedMaxSeed := graded, minLevel, maxSeed
	return func() {
		cycles, policy = savedCycles, savedPolicy
		targetFraction, errorFraction, sizeExponent, targetSize = savedTF, savedEF, savedSE, savedTS
		gridNX, gridNY, cellSize, maxLevel = savedNX, savedNY, savedCell, savedMax
		peakX, peakY, peakWidth, noiseSigma = savedPX, savedPY, savedPW, savedNoise
		lowExp, highExp, binsPerDecade = savedLow, savedHigh, savedBins
		graded, minLevel, maxSeed = savedGraded, savedMinLevel, savedMaxSeed
	}
}
