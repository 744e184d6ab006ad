package adapt

import "fmt"

// GradedInitialLevels assigns an initial refinement level per element, graded
// linearly along a spanwise coordinate: elements at coordinate 0 start at
// maxLevel and elements at spanMax start at minLevel. Used to seed the first
// mesh of a study with more resolution near the root of the structure.
//
// Levels interpolate as minLevel + (maxLevel-minLevel)*(1 - y/spanMax),
// truncated to an integer and clamped to [minLevel, maxLevel].
func GradedInitialLevels(coords []float64, spanMax float64, minLevel, maxLevel int) ([]int, error) {
	if spanMax <= 0 {
		return nil, fmt.Errorf("%w: span %v must be > 0", ErrInvalidInput, spanMax)
	}
	if minLevel < 0 || maxLevel < minLevel {
		return nil, fmt.Errorf("%w: levels [%d, %d] must satisfy 0 <= min <= max", ErrInvalidInput, minLevel, maxLevel)
	}
	levels := make([]int, len(coords))
	for i, y := range coords {
		l := minLevel + int(float64(maxLevel-minLevel)*(1-y/spanMax))
		if l < minLevel {
			l = minLevel
		}
		if l > maxLevel {
			l = maxLevel
		}
		levels[i] = l
	}
	return levels, nil
}
