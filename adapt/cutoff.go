package adapt

import "fmt"

// SelectCutoff walks the histogram from the largest-error bin downward,
// accumulating counts until the running sum exceeds targetFraction of the
// total element count, and returns the bound at that bin. Elements with
// errors above the returned cutoff are the refinement candidates.
//
// Fallback policy: if the accumulation never exceeds the threshold (for
// example targetFraction close to 1 with all mass in the overflow-low bin),
// the lowest bound is returned, which marks everything above the histogram
// floor for refinement.
func SelectCutoff(bins []int64, bounds []float64, targetFraction float64) (float64, error) {
	if len(bins) != len(bounds)+1 {
		return 0, fmt.Errorf("%w: %d bins inconsistent with %d bounds (want bounds+1)", ErrInvalidInput, len(bins), len(bounds))
	}
	if targetFraction <= 0 || targetFraction > 1 {
		return 0, fmt.Errorf("%w: target fraction %v must be in (0, 1]", ErrInvalidInput, targetFraction)
	}

	var total int64
	for _, c := range bins {
		total += c
	}
	threshold := targetFraction * float64(total)

	cutoff := bounds[len(bounds)-1]
	var binSum int64
	for i := 0; i < len(bins); i++ {
		binSum += bins[i]
		if float64(binSum) > threshold {
			j := i
			if j > len(bounds)-1 {
				j = len(bounds) - 1
			}
			cutoff = bounds[j]
			break
		}
	}
	return cutoff, nil
}
