package adapt

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// WriteHistogramTable writes the interior bins of a histogram as a plain
// whitespace-separated table, one row per bin in decreasing-bound order:
//
//	upper_bound  lower_bound  count  percent_of_total
//
// Overflow bins are omitted, matching the per-cycle results tables the
// refinement studies post-process.
func WriteHistogramTable(fileName string, hist *ErrorHistogram) error {
	total := hist.Total()

	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating histogram table %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Errorf("Error closing file %s: %v", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	nbins := len(hist.Bounds) - 1
	for i := 0; i < nbins; i++ {
		percent := 0.0
		if total > 0 {
			percent = 100 * float64(hist.Bins[i+1]) / float64(total)
		}
		if _, err := fmt.Fprintf(writer, "%.10e %.10e %d %.6f\n",
			hist.Bounds[i], hist.Bounds[i+1], hist.Bins[i+1], percent); err != nil {
			return fmt.Errorf("writing histogram table %s: %w", fileName, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing histogram table %s: %w", fileName, err)
	}
	return nil
}
