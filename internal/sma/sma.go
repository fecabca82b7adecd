// Package sma implements the 200-day simple moving average with its sufficiency rule.
package sma

import (
	"fmt"

	"github.com/juv/sma-tracker/internal/apperr"
)

// MinSamples is the hard floor of valid closing prices required for a result.
// Fewer valid samples is an error, never a best-effort average.
const MinSamples = 200

// Compute returns the unweighted arithmetic mean of every present close in
// the window. Gaps (nil entries) are skipped without shifting positions.
// All valid entries contribute, however many there are; the window size is
// the caller's concern.
func Compute(closes []*float64) (float64, error) {
	var sum float64
	var n int
	for _, c := range closes {
		if c == nil {
			continue
		}
		sum += *c
		n++
	}
	if n < MinSamples {
		return 0, fmt.Errorf("%w: %d of %d required closes", apperr.ErrInsufficientData, n, MinSamples)
	}
	return sum / float64(n), nil
}
