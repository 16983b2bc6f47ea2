// Package quality scores Phred+33 encoded quality strings.
package quality

import "errors"

const (
	// PhredOffset is the ASCII base of Phred+33 encoding.
	PhredOffset = 33
	// DefaultThreshold separates warning reads from healthy ones.
	DefaultThreshold float32 = 20.0
)

// ErrEmptyQuality is returned when there is nothing to average.
var ErrEmptyQuality = errors.New("empty quality string")

// Score returns the mean Phred value of q in single precision.
func Score(q []byte) (float32, error) {
	if len(q) == 0 {
		return 0, ErrEmptyQuality
	}
	total := 0
	for _, b := range q {
		total += int(b) - PhredOffset
	}
	return float32(total) / float32(len(q)), nil
}

// IsWarning reports whether avg falls strictly below threshold.
func IsWarning(avg, threshold float32) bool {
	return avg < threshold
}
