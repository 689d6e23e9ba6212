package signature

import "errors"

// ErrEmptyCurve indicates a curve with no samples; the mean of an empty
// level sequence is undefined, so normalization refuses it outright.
var ErrEmptyCurve = errors.New("curve has no samples")

// Curve is a measured frequency response: parallel frequency (Hz) and
// sound pressure level (dB) sequences of equal length. Frequencies need
// not be sorted, evenly spaced, or unique.
type Curve struct {
	Frequencies []float64
	Levels      []float64
}

// Len returns the number of samples in the curve.
func (c Curve) Len() int {
	return len(c.Frequencies)
}

// Normalize returns the zero-mean level sequence: each level minus the
// arithmetic mean of all levels. The input curve is not modified.
func (c Curve) Normalize() ([]float64, error) {
	if len(c.Levels) == 0 {
		return nil, ErrEmptyCurve
	}
	var sum float64
	for _, level := range c.Levels {
		sum += level
	}
	mean := sum / float64(len(c.Levels))

	normalized := make([]float64, len(c.Levels))
	for i, level := range c.Levels {
		normalized[i] = level - mean
	}
	return normalized, nil
}
