// Package filters contains the signal conditioning applied before feature
// extraction.
package filters

// DCBlocker is a first-order high-pass filter that strips the DC offset some
// microphone chains leave in the signal. An offset inflates every RMS frame,
// which would push silent spans past the silence threshold and corrupt the
// prolongation energy checks.
//
// Difference equation: y[n] = x[n] - x[n-1] + R*y[n-1]
type DCBlocker struct {
	pole float64
	x1   float64
	y1   float64
}

// NewDCBlocker returns a blocker with a 0.995 pole, cutting below roughly
// 13 Hz at a 16 kHz sample rate. Well under the 65 Hz voicing floor.
func NewDCBlocker() *DCBlocker {
	return &DCBlocker{pole: 0.995}
}

// Process filters a single sample and advances the filter state.
func (b *DCBlocker) Process(input float64) float64 {
	output := input - b.x1 + b.pole*b.y1
	b.x1 = input
	b.y1 = output
	return output
}

// ProcessBuffer filters a whole signal, returning a new slice.
func (b *DCBlocker) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = b.Process(sample)
	}
	return output
}

// Reset clears state between discontinuous segments.
func (b *DCBlocker) Reset() {
	b.x1 = 0
	b.y1 = 0
}
