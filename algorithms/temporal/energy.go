package temporal

import (
	"github.com/Atifue/hacknight-2025-fall/algorithms/common"
)

// Energy computes short-time RMS energy over overlapping frames
type Energy struct {
	frameSize int
	hopSize   int
}

// NewEnergy creates a new energy calculator
func NewEnergy(frameSize, hopSize int) *Energy {
	return &Energy{
		frameSize: frameSize,
		hopSize:   hopSize,
	}
}

// ComputeShortTimeEnergy calculates RMS energy for overlapping frames.
// Signals shorter than one frame are measured as a single frame so that
// brief word spans still produce an energy estimate.
func (e *Energy) ComputeShortTimeEnergy(signal []float64) []float64 {
	if len(signal) == 0 || e.hopSize <= 0 || e.frameSize <= 0 {
		return []float64{}
	}

	if len(signal) < e.frameSize {
		return []float64{common.RMS(signal)}
	}

	numFrames := (len(signal)-e.frameSize)/e.hopSize + 1
	energies := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * e.hopSize
		endIdx := startIdx + e.frameSize

		if endIdx > len(signal) {
			break
		}

		energies[i] = common.RMS(signal[startIdx:endIdx])
	}

	return energies
}
