package temporal

import (
	"github.com/Atifue/hacknight-2025-fall/algorithms/common"
	"github.com/Atifue/hacknight-2025-fall/algorithms/spectral"
)

// OnsetDetection detects sound onsets (sudden energy attacks) in audio signals
type OnsetDetection struct {
	spectralFlux *spectral.SpectralFlux
	stft         *spectral.STFT
}

// NewOnsetDetection creates a new onset detector
func NewOnsetDetection() *OnsetDetection {
	return &OnsetDetection{
		spectralFlux: spectral.NewSpectralFlux(),
		stft:         spectral.NewSTFT(),
	}
}

// DetectOnsetTimes detects onsets via spectral flux and returns their times
// in seconds. The flux envelope is normalized to [0,1] before peak picking,
// so delta is a fraction of the strongest attack in the signal and the same
// threshold works across recordings with different gain.
func (od *OnsetDetection) DetectOnsetTimes(signal []float64, sampleRate, windowSize, hopSize int, delta, minInterval float64) ([]float64, error) {
	if len(signal) < windowSize {
		return []float64{}, nil
	}

	stftResult, err := od.stft.Compute(signal, windowSize, hopSize, sampleRate)
	if err != nil {
		return nil, err
	}

	flux := od.spectralFlux.Compute(stftResult.Magnitude)
	if len(flux) == 0 {
		return []float64{}, nil
	}

	normalizeInPlace(flux)

	onsetFrames := od.findFluxPeaks(flux, delta, minInterval, hopSize, sampleRate)

	// flux[i] compares frame i+1 against frame i, so the onset lands on
	// frame i+1 of the spectrogram
	onsetTimes := make([]float64, len(onsetFrames))
	for i, frameIdx := range onsetFrames {
		onsetTimes[i] = float64((frameIdx+1)*hopSize) / float64(sampleRate)
	}

	return onsetTimes, nil
}

// findFluxPeaks finds local maxima in a flux envelope above a threshold,
// keeping at least minInterval seconds between accepted peaks
func (od *OnsetDetection) findFluxPeaks(flux []float64, threshold, minInterval float64, hopSize, sampleRate int) []int {
	if len(flux) < 3 {
		return []int{}
	}

	minIntervalFrames := int(minInterval * float64(sampleRate) / float64(hopSize))

	var peaks []int
	lastPeakFrame := -minIntervalFrames // allow first peak

	for i := 1; i < len(flux)-1; i++ {
		if flux[i] > flux[i-1] &&
			flux[i] >= flux[i+1] &&
			flux[i] >= threshold &&
			i-lastPeakFrame >= minIntervalFrames {
			peaks = append(peaks, i)
			lastPeakFrame = i
		}
	}

	return peaks
}

func normalizeInPlace(values []float64) {
	maxVal := common.MaxValue(values)
	if maxVal <= 0 {
		return
	}
	for i := range values {
		values[i] /= maxVal
	}
}
