package tonal

import (
	"math"
)

// VoicingParams contains parameters for frame-wise voicing detection
type VoicingParams struct {
	SampleRate int     `json:"sample_rate"`
	FrameSize  int     `json:"frame_size"`
	HopSize    int     `json:"hop_size"`
	MinFreq    float64 `json:"min_freq"`      // Minimum fundamental (Hz)
	MaxFreq    float64 `json:"max_freq"`      // Maximum fundamental (Hz)
	Threshold  float64 `json:"yin_threshold"` // YIN aperiodicity threshold (0.1-0.5)
}

// DefaultVoicingParams returns parameters tuned for conversational speech.
// The frequency range spans roughly C2 to C7, wide enough for low male
// voices and prolonged high-pitch vowels.
func DefaultVoicingParams(sampleRate int) VoicingParams {
	return VoicingParams{
		SampleRate: sampleRate,
		FrameSize:  1024,
		HopSize:    256,
		MinFreq:    65.0,
		MaxFreq:    2093.0,
		Threshold:  0.15,
	}
}

// VoicingResult holds frame-wise voicing flags over a signal
type VoicingResult struct {
	Voiced     []bool    `json:"voiced"`      // Per-frame vocal-fold vibration flag
	Pitch      []float64 `json:"pitch"`       // Per-frame F0 estimate (0 when unvoiced)
	FrameTimes []float64 `json:"frame_times"` // Frame center times in seconds
}

// VoicingTracker detects voiced frames using the YIN fundamental-frequency
// estimator (de Cheveigné & Kawahara 2002). A frame counts as voiced when
// YIN finds a periodicity dip below the threshold inside the configured
// frequency range.
type VoicingTracker struct {
	params VoicingParams
}

// NewVoicingTracker creates a voicing tracker with the given parameters
func NewVoicingTracker(params VoicingParams) *VoicingTracker {
	return &VoicingTracker{params: params}
}

// Track computes frame-wise voicing flags for the whole signal
func (vt *VoicingTracker) Track(signal []float64) *VoicingResult {
	frameSize := vt.params.FrameSize
	hopSize := vt.params.HopSize

	if len(signal) < frameSize || frameSize <= 0 || hopSize <= 0 {
		return &VoicingResult{}
	}

	numFrames := (len(signal)-frameSize)/hopSize + 1
	result := &VoicingResult{
		Voiced:     make([]bool, numFrames),
		Pitch:      make([]float64, numFrames),
		FrameTimes: make([]float64, numFrames),
	}

	for i := 0; i < numFrames; i++ {
		start := i * hopSize
		frame := signal[start : start+frameSize]

		pitch, voiced := vt.analyzeFrame(frame)
		result.Voiced[i] = voiced
		result.Pitch[i] = pitch
		result.FrameTimes[i] = float64(start+frameSize/2) / float64(vt.params.SampleRate)
	}

	return result
}

// analyzeFrame runs YIN on a single frame
func (vt *VoicingTracker) analyzeFrame(frame []float64) (float64, bool) {
	n := len(frame)
	halfN := n / 2

	// Difference function
	diff := make([]float64, halfN)
	for tau := 0; tau < halfN; tau++ {
		sum := 0.0
		for j := 0; j < halfN; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		diff[tau] = sum
	}

	// Cumulative mean normalized difference function
	cmndf := make([]float64, halfN)
	cmndf[0] = 1.0

	runningSum := 0.0
	for tau := 1; tau < halfN; tau++ {
		runningSum += diff[tau]
		if runningSum > 0 {
			cmndf[tau] = diff[tau] / (runningSum / float64(tau))
		} else {
			// Silent frame, no periodicity evidence
			cmndf[tau] = 1.0
		}
	}

	minTau := int(float64(vt.params.SampleRate) / vt.params.MaxFreq)
	maxTau := int(float64(vt.params.SampleRate) / vt.params.MinFreq)
	if minTau < 1 {
		minTau = 1
	}
	if maxTau >= halfN {
		maxTau = halfN - 1
	}

	// First local minimum below threshold wins
	for tau := minTau; tau <= maxTau; tau++ {
		if cmndf[tau] < vt.params.Threshold {
			if tau+1 < halfN && cmndf[tau] < cmndf[tau+1] {
				period := vt.parabolicInterpolation(cmndf, tau)
				if period <= 0 {
					return 0, false
				}
				return float64(vt.params.SampleRate) / period, true
			}
		}
	}

	return 0, false
}

// parabolicInterpolation refines the lag estimate around a minimum
func (vt *VoicingTracker) parabolicInterpolation(data []float64, idx int) float64 {
	if idx <= 0 || idx >= len(data)-1 {
		return float64(idx)
	}

	y1 := data[idx-1]
	y2 := data[idx]
	y3 := data[idx+1]

	a := (y1 - 2*y2 + y3) / 2
	b := (y3 - y1) / 2

	if a == 0 {
		return float64(idx)
	}

	offset := -b / (2 * a)
	if math.Abs(offset) > 1 {
		return float64(idx)
	}

	return float64(idx) + offset
}
