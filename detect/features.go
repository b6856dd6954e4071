package detect

import (
	"fmt"

	"github.com/Atifue/hacknight-2025-fall/algorithms/common"
	"github.com/Atifue/hacknight-2025-fall/algorithms/filters"
	"github.com/Atifue/hacknight-2025-fall/algorithms/temporal"
	"github.com/Atifue/hacknight-2025-fall/algorithms/tonal"
	"github.com/Atifue/hacknight-2025-fall/transcode"
)

// Features exposes the acoustic measurements the detectors consume. The
// detectors never touch raw PCM; everything they need comes through here.
type Features interface {
	// OnsetTimes returns all energy burst times, in seconds, over the
	// whole recording.
	OnsetTimes() []float64

	// OnsetTimesIn re-runs onset detection on the [start, end) slice with
	// a finer hop and a lower threshold, returning absolute times. Used
	// for in-word burst analysis where the global pass is too coarse.
	OnsetTimesIn(start, end float64) []float64

	// VoicedRunMs returns the longest contiguous voiced run, in
	// milliseconds, among voicing frames whose centers fall in
	// [start, end).
	VoicedRunMs(start, end float64) float64

	// RMSProfile returns per-frame RMS values for [start, end) and their
	// mean. An empty span yields a nil profile and zero mean.
	RMSProfile(start, end float64) ([]float64, float64)
}

const (
	onsetWindowSize   = 1024
	onsetHopSize      = 512
	onsetMinInterval  = 0.05
	inWordHopSize     = 256
	rmsFrameSize      = 512
	rmsHopSize        = 256
	voicingRunHopSize = 256
)

// SignalAccessor implements Features over decoded mono PCM. The global onset
// pass and the voicing track are computed once at construction; per-span
// queries slice into them.
type SignalAccessor struct {
	pcm        []float64
	sampleRate int
	cfg        Config

	onsets  []float64
	voicing *tonal.VoicingResult
	energy  *temporal.Energy
}

// NewSignalAccessor analyzes the signal up front and returns a Features
// implementation over it.
func NewSignalAccessor(audio *transcode.AudioData, cfg Config) (*SignalAccessor, error) {
	if audio == nil || len(audio.PCM) == 0 {
		return nil, fmt.Errorf("signal accessor: empty audio")
	}

	// Strip any DC offset first so the per-frame RMS numbers reflect
	// actual speech energy.
	sa := &SignalAccessor{
		pcm:        filters.NewDCBlocker().ProcessBuffer(audio.PCM),
		sampleRate: audio.SampleRate,
		cfg:        cfg,
		energy:     temporal.NewEnergy(rmsFrameSize, rmsHopSize),
	}

	od := temporal.NewOnsetDetection()
	onsets, err := od.DetectOnsetTimes(sa.pcm, sa.sampleRate, onsetWindowSize, onsetHopSize, cfg.OnsetDelta, onsetMinInterval)
	if err != nil {
		return nil, fmt.Errorf("signal accessor: onset detection: %w", err)
	}
	sa.onsets = onsets

	tracker := tonal.NewVoicingTracker(tonal.DefaultVoicingParams(sa.sampleRate))
	sa.voicing = tracker.Track(sa.pcm)

	return sa, nil
}

func (sa *SignalAccessor) OnsetTimes() []float64 {
	return sa.onsets
}

func (sa *SignalAccessor) OnsetTimesIn(start, end float64) []float64 {
	lo, hi := sa.sliceBounds(start, end)
	if hi-lo < onsetWindowSize {
		return nil
	}

	od := temporal.NewOnsetDetection()
	times, err := od.DetectOnsetTimes(sa.pcm[lo:hi], sa.sampleRate, onsetWindowSize, inWordHopSize, sa.cfg.InWordOnsetDelta, onsetMinInterval)
	if err != nil {
		return nil
	}
	for i := range times {
		times[i] += start
	}
	return times
}

func (sa *SignalAccessor) VoicedRunMs(start, end float64) float64 {
	longest, run := 0, 0
	for i, t := range sa.voicing.FrameTimes {
		if t < start || t >= end {
			continue
		}
		if sa.voicing.Voiced[i] {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	frameSec := float64(voicingRunHopSize) / float64(sa.sampleRate)
	return float64(longest) * frameSec * 1000
}

func (sa *SignalAccessor) RMSProfile(start, end float64) ([]float64, float64) {
	lo, hi := sa.sliceBounds(start, end)
	if hi <= lo {
		return nil, 0
	}
	frames := sa.energy.ComputeShortTimeEnergy(sa.pcm[lo:hi])
	if len(frames) == 0 {
		return nil, 0
	}
	return frames, common.Mean(frames)
}

func (sa *SignalAccessor) sliceBounds(start, end float64) (int, int) {
	lo := int(start * float64(sa.sampleRate))
	hi := int(end * float64(sa.sampleRate))
	if lo < 0 {
		lo = 0
	}
	if hi > len(sa.pcm) {
		hi = len(sa.pcm)
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
