package tonal

import (
	"math"
	"testing"
)

func sine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.6 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func TestTrackSineIsVoiced(t *testing.T) {
	const sampleRate = 16000
	tracker := NewVoicingTracker(DefaultVoicingParams(sampleRate))

	result := tracker.Track(sine(440, sampleRate, sampleRate/2))
	if len(result.Voiced) == 0 {
		t.Fatal("no frames analyzed")
	}

	voiced := 0
	var pitchSum float64
	for i, v := range result.Voiced {
		if v {
			voiced++
			pitchSum += result.Pitch[i]
		}
	}
	frac := float64(voiced) / float64(len(result.Voiced))
	if frac < 0.8 {
		t.Fatalf("voiced fraction = %v, want >= 0.8", frac)
	}

	meanPitch := pitchSum / float64(voiced)
	if meanPitch < 425 || meanPitch > 455 {
		t.Errorf("mean pitch = %vHz, want about 440Hz", meanPitch)
	}
}

func TestTrackSilenceIsUnvoiced(t *testing.T) {
	const sampleRate = 16000
	tracker := NewVoicingTracker(DefaultVoicingParams(sampleRate))

	result := tracker.Track(make([]float64, sampleRate/2))
	for i, v := range result.Voiced {
		if v {
			t.Fatalf("frame %d voiced in silence", i)
		}
		if result.Pitch[i] != 0 {
			t.Fatalf("frame %d pitch = %v in silence", i, result.Pitch[i])
		}
	}
}

func TestTrackFrameTimes(t *testing.T) {
	const sampleRate = 16000
	params := DefaultVoicingParams(sampleRate)
	tracker := NewVoicingTracker(params)

	result := tracker.Track(sine(200, sampleRate, sampleRate))
	if len(result.FrameTimes) != len(result.Voiced) {
		t.Fatalf("frame times and voiced flags disagree: %d vs %d",
			len(result.FrameTimes), len(result.Voiced))
	}

	// Frame centers advance by one hop.
	hopSec := float64(params.HopSize) / float64(sampleRate)
	for i := 1; i < len(result.FrameTimes); i++ {
		step := result.FrameTimes[i] - result.FrameTimes[i-1]
		if math.Abs(step-hopSec) > 1e-9 {
			t.Fatalf("frame step = %v, want %v", step, hopSec)
		}
	}
}

func TestTrackShortSignal(t *testing.T) {
	tracker := NewVoicingTracker(DefaultVoicingParams(16000))
	result := tracker.Track(make([]float64, 100))
	if len(result.Voiced) != 0 {
		t.Errorf("got %d frames for a sub-frame signal, want 0", len(result.Voiced))
	}
}
