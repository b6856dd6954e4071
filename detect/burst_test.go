package detect

import "testing"

// burstTrain builds n onsets starting at t0 with the given spacing.
func burstTrain(t0, spacing float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = t0 + float64(i)*spacing
	}
	return out
}

func TestAcousticRepetitionDetector(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("burst cluster before a word", func(t *testing.T) {
		// Five bursts 120ms apart ending at 2.48s, then "stop" at 2.7s.
		feats := &stubFeatures{onsets: burstTrain(2.0, 0.12, 5)}
		words := []Word{
			{Text: "please", Start: 1.0, End: 1.4},
			{Text: "stop", Start: 2.7, End: 3.0},
		}
		events := NewAcousticRepetitionDetector(cfg).Detect(words, feats)
		if len(events) != 1 {
			t.Fatalf("got %d events, want 1: %+v", len(events), events)
		}
		ev := events[0]
		if ev.Kind != KindAcousticRepetition {
			t.Errorf("kind = %s, want %s", ev.Kind, KindAcousticRepetition)
		}
		if ev.Count != 5 {
			t.Errorf("count = %d, want 5", ev.Count)
		}
		if ev.InferredSound != "st" {
			t.Errorf("inferred sound = %q, want %q", ev.InferredSound, "st")
		}
		if ev.TargetWord != "stop" {
			t.Errorf("target word = %q, want %q", ev.TargetWord, "stop")
		}
		if ev.Start != 2.0 || ev.End < 2.47 || ev.End > 2.49 {
			t.Errorf("span = [%v, %v], want [2.0, 2.48]", ev.Start, ev.End)
		}
	})

	t.Run("single letter inferred without a cluster onset", func(t *testing.T) {
		feats := &stubFeatures{onsets: burstTrain(2.0, 0.12, 5)}
		words := []Word{{Text: "Ball", Start: 2.7, End: 3.0}}
		events := NewAcousticRepetitionDetector(cfg).Detect(words, feats)
		if len(events) != 1 {
			t.Fatalf("got %d events, want 1", len(events))
		}
		if events[0].InferredSound != "b" {
			t.Errorf("inferred sound = %q, want %q", events[0].InferredSound, "b")
		}
	})

	t.Run("no nearby word drops the cluster", func(t *testing.T) {
		feats := &stubFeatures{onsets: burstTrain(2.0, 0.12, 5)}
		words := []Word{{Text: "later", Start: 4.0, End: 4.3}}
		if events := NewAcousticRepetitionDetector(cfg).Detect(words, feats); len(events) != 0 {
			t.Errorf("got %d events, want 0", len(events))
		}
	})

	t.Run("four bursts are not enough", func(t *testing.T) {
		feats := &stubFeatures{onsets: burstTrain(2.0, 0.12, 4)}
		words := []Word{{Text: "stop", Start: 2.6, End: 3.0}}
		if events := NewAcousticRepetitionDetector(cfg).Detect(words, feats); len(events) != 0 {
			t.Errorf("got %d events, want 0", len(events))
		}
	})

	t.Run("spacing outside the cadence band breaks the cluster", func(t *testing.T) {
		// 400ms spacing is normal speech rhythm, not stuttering.
		feats := &stubFeatures{onsets: burstTrain(2.0, 0.4, 6)}
		words := []Word{{Text: "stop", Start: 4.5, End: 4.9}}
		if events := NewAcousticRepetitionDetector(cfg).Detect(words, feats); len(events) != 0 {
			t.Errorf("got %d events, want 0", len(events))
		}
	})

	t.Run("early cluster suppressed", func(t *testing.T) {
		feats := &stubFeatures{onsets: burstTrain(0.2, 0.12, 5)}
		words := []Word{{Text: "stop", Start: 1.0, End: 1.4}}
		if events := NewAcousticRepetitionDetector(cfg).Detect(words, feats); len(events) != 0 {
			t.Errorf("got %d events, want 0", len(events))
		}
	})

	t.Run("two clusters in one recording", func(t *testing.T) {
		onsets := append(burstTrain(2.0, 0.12, 5), burstTrain(6.0, 0.1, 5)...)
		feats := &stubFeatures{onsets: onsets}
		words := []Word{
			{Text: "stop", Start: 2.7, End: 3.0},
			{Text: "go", Start: 6.5, End: 6.8},
		}
		events := NewAcousticRepetitionDetector(cfg).Detect(words, feats)
		if len(events) != 2 {
			t.Fatalf("got %d events, want 2: %+v", len(events), events)
		}
		if events[1].InferredSound != "g" {
			t.Errorf("second inferred sound = %q, want %q", events[1].InferredSound, "g")
		}
	})
}
