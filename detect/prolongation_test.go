package detect

import "testing"

// prolongWords returns filler words followed by one candidate of the given
// duration, separated by the usual 0.2s gap.
func prolongWords(fillerDur, candidateDur float64, candidate string) []Word {
	words := wordSeq(2.0, fillerDur, 0.2, "this", "wheel", "spins", "quite", "fast")
	last := words[len(words)-1]
	words = append(words, Word{
		Text:  candidate,
		Start: last.End + 0.2,
		End:   last.End + 0.2 + candidateDur,
	})
	return words
}

// voicedOver returns a voicing stub reporting ms for spans at or after t and
// almost nothing before it.
func voicedOver(t, ms float64) func(start, end float64) float64 {
	return func(start, _ float64) float64 {
		if start >= t {
			return ms
		}
		return 50
	}
}

func TestProlongationVowel(t *testing.T) {
	cfg := DefaultConfig()
	words := prolongWords(0.25, 0.9, "wheel")
	cand := words[len(words)-1]
	feats := &stubFeatures{voicedFn: voicedOver(cand.Start, 800)}

	prolongs, reclassified := NewProlongationDetector(cfg).Detect(words, feats)
	if len(reclassified) != 0 {
		t.Fatalf("unexpected reclassified events: %+v", reclassified)
	}
	if len(prolongs) != 1 {
		t.Fatalf("got %d prolongations, want 1: %+v", len(prolongs), prolongs)
	}
	ev := prolongs[0]
	if ev.Kind != KindProlongation || ev.Confidence != confProlongation {
		t.Errorf("got kind=%s conf=%v", ev.Kind, ev.Confidence)
	}
	if ev.Word != "wheel" {
		t.Errorf("word = %q, want %q", ev.Word, "wheel")
	}
	if ev.VoicedMs != 800 {
		t.Errorf("voiced ms = %v, want 800", ev.VoicedMs)
	}
	if ev.VoicedRatio < 0.85 || ev.VoicedRatio > 0.93 {
		t.Errorf("voiced ratio = %v, want about 0.89", ev.VoicedRatio)
	}
}

func TestProlongationSkips(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("stopword never prolongs", func(t *testing.T) {
		words := prolongWords(0.25, 0.9, "very")
		cand := words[len(words)-1]
		feats := &stubFeatures{voicedFn: voicedOver(cand.Start, 800)}
		prolongs, _ := NewProlongationDetector(cfg).Detect(words, feats)
		if len(prolongs) != 0 {
			t.Errorf("got %d prolongations, want 0", len(prolongs))
		}
	})

	t.Run("short word never prolongs", func(t *testing.T) {
		words := prolongWords(0.25, 0.4, "wheel")
		cand := words[len(words)-1]
		feats := &stubFeatures{voicedFn: voicedOver(cand.Start, 390)}
		prolongs, _ := NewProlongationDetector(cfg).Detect(words, feats)
		if len(prolongs) != 0 {
			t.Errorf("got %d prolongations, want 0", len(prolongs))
		}
	})

	t.Run("silent span is a timestamp artifact", func(t *testing.T) {
		words := prolongWords(0.25, 0.9, "wheel")
		cand := words[len(words)-1]
		feats := &stubFeatures{
			voicedFn:  voicedOver(cand.Start, 800),
			profileFn: func(_, _ float64) ([]float64, float64) { return []float64{0.0005}, 0.0005 },
		}
		prolongs, _ := NewProlongationDetector(cfg).Detect(words, feats)
		if len(prolongs) != 0 {
			t.Errorf("got %d prolongations, want 0", len(prolongs))
		}
	})

	t.Run("long preceding gap is block territory", func(t *testing.T) {
		words := prolongWords(0.25, 0.9, "wheel")
		cand := &words[len(words)-1]
		cand.Start += 0.8 // gap becomes 1.0s vs 0.2s median
		cand.End += 0.8
		feats := &stubFeatures{voicedFn: voicedOver(cand.Start, 800)}
		prolongs, _ := NewProlongationDetector(cfg).Detect(words, feats)
		if len(prolongs) != 0 {
			t.Errorf("got %d prolongations, want 0", len(prolongs))
		}
	})

	t.Run("word dwarfing the median is block territory", func(t *testing.T) {
		words := prolongWords(0.2, 0.9, "wheel") // 4x median is 0.8 < 0.9
		cand := words[len(words)-1]
		feats := &stubFeatures{voicedFn: voicedOver(cand.Start, 800)}
		prolongs, _ := NewProlongationDetector(cfg).Detect(words, feats)
		if len(prolongs) != 0 {
			t.Errorf("got %d prolongations, want 0", len(prolongs))
		}
	})

	t.Run("early window suppresses", func(t *testing.T) {
		words := wordSeq(0.0, 0.25, 0.2, "this", "wheel", "spins")
		last := words[len(words)-1]
		words = append(words, Word{Text: "wheel", Start: last.End + 0.2, End: last.End + 1.1})
		cand := words[len(words)-1]
		feats := &stubFeatures{voicedFn: voicedOver(cand.Start, 800)}
		prolongs, _ := NewProlongationDetector(cfg).Detect(words, feats)
		if len(prolongs) != 0 {
			t.Errorf("got %d prolongations, want 0", len(prolongs))
		}
	})
}

func TestProlongationConsonant(t *testing.T) {
	cfg := DefaultConfig()
	words := prolongWords(0.35, 1.2, "hiss")
	cand := words[len(words)-1]

	strong := func(_, _ float64) ([]float64, float64) {
		return []float64{0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01}, 0.01
	}
	weak := func(_, _ float64) ([]float64, float64) {
		frames := []float64{0.001, 0.001, 0.001, 0.001, 0.001, 0.001, 0.05, 0.05}
		return frames, 0.01325
	}

	t.Run("sustained energy with little voicing", func(t *testing.T) {
		feats := &stubFeatures{voicedFn: voicedOver(cand.Start, 100), profileFn: strong}
		prolongs, _ := NewProlongationDetector(cfg).Detect(words, feats)
		if len(prolongs) != 1 {
			t.Fatalf("got %d prolongations, want 1: %+v", len(prolongs), prolongs)
		}
		if prolongs[0].Word != "hiss" {
			t.Errorf("word = %q, want %q", prolongs[0].Word, "hiss")
		}
	})

	t.Run("sparse voicing without sustained energy", func(t *testing.T) {
		feats := &stubFeatures{voicedFn: voicedOver(cand.Start, 100), profileFn: weak}
		prolongs, _ := NewProlongationDetector(cfg).Detect(words, feats)
		if len(prolongs) != 0 {
			t.Errorf("got %d prolongations, want 0", len(prolongs))
		}
	})
}

func TestProlongationReclassifiesInWordRepetition(t *testing.T) {
	cfg := DefaultConfig()
	words := prolongWords(0.25, 0.9, "wheel")
	cand := words[len(words)-1]

	feats := &stubFeatures{
		voicedFn: voicedOver(cand.Start, 800),
		inWordFn: func(start, _ float64) []float64 {
			return []float64{start + 0.05, start + 0.17, start + 0.29, start + 0.41}
		},
	}

	prolongs, reclassified := NewProlongationDetector(cfg).Detect(words, feats)
	if len(prolongs) != 0 {
		t.Fatalf("got %d prolongations, want 0: %+v", len(prolongs), prolongs)
	}
	if len(reclassified) != 1 {
		t.Fatalf("got %d reclassified, want 1", len(reclassified))
	}
	ev := reclassified[0]
	if ev.Kind != KindRepetition {
		t.Errorf("kind = %s, want %s", ev.Kind, KindRepetition)
	}
	if ev.Confidence != confInWordRepetition {
		t.Errorf("confidence = %v, want %v", ev.Confidence, confInWordRepetition)
	}
	if ev.Count != 4 {
		t.Errorf("count = %d, want 4", ev.Count)
	}
	if ev.Word != "w" {
		t.Errorf("word = %q, want %q", ev.Word, "w")
	}
}
