package detect

// stubFeatures fabricates acoustic measurements so detector tests control
// exactly what the signal "contains".
type stubFeatures struct {
	onsets    []float64
	inWordFn  func(start, end float64) []float64
	voicedFn  func(start, end float64) float64
	profileFn func(start, end float64) ([]float64, float64)
}

func (s *stubFeatures) OnsetTimes() []float64 { return s.onsets }

func (s *stubFeatures) OnsetTimesIn(start, end float64) []float64 {
	if s.inWordFn == nil {
		return nil
	}
	return s.inWordFn(start, end)
}

func (s *stubFeatures) VoicedRunMs(start, end float64) float64 {
	if s.voicedFn == nil {
		return 0
	}
	return s.voicedFn(start, end)
}

func (s *stubFeatures) RMSProfile(start, end float64) ([]float64, float64) {
	if s.profileFn == nil {
		return []float64{0.01, 0.01, 0.01, 0.01}, 0.01
	}
	return s.profileFn(start, end)
}

// wordSeq builds evenly spaced words for tests: each word lasts dur seconds
// with gap seconds between them, starting at start.
func wordSeq(start, dur, gap float64, texts ...string) []Word {
	words := make([]Word, 0, len(texts))
	t := start
	for _, text := range texts {
		words = append(words, Word{Text: text, Start: t, End: t + dur})
		t += dur + gap
	}
	return words
}
