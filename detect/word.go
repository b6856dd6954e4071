package detect

import (
	"strings"
	"unicode"
)

// Word is a single transcript token with its time span in seconds. Words are
// produced once by the transcription collaborator and never mutated; gaps
// between consecutive words are meaningful (they represent silence).
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the word span in seconds
func (w Word) Duration() float64 {
	return w.End - w.Start
}

// DurationMs returns the word span in milliseconds
func (w Word) DurationMs() float64 {
	return (w.End - w.Start) * 1000.0
}

// NormalizeToken strips non-alphanumeric characters and lower-cases the
// text, so "Can," and "can" compare equal and "don't" becomes "dont".
func NormalizeToken(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// gapDurations collects the positive silence gaps between consecutive words.
// Sub-10ms gaps are treated as touching words, not silence.
func gapDurations(words []Word) []float64 {
	var gaps []float64
	for i := 1; i < len(words); i++ {
		gap := words[i].Start - words[i-1].End
		if gap > 0.01 {
			gaps = append(gaps, gap)
		}
	}
	return gaps
}

// wordDurations collects every word span in seconds
func wordDurations(words []Word) []float64 {
	durations := make([]float64, len(words))
	for i, w := range words {
		durations[i] = w.Duration()
	}
	return durations
}
