package detect

import (
	"unicode/utf8"

	"github.com/Atifue/hacknight-2025-fall/algorithms/common"
)

// ProlongationDetector flags words whose sound is stretched well past their
// lexical length. A long chain of skip conditions weeds out the words that
// are long for other reasons (blocks, ASR timestamp bleed, plain silence)
// before the voicing and energy tests run.
type ProlongationDetector struct {
	cfg       Config
	stopwords map[string]struct{}
}

func NewProlongationDetector(cfg Config) *ProlongationDetector {
	return &ProlongationDetector{cfg: cfg, stopwords: cfg.stopwordSet()}
}

// Detect returns accepted prolongations plus any candidates reclassified as
// repetitions. A word that looks prolonged by duration but carries evenly
// spaced internal bursts is a repeated sound ("b-b-b-ball"), not a held one.
func (d *ProlongationDetector) Detect(words []Word, feats Features) (prolongs, reclassified []Event) {
	if len(words) == 0 {
		return nil, nil
	}

	medianGap := common.Median(gapDurations(words))
	medianDur := common.Median(wordDurations(words))

	lastAcceptedEnd := -1.0

	for i, w := range words {
		wordMs := w.DurationMs()
		if wordMs < d.cfg.ProlongMinWordMs {
			continue
		}
		if _, stopped := d.stopwords[NormalizeToken(w.Text)]; stopped {
			continue
		}
		// Consecutive prolongations are almost always one event split by
		// the ASR word boundary.
		if lastAcceptedEnd >= 0 && w.Start-lastAcceptedEnd < 0.3 {
			continue
		}

		gap := 0.0
		if i > 0 {
			gap = w.Start - words[i-1].End
		}
		if medianGap > 0 && gap > d.cfg.GapMedianFactor*medianGap {
			continue
		}
		if medianDur > 0 && w.Duration() > d.cfg.LongWordFactor*medianDur {
			continue
		}

		frames, meanRMS := feats.RMSProfile(w.Start, w.End)
		if meanRMS < d.cfg.SilenceRMS {
			continue
		}

		voicedMs := feats.VoicedRunMs(w.Start, w.End)
		voicedRatio := 0.0
		if wordMs > 0 {
			voicedRatio = voicedMs / wordMs
		}

		// Long word with barely any voicing: demand sustained energy or
		// the duration came from trailing silence in the timestamp.
		if wordMs > d.cfg.SparseVoicingWordMs && voicedMs < d.cfg.SparseVoicingMaxMs {
			if energeticFrac(frames, d.cfg.SustainedEnergyFrac*meanRMS) < d.cfg.SparseVoicingMinFrac {
				continue
			}
		}

		// A long word hard up against its predecessor tends to be a
		// timestamp artifact unless most of it is actually voiced.
		if i > 0 && gap < d.cfg.TightGapSec && medianDur > 0 && w.Duration() > 2*medianDur {
			if voicedRatio < d.cfg.ProlongVoicedRatio {
				continue
			}
		}

		if wordMs >= d.cfg.InWordCheckMinMs {
			if ev, ok := d.inWordRepetition(w, feats); ok {
				if w.Start >= d.cfg.EarlyWindowSec {
					reclassified = append(reclassified, ev)
				}
				continue
			}
		}

		vowel := voicedMs > d.cfg.ProlongMinVoicedMs && voicedRatio > d.cfg.ProlongVoicedRatio
		consonant := wordMs > d.cfg.ConsonantMinWordMs &&
			energeticFrac(frames, d.cfg.SustainedEnergyFrac*meanRMS) >= d.cfg.ConsonantEnergyFrac &&
			meanRMS > d.cfg.ConsonantMinRMS

		if !vowel && !consonant {
			continue
		}
		if w.Start < d.cfg.EarlyWindowSec {
			continue
		}

		prolongs = append(prolongs, Event{
			Kind:        KindProlongation,
			Start:       w.Start,
			End:         w.End,
			Confidence:  confProlongation,
			Word:        NormalizeToken(w.Text),
			VoicedMs:    voicedMs,
			WordMs:      wordMs,
			VoicedRatio: voicedRatio,
		})
		lastAcceptedEnd = w.End
	}

	return prolongs, reclassified
}

// inWordRepetition re-analyzes the word slice with a finer onset pass: three
// or more bursts with at least two gaps in the stutter cadence band mean the
// word is a sound repetition.
func (d *ProlongationDetector) inWordRepetition(w Word, feats Features) (Event, bool) {
	onsets := feats.OnsetTimesIn(w.Start, w.End)
	if len(onsets) < d.cfg.InWordMinOnsets {
		return Event{}, false
	}

	inBand := 0
	for i := 1; i < len(onsets); i++ {
		gapMs := (onsets[i] - onsets[i-1]) * 1000
		if gapMs >= d.cfg.InWordGapLowMs && gapMs <= d.cfg.InWordGapHighMs {
			inBand++
		}
	}
	if inBand < d.cfg.InWordMinGaps {
		return Event{}, false
	}

	// The bursts repeat the word's opening sound, not the whole word.
	token := NormalizeToken(w.Text)
	if token != "" {
		_, n := utf8.DecodeRuneInString(token)
		token = token[:n]
	}

	return Event{
		Kind:       KindRepetition,
		Start:      w.Start,
		End:        w.End,
		Confidence: confInWordRepetition,
		Word:       token,
		Count:      len(onsets),
	}, true
}

// energeticFrac returns the fraction of frames above the threshold.
func energeticFrac(frames []float64, threshold float64) float64 {
	if len(frames) == 0 {
		return 0
	}
	n := 0
	for _, v := range frames {
		if v > threshold {
			n++
		}
	}
	return float64(n) / float64(len(frames))
}
