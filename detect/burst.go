package detect

// consonantClusters are two-letter onsets treated as a single inferred
// sound, so a cluster before "stop" reads as "st-st-st" rather than "s".
var consonantClusters = map[string]struct{}{
	"st": {}, "sl": {}, "sp": {}, "sk": {}, "sc": {},
	"tr": {}, "dr": {}, "br": {}, "cr": {}, "fr": {},
	"gr": {}, "pr": {}, "th": {}, "sh": {}, "ch": {}, "wh": {},
}

// AcousticRepetitionDetector finds part-word repetitions that never make it
// into the transcript ("b-b-b-ball" transcribed as "ball"). It clusters
// energy bursts whose spacing sits in the stutter cadence band and ties each
// cluster to the word spoken right after it.
type AcousticRepetitionDetector struct {
	cfg Config
}

func NewAcousticRepetitionDetector(cfg Config) *AcousticRepetitionDetector {
	return &AcousticRepetitionDetector{cfg: cfg}
}

func (d *AcousticRepetitionDetector) Detect(words []Word, feats Features) []Event {
	onsets := feats.OnsetTimes()
	if len(onsets) < d.cfg.MinBursts {
		return nil
	}

	var events []Event

	i := 0
	for i < len(onsets) {
		j := i + 1
		for j < len(onsets) {
			gapMs := (onsets[j] - onsets[j-1]) * 1000
			if gapMs < d.cfg.MinBurstGapMs || gapMs > d.cfg.MaxBurstGapMs {
				break
			}
			j++
		}

		count := j - i
		if count >= d.cfg.MinBursts && onsets[i] >= d.cfg.EarlyWindowSec {
			clusterEnd := onsets[j-1]
			if target, ok := d.targetWord(words, clusterEnd); ok {
				events = append(events, Event{
					Kind:          KindAcousticRepetition,
					Start:         onsets[i],
					End:           clusterEnd,
					Confidence:    confAcousticRepetition,
					Count:         count,
					InferredSound: inferSound(target.Text),
					TargetWord:    NormalizeToken(target.Text),
				})
			}
			// A cluster with no word right behind it is as likely a
			// non-speech noise train, so it is dropped outright.
		}
		i = j
	}
	return events
}

// targetWord finds the first word starting within the lookahead window after
// the cluster ends.
func (d *AcousticRepetitionDetector) targetWord(words []Word, clusterEnd float64) (Word, bool) {
	for _, w := range words {
		if w.Start < clusterEnd {
			continue
		}
		if w.Start-clusterEnd <= d.cfg.TargetWordLookaheadSec {
			return w, true
		}
		break
	}
	return Word{}, false
}

// inferSound guesses the repeated sound from the target word's onset.
func inferSound(text string) string {
	token := NormalizeToken(text)
	if token == "" {
		return ""
	}
	if len(token) >= 2 {
		if _, ok := consonantClusters[token[:2]]; ok {
			return token[:2]
		}
	}
	return token[:1]
}
