package detect

import (
	"github.com/Atifue/hacknight-2025-fall/algorithms/common"
)

// BlockDetector finds silent blocks: the speaker is stuck and nothing comes
// out. Two signals feed it, a long inter-word gap and a word whose duration
// dwarfs the rest of the utterance.
type BlockDetector struct {
	cfg Config
}

func NewBlockDetector(cfg Config) *BlockDetector {
	return &BlockDetector{cfg: cfg}
}

// Detect takes the events found so far so the duration pass can skip words
// already explained as repetitions or prolongations. Words the gap pass just
// anchored on are likewise off limits, or a long word after a long pause
// would be reported twice.
func (d *BlockDetector) Detect(words []Word, prior []Event) []Event {
	gapEvents := d.gapBlocks(words)

	claimed := make([]Event, 0, len(prior)+len(gapEvents))
	claimed = append(claimed, prior...)
	claimed = append(claimed, gapEvents...)

	return append(gapEvents, d.durationBlocks(words, claimed)...)
}

// gapBlocks uses an absolute gap threshold; one long pause in a short
// recording skews any distribution-relative cutoff. Gaps beyond the ceiling
// read as the speaker simply stopping, not blocking.
func (d *BlockDetector) gapBlocks(words []Word) []Event {
	var events []Event
	for i := 1; i < len(words); i++ {
		gap := words[i].Start - words[i-1].End
		if gap < d.cfg.BlockGapSec || gap > d.cfg.BlockMaxGapSec {
			continue
		}
		// The event is anchored on the word the speaker finally got out.
		if words[i].Start < d.cfg.EarlyWindowSec {
			continue
		}
		events = append(events, Event{
			Kind:       KindBlock,
			Start:      words[i].Start,
			End:        words[i].End,
			Confidence: confGapBlock,
			Word:       NormalizeToken(words[i].Text),
			GapSeconds: gap,
		})
	}
	return events
}

// durationBlocks flags words far longer than the utterance's median. It
// needs at least three words for the median to mean anything.
func (d *BlockDetector) durationBlocks(words []Word, prior []Event) []Event {
	if len(words) < 3 {
		return nil
	}
	medianDur := common.Median(wordDurations(words))
	if medianDur <= 0 {
		return nil
	}

	var events []Event
	for _, w := range words {
		if w.Duration() <= d.cfg.BlockWordDurationFactor*medianDur {
			continue
		}
		if w.Duration() <= d.cfg.BlockMinWordSec {
			continue
		}
		if w.Start < d.cfg.EarlyWindowSec {
			continue
		}
		if explainedElsewhere(w, prior) {
			continue
		}
		events = append(events, Event{
			Kind:       KindBlock,
			Start:      w.Start,
			End:        w.End,
			Confidence: confLongWordBlock,
			Word:       NormalizeToken(w.Text),
		})
	}
	return events
}

// explainedElsewhere reports whether the word already belongs to a
// repetition or block span or lines up with a prolongation start.
func explainedElsewhere(w Word, prior []Event) bool {
	for _, ev := range prior {
		switch ev.Kind {
		case KindRepetition, KindBlock:
			if w.Start >= ev.Start && w.End <= ev.End {
				return true
			}
		case KindProlongation:
			if abs(w.Start-ev.Start) < 0.1 {
				return true
			}
		}
	}
	return false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
