package detect

// RepetitionDetector finds whole-word repetitions in the transcript. It is
// purely lexical: runs of identical normalized tokens, no acoustics.
type RepetitionDetector struct {
	cfg Config
}

func NewRepetitionDetector(cfg Config) *RepetitionDetector {
	return &RepetitionDetector{cfg: cfg}
}

// Detect scans for runs of the same normalized token. Single-character
// tokens need a longer run to qualify since ASR frequently splits or
// hallucinates them; "i" is exempt because it is a real repeated word.
func (d *RepetitionDetector) Detect(words []Word) []Event {
	var events []Event

	i := 0
	for i < len(words) {
		token := NormalizeToken(words[i].Text)
		if token == "" {
			i++
			continue
		}

		j := i + 1
		for j < len(words) && NormalizeToken(words[j].Text) == token {
			j++
		}
		count := j - i

		required := d.cfg.MinRepeatCount
		if len(token) == 1 && token != "i" {
			required = d.cfg.SingleCharRepeatCount
		}

		if count >= required && words[i].Start >= d.cfg.EarlyWindowSec {
			events = append(events, Event{
				Kind:       KindRepetition,
				Start:      words[i].Start,
				End:        words[j-1].End,
				Confidence: confRepetition,
				Word:       token,
				Count:      count,
			})
		}
		i = j
	}
	return events
}
