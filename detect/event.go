package detect

// Kind identifies the disfluency type of an event
type Kind string

const (
	KindRepetition         Kind = "repetition"
	KindAcousticRepetition Kind = "acoustic_repetition"
	KindProlongation       Kind = "prolongation"
	KindBlock              Kind = "block"
)

// Fixed confidence scores per detector. These are heuristic strength
// indicators, not calibrated probabilities: lexical matching is close to
// unambiguous, acoustic inference is not.
const (
	confRepetition         = 0.95
	confInWordRepetition   = 0.90
	confAcousticRepetition = 0.80
	confProlongation       = 0.85
	confGapBlock           = 0.85
	confLongWordBlock      = 0.70
)

// Event is one detected disfluency. Kind selects which payload fields are
// populated; unused fields stay zero and are omitted from JSON.
type Event struct {
	Kind       Kind    `json:"type"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`

	// Repetition and acoustic repetition
	Word  string `json:"word,omitempty"`  // normalized repeated token or sound
	Count int    `json:"count,omitempty"` // occurrences or burst count

	// Acoustic repetition
	InferredSound string `json:"inferred_sound,omitempty"`
	TargetWord    string `json:"target_word,omitempty"`

	// Prolongation
	VoicedMs    float64 `json:"voiced_ms,omitempty"`
	WordMs      float64 `json:"word_ms,omitempty"`
	VoicedRatio float64 `json:"voiced_ratio,omitempty"`

	// Block
	GapSeconds float64 `json:"gap_duration,omitempty"`
}

// Result is the output of one detection run over a recording
type Result struct {
	Words  []Word  `json:"words"`
	Events []Event `json:"events"`
}

// CountByKind tallies events per disfluency type
func (r *Result) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, e := range r.Events {
		counts[e.Kind]++
	}
	return counts
}
